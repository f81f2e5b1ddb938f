package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayableStatus is the lifecycle state of an accounts-payable record.
type PayableStatus string

const (
	PayablePending       PayableStatus = "pending"
	PayableApproved      PayableStatus = "approved"
	PayablePartiallyPaid PayableStatus = "partially_paid"
	PayablePaid          PayableStatus = "paid"
	PayableCancelled     PayableStatus = "cancelled"
	PayableVoid          PayableStatus = "void"
)

// IsTerminal reports whether no further lifecycle operation may touch the record.
func (s PayableStatus) IsTerminal() bool {
	return s == PayablePaid || s == PayableCancelled || s == PayableVoid
}

// IsPayable reports whether a payment may be recorded against the record.
func (s PayableStatus) IsPayable() bool {
	return s == PayablePending || s == PayableApproved || s == PayablePartiallyPaid
}

// AccountsPayable is the aggregate root for a vendor invoice tracked from
// creation through payment. Invoice facts are immutable after creation; the
// ledger state (amountPaid, amountDue, status, payments) is mutated only by
// lifecycle operations.
type AccountsPayable struct {
	APID     string `json:"apID"`     // Primary Key (UUID)
	APNumber string `json:"apNumber"` // e.g. "AP-2025-0001", unique per fiscal year

	InvoiceNumber string    `json:"invoiceNumber"`
	InvoiceDate   time.Time `json:"invoiceDate"`
	DueDate       time.Time `json:"dueDate"`
	VendorID      string    `json:"vendorID"`
	VendorName    string    `json:"vendorName"`
	VendorCode    string    `json:"vendorCode"`
	CurrencyCode  string    `json:"currencyCode"`

	LineItems []PayableLineItem `json:"lineItems"`

	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	AmountDue   decimal.Decimal `json:"amountDue"`

	Status   PayableStatus `json:"status"`
	Payments []Payment     `json:"payments"` // append-only, ordered by recording time

	// Aging snapshot taken at creation; reports recompute from InvoiceDate.
	AgingDays    int          `json:"agingDays"`
	AgingBracket AgingBracket `json:"agingBracket"`

	RequiresApproval bool       `json:"requiresApproval"`
	ApprovedBy       *string    `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
	ApprovalNotes    string     `json:"approvalNotes,omitempty"`

	LastPaymentDate *time.Time `json:"lastPaymentDate,omitempty"`

	AuditFields
}

// PayableLineItem is a single invoice line. Every line must resolve to an
// expense account before the payable is considered postable.
type PayableLineItem struct {
	LineItemID           string          `json:"lineItemID"` // "line_<n>"
	LineNumber           int             `json:"lineNumber"` // 1-based, matches position
	Description          string          `json:"description"`
	Quantity             decimal.Decimal `json:"quantity"`
	UnitPrice            decimal.Decimal `json:"unitPrice"`
	Amount               decimal.Decimal `json:"amount"`
	ExpenseAccountID     string          `json:"expenseAccountID"`
	ExpenseAccountNumber string          `json:"expenseAccountNumber"`
	ExpenseAccountName   string          `json:"expenseAccountName"`
}
