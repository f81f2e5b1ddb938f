package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payable is the database shape of an accounts-payable record.
// Line items and payments live in their own tables and are loaded separately.
type Payable struct {
	APID          string    `db:"ap_id"`     // Primary Key (UUID)
	APNumber      string    `db:"ap_number"` // unique per fiscal year
	InvoiceNumber string    `db:"invoice_number"`
	InvoiceDate   time.Time `db:"invoice_date"`
	DueDate       time.Time `db:"due_date"`
	VendorID      string    `db:"vendor_id"`
	VendorName    string    `db:"vendor_name"`
	VendorCode    string    `db:"vendor_code"`
	CurrencyCode  string    `db:"currency_code"`

	Subtotal    decimal.Decimal `db:"subtotal"`
	TaxAmount   decimal.Decimal `db:"tax_amount"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	AmountPaid  decimal.Decimal `db:"amount_paid"`
	AmountDue   decimal.Decimal `db:"amount_due"`

	Status       string `db:"status"`
	AgingDays    int    `db:"aging_days"`
	AgingBracket string `db:"aging_bracket"`

	RequiresApproval bool       `db:"requires_approval"`
	ApprovedBy       *string    `db:"approved_by"` // Nullable
	ApprovedAt       *time.Time `db:"approved_at"` // Nullable
	ApprovalNotes    string     `db:"approval_notes"`

	LastPaymentDate *time.Time `db:"last_payment_date"` // Nullable

	AuditFields
}

// PayableLineItem is the database shape of a single invoice line.
type PayableLineItem struct {
	LineItemID           string          `db:"line_item_id"` // "line_<n>", unique within a payable
	APID                 string          `db:"ap_id"`        // FK -> ap_payables.ap_id
	LineNumber           int             `db:"line_number"`  // 1-based
	Description          string          `db:"description"`
	Quantity             decimal.Decimal `db:"quantity"`
	UnitPrice            decimal.Decimal `db:"unit_price"`
	Amount               decimal.Decimal `db:"amount"`
	ExpenseAccountID     string          `db:"expense_account_id"`
	ExpenseAccountNumber string          `db:"expense_account_number"`
	ExpenseAccountName   string          `db:"expense_account_name"`
}
