package dto

import (
	"time"

	"github.com/buildledger/payables_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineItemRequest is one invoice line on a creation request. Amount is
// recomputed from quantity and unit price when omitted; expense account
// fields default to the configured expense account when absent.
type CreateLineItemRequest struct {
	Description          string          `json:"description" binding:"required"`
	Quantity             decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice            decimal.Decimal `json:"unitPrice" binding:"required"`
	Amount               decimal.Decimal `json:"amount"`
	ExpenseAccountID     string          `json:"expenseAccountID"`
	ExpenseAccountNumber string          `json:"expenseAccountNumber"`
	ExpenseAccountName   string          `json:"expenseAccountName"`
}

// CreatePayableRequest is the input for creating an accounts-payable record.
type CreatePayableRequest struct {
	InvoiceNumber string                  `json:"invoiceNumber" binding:"required,min=1,max=50"`
	InvoiceDate   time.Time               `json:"invoiceDate" binding:"required"`
	DueDate       time.Time               `json:"dueDate" binding:"required"`
	VendorID      string                  `json:"vendorID" binding:"required"`
	VendorName    string                  `json:"vendorName"`
	VendorCode    string                  `json:"vendorCode"`
	CurrencyCode  string                  `json:"currencyCode"`
	LineItems     []CreateLineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
	Subtotal      decimal.Decimal         `json:"subtotal"`
	TaxAmount     decimal.Decimal         `json:"taxAmount"`
	TotalAmount   decimal.Decimal         `json:"totalAmount"`
}

// ApprovePayableRequest carries the optional approval notes.
type ApprovePayableRequest struct {
	Notes string `json:"notes"`
}

// CancelPayableRequest carries the optional cancellation reason.
type CancelPayableRequest struct {
	Reason string `json:"reason"`
}

// RecordPaymentRequest is the input for applying a payment to a payable.
type RecordPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate     time.Time       `json:"paymentDate" binding:"required"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required"`
	BankAccountID   string          `json:"bankAccountID"`
	BankAccountName string          `json:"bankAccountName"`
	Reference       string          `json:"reference"`
	CurrencyCode    string          `json:"currencyCode"`
}

// ListPayablesParams holds query parameters for listing payables.
type ListPayablesParams struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// LineItemResponse is the API shape of an invoice line.
type LineItemResponse struct {
	LineItemID           string          `json:"lineItemID"`
	LineNumber           int             `json:"lineNumber"`
	Description          string          `json:"description"`
	Quantity             decimal.Decimal `json:"quantity"`
	UnitPrice            decimal.Decimal `json:"unitPrice"`
	Amount               decimal.Decimal `json:"amount"`
	ExpenseAccountID     string          `json:"expenseAccountID"`
	ExpenseAccountNumber string          `json:"expenseAccountNumber"`
	ExpenseAccountName   string          `json:"expenseAccountName"`
}

// PaymentResponse is the API shape of a recorded payment.
type PaymentResponse struct {
	PaymentID       string          `json:"paymentID"`
	PaymentNumber   string          `json:"paymentNumber"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     time.Time       `json:"paymentDate"`
	PaymentMethod   string          `json:"paymentMethod"`
	BankAccountID   string          `json:"bankAccountID,omitempty"`
	BankAccountName string          `json:"bankAccountName,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	CurrencyCode    string          `json:"currencyCode"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// PayableResponse is the API shape of an accounts-payable record.
type PayableResponse struct {
	APID             string             `json:"apID"`
	APNumber         string             `json:"apNumber"`
	InvoiceNumber    string             `json:"invoiceNumber"`
	InvoiceDate      time.Time          `json:"invoiceDate"`
	DueDate          time.Time          `json:"dueDate"`
	VendorID         string             `json:"vendorID"`
	VendorName       string             `json:"vendorName"`
	VendorCode       string             `json:"vendorCode"`
	CurrencyCode     string             `json:"currencyCode"`
	LineItems        []LineItemResponse `json:"lineItems"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	TaxAmount        decimal.Decimal    `json:"taxAmount"`
	TotalAmount      decimal.Decimal    `json:"totalAmount"`
	AmountPaid       decimal.Decimal    `json:"amountPaid"`
	AmountDue        decimal.Decimal    `json:"amountDue"`
	Status           string             `json:"status"`
	AgingDays        int                `json:"agingDays"`
	AgingBracket     string             `json:"agingBracket"`
	Payments         []PaymentResponse  `json:"payments"`
	RequiresApproval bool               `json:"requiresApproval"`
	ApprovedBy       *string            `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time         `json:"approvedAt,omitempty"`
	ApprovalNotes    string             `json:"approvalNotes,omitempty"`
	LastPaymentDate  *time.Time         `json:"lastPaymentDate,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	CreatedBy        string             `json:"createdBy"`
	UpdatedAt        time.Time          `json:"updatedAt"`
	UpdatedBy        string             `json:"updatedBy"`
}

// ListPayablesResponse wraps a payable listing.
type ListPayablesResponse struct {
	Payables []PayableResponse `json:"payables"`
}

// ToLineItemResponse converts a domain line item to its API shape.
func ToLineItemResponse(li domain.PayableLineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:           li.LineItemID,
		LineNumber:           li.LineNumber,
		Description:          li.Description,
		Quantity:             li.Quantity,
		UnitPrice:            li.UnitPrice,
		Amount:               li.Amount,
		ExpenseAccountID:     li.ExpenseAccountID,
		ExpenseAccountNumber: li.ExpenseAccountNumber,
		ExpenseAccountName:   li.ExpenseAccountName,
	}
}

// ToPaymentResponse converts a domain payment to its API shape.
func ToPaymentResponse(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		PaymentNumber:   p.PaymentNumber,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate,
		PaymentMethod:   p.PaymentMethod,
		BankAccountID:   p.BankAccountID,
		BankAccountName: p.BankAccountName,
		Reference:       p.Reference,
		CurrencyCode:    p.CurrencyCode,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		CreatedBy:       p.CreatedBy,
	}
}

// ToPayableResponse converts a domain payable to its API shape.
func ToPayableResponse(ap *domain.AccountsPayable) PayableResponse {
	lines := make([]LineItemResponse, len(ap.LineItems))
	for i, li := range ap.LineItems {
		lines[i] = ToLineItemResponse(li)
	}
	payments := make([]PaymentResponse, len(ap.Payments))
	for i, p := range ap.Payments {
		payments[i] = ToPaymentResponse(p)
	}
	return PayableResponse{
		APID:             ap.APID,
		APNumber:         ap.APNumber,
		InvoiceNumber:    ap.InvoiceNumber,
		InvoiceDate:      ap.InvoiceDate,
		DueDate:          ap.DueDate,
		VendorID:         ap.VendorID,
		VendorName:       ap.VendorName,
		VendorCode:       ap.VendorCode,
		CurrencyCode:     ap.CurrencyCode,
		LineItems:        lines,
		Subtotal:         ap.Subtotal,
		TaxAmount:        ap.TaxAmount,
		TotalAmount:      ap.TotalAmount,
		AmountPaid:       ap.AmountPaid,
		AmountDue:        ap.AmountDue,
		Status:           string(ap.Status),
		AgingDays:        ap.AgingDays,
		AgingBracket:     string(ap.AgingBracket),
		Payments:         payments,
		RequiresApproval: ap.RequiresApproval,
		ApprovedBy:       ap.ApprovedBy,
		ApprovedAt:       ap.ApprovedAt,
		ApprovalNotes:    ap.ApprovalNotes,
		LastPaymentDate:  ap.LastPaymentDate,
		CreatedAt:        ap.CreatedAt,
		CreatedBy:        ap.CreatedBy,
		UpdatedAt:        ap.LastUpdatedAt,
		UpdatedBy:        ap.LastUpdatedBy,
	}
}
