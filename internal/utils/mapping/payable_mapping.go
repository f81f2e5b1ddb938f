package mapping

import (
	"github.com/buildledger/payables_backend/internal/core/domain"
	"github.com/buildledger/payables_backend/internal/models"
)

// ToModelPayable converts a domain AccountsPayable to its model shape.
// Line items and payments are mapped separately by their own helpers.
func ToModelPayable(d domain.AccountsPayable) models.Payable {
	return models.Payable{
		APID:             d.APID,
		APNumber:         d.APNumber,
		InvoiceNumber:    d.InvoiceNumber,
		InvoiceDate:      d.InvoiceDate,
		DueDate:          d.DueDate,
		VendorID:         d.VendorID,
		VendorName:       d.VendorName,
		VendorCode:       d.VendorCode,
		CurrencyCode:     d.CurrencyCode,
		Subtotal:         d.Subtotal,
		TaxAmount:        d.TaxAmount,
		TotalAmount:      d.TotalAmount,
		AmountPaid:       d.AmountPaid,
		AmountDue:        d.AmountDue,
		Status:           string(d.Status),
		AgingDays:        d.AgingDays,
		AgingBracket:     string(d.AgingBracket),
		RequiresApproval: d.RequiresApproval,
		ApprovedBy:       d.ApprovedBy,
		ApprovedAt:       d.ApprovedAt,
		ApprovalNotes:    d.ApprovalNotes,
		LastPaymentDate:  d.LastPaymentDate,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayable converts a model Payable to its domain shape.
func ToDomainPayable(m models.Payable) domain.AccountsPayable {
	return domain.AccountsPayable{
		APID:             m.APID,
		APNumber:         m.APNumber,
		InvoiceNumber:    m.InvoiceNumber,
		InvoiceDate:      m.InvoiceDate,
		DueDate:          m.DueDate,
		VendorID:         m.VendorID,
		VendorName:       m.VendorName,
		VendorCode:       m.VendorCode,
		CurrencyCode:     m.CurrencyCode,
		Subtotal:         m.Subtotal,
		TaxAmount:        m.TaxAmount,
		TotalAmount:      m.TotalAmount,
		AmountPaid:       m.AmountPaid,
		AmountDue:        m.AmountDue,
		Status:           domain.PayableStatus(m.Status),
		AgingDays:        m.AgingDays,
		AgingBracket:     domain.AgingBracket(m.AgingBracket),
		RequiresApproval: m.RequiresApproval,
		ApprovedBy:       m.ApprovedBy,
		ApprovedAt:       m.ApprovedAt,
		ApprovalNotes:    m.ApprovalNotes,
		LastPaymentDate:  m.LastPaymentDate,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLineItem converts a domain line item to its model shape.
func ToModelLineItem(apID string, d domain.PayableLineItem) models.PayableLineItem {
	return models.PayableLineItem{
		LineItemID:           d.LineItemID,
		APID:                 apID,
		LineNumber:           d.LineNumber,
		Description:          d.Description,
		Quantity:             d.Quantity,
		UnitPrice:            d.UnitPrice,
		Amount:               d.Amount,
		ExpenseAccountID:     d.ExpenseAccountID,
		ExpenseAccountNumber: d.ExpenseAccountNumber,
		ExpenseAccountName:   d.ExpenseAccountName,
	}
}

// ToDomainLineItem converts a model line item to its domain shape.
func ToDomainLineItem(m models.PayableLineItem) domain.PayableLineItem {
	return domain.PayableLineItem{
		LineItemID:           m.LineItemID,
		LineNumber:           m.LineNumber,
		Description:          m.Description,
		Quantity:             m.Quantity,
		UnitPrice:            m.UnitPrice,
		Amount:               m.Amount,
		ExpenseAccountID:     m.ExpenseAccountID,
		ExpenseAccountNumber: m.ExpenseAccountNumber,
		ExpenseAccountName:   m.ExpenseAccountName,
	}
}

// ToDomainLineItemSlice converts model line items to domain line items.
func ToDomainLineItemSlice(ms []models.PayableLineItem) []domain.PayableLineItem {
	ds := make([]domain.PayableLineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
