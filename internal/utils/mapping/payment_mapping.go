package mapping

import (
	"github.com/buildledger/payables_backend/internal/core/domain"
	"github.com/buildledger/payables_backend/internal/models"
)

// ToModelPayment converts a domain Payment to its model shape.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:       d.PaymentID,
		PaymentNumber:   d.PaymentNumber,
		APID:            d.ReferenceID,
		Amount:          d.Amount,
		PaymentDate:     d.PaymentDate,
		PaymentMethod:   d.PaymentMethod,
		BankAccountID:   d.BankAccountID,
		BankAccountName: d.BankAccountName,
		Reference:       d.Reference,
		CurrencyCode:    d.CurrencyCode,
		Status:          string(d.Status),
		ReferenceType:   d.ReferenceType,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainPayment converts a model Payment to its domain shape.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:       m.PaymentID,
		PaymentNumber:   m.PaymentNumber,
		Amount:          m.Amount,
		PaymentDate:     m.PaymentDate,
		PaymentMethod:   m.PaymentMethod,
		BankAccountID:   m.BankAccountID,
		BankAccountName: m.BankAccountName,
		Reference:       m.Reference,
		CurrencyCode:    m.CurrencyCode,
		Status:          domain.PaymentStatus(m.Status),
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.APID,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}

// ToDomainPaymentSlice converts model payments to domain payments.
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
