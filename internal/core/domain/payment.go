package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the state of a recorded payment. A payment is completed
// the moment it is appended; there are no partial payment-record states.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
)

// ReferenceTypeAP marks a payment as applied against an accounts-payable record.
const ReferenceTypeAP = "ap"

// Payment is a single application of money against a payable. Payments are
// immutable once appended; correcting one requires a separate operation.
type Payment struct {
	PaymentID     string          `json:"paymentID"`     // Primary Key (UUID)
	PaymentNumber string          `json:"paymentNumber"` // unique, time-derived
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod"`
	BankAccountID string          `json:"bankAccountID,omitempty"`
	BankAccountName string        `json:"bankAccountName,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	CurrencyCode  string          `json:"currencyCode"`
	Status        PaymentStatus   `json:"status"`
	ReferenceType string          `json:"referenceType"` // always "ap"
	ReferenceID   string          `json:"referenceID"`   // the payable's APID
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}
