package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the database shape of a recorded payment application.
type Payment struct {
	PaymentID       string          `db:"payment_id"` // Primary Key (UUID)
	PaymentNumber   string          `db:"payment_number"`
	APID            string          `db:"ap_id"` // FK -> ap_payables.ap_id
	Amount          decimal.Decimal `db:"amount"`
	PaymentDate     time.Time       `db:"payment_date"`
	PaymentMethod   string          `db:"payment_method"`
	BankAccountID   string          `db:"bank_account_id"`
	BankAccountName string          `db:"bank_account_name"`
	Reference       string          `db:"reference"`
	CurrencyCode    string          `db:"currency_code"`
	Status          string          `db:"status"`
	ReferenceType   string          `db:"reference_type"` // "ap"
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}
