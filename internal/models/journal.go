package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal is the database shape of a posted journal entry.
type Journal struct {
	JournalID    string    `db:"journal_id"` // Primary Key (UUID)
	EntryNumber  string    `db:"entry_number"`
	EntryDate    time.Time `db:"entry_date"`
	Description  string    `db:"description"`
	Reference    string    `db:"reference"`
	CurrencyCode string    `db:"currency_code"`
	Status       string    `db:"status"`
	AuditFields
}

// JournalLine is the database shape of a single debit/credit posting.
type JournalLine struct {
	LineID        string          `db:"line_id"`    // Primary Key (UUID)
	JournalID     string          `db:"journal_id"` // FK -> ap_journals.journal_id
	AccountID     string          `db:"account_id"`
	AccountNumber string          `db:"account_number"`
	AccountName   string          `db:"account_name"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	CurrencyCode  string          `db:"currency_code"`
	Description   string          `db:"description"`
}
