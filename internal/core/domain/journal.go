package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a posted journal entry.
type JournalStatus string

const (
	Posted JournalStatus = "POSTED"
)

// JournalEntry is the balanced set of debit/credit lines handed to the
// double-entry engine when a payment is recorded. The engine itself is an
// external collaborator; this subsystem only produces entries and keeps the
// balance invariant.
type JournalEntry struct {
	JournalID   string        `json:"journalID"` // Primary Key (UUID)
	EntryNumber string        `json:"entryNumber"`
	EntryDate   time.Time     `json:"entryDate"`
	Description string        `json:"description"`
	Reference   string        `json:"reference"` // e.g. the payable's apNumber
	CurrencyCode string       `json:"currencyCode"`
	Status      JournalStatus `json:"status"`
	Lines       []JournalLine `json:"lines"`
	AuditFields
}

// JournalLine is a single debit or credit posting within a journal entry.
// Exactly one of Debit/Credit is non-zero on a valid line.
type JournalLine struct {
	LineID        string          `json:"lineID"` // Primary Key (UUID)
	JournalID     string          `json:"journalID"`
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	CurrencyCode  string          `json:"currencyCode"`
	Description   string          `json:"description"`
}

// PostedJournalRef identifies a journal entry accepted by the engine.
type PostedJournalRef struct {
	JournalID   string `json:"journalID"`
	EntryNumber string `json:"entryNumber"`
}
