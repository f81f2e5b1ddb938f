package mapping

import (
	"github.com/buildledger/payables_backend/internal/core/domain"
	"github.com/buildledger/payables_backend/internal/models"
)

// ToModelJournal converts a domain JournalEntry header to its model shape.
func ToModelJournal(d domain.JournalEntry) models.Journal {
	return models.Journal{
		JournalID:    d.JournalID,
		EntryNumber:  d.EntryNumber,
		EntryDate:    d.EntryDate,
		Description:  d.Description,
		Reference:    d.Reference,
		CurrencyCode: d.CurrencyCode,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to its model shape.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:        d.LineID,
		JournalID:     d.JournalID,
		AccountID:     d.AccountID,
		AccountNumber: d.AccountNumber,
		AccountName:   d.AccountName,
		Debit:         d.Debit,
		Credit:        d.Credit,
		CurrencyCode:  d.CurrencyCode,
		Description:   d.Description,
	}
}
