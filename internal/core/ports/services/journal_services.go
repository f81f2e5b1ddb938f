package services

import (
	"context"

	"github.com/buildledger/payables_backend/internal/core/domain"
)

// JournalBridgeSvcFacade hands a balanced set of debit/credit lines to the
// double-entry engine. Callers must ensure the lines balance; the bridge
// re-validates and rejects unbalanced entries. A bridge failure is a
// dependency failure: the payment path logs it and moves on, because the
// payable aggregate, not the journal, is the source of payment truth.
type JournalBridgeSvcFacade interface {
	PostJournalEntry(ctx context.Context, entry domain.JournalEntry, actorID string) (*domain.PostedJournalRef, error)
}
