package repositories

import (
	"context"

	"github.com/buildledger/payables_backend/internal/core/domain"
)

// JournalRepository persists posted journal entries for the double-entry
// engine. The entry and its lines are written atomically.
type JournalRepository interface {
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error
}
