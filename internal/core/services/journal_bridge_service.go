package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/buildledger/payables_backend/internal/apperrors"
	"github.com/buildledger/payables_backend/internal/core/domain"
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
	portssvc "github.com/buildledger/payables_backend/internal/core/ports/services"
	"github.com/buildledger/payables_backend/internal/middleware"
)

var (
	ErrEntryTooFewLines  = errors.New("journal entry must have at least two lines")
	ErrEntryUnbalanced   = errors.New("journal entry debits and credits do not balance")
	ErrLineNotOneSided   = errors.New("journal line must have exactly one of debit or credit set")
	ErrLineAmountInvalid = errors.New("journal line amount must be positive")
)

type journalBridgeService struct {
	journalRepo portsrepo.JournalRepository
}

// NewJournalBridgeService creates a new JournalBridgeService.
func NewJournalBridgeService(journalRepo portsrepo.JournalRepository) portssvc.JournalBridgeSvcFacade {
	return &journalBridgeService{journalRepo: journalRepo}
}

// Ensure journalBridgeService implements the portssvc.JournalBridgeSvcFacade interface
var _ portssvc.JournalBridgeSvcFacade = (*journalBridgeService)(nil)

// PostJournalEntry validates balance, enriches identifiers and persists the
// entry as posted.
// Implements portssvc.JournalBridgeSvcFacade
func (s *journalBridgeService) PostJournalEntry(ctx context.Context, entry domain.JournalEntry, actorID string) (*domain.PostedJournalRef, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateEntryBalance(entry); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	if entry.JournalID == "" {
		entry.JournalID = uuid.NewString()
	}
	if entry.EntryNumber == "" {
		entry.EntryNumber = fmt.Sprintf("JE-%d", now.UnixNano())
	}
	entry.Status = domain.Posted
	entry.CreatedAt = now
	entry.CreatedBy = actorID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = actorID
	for i := range entry.Lines {
		if entry.Lines[i].LineID == "" {
			entry.Lines[i].LineID = uuid.NewString()
		}
		entry.Lines[i].JournalID = entry.JournalID
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry",
			slog.String("entry_number", entry.EntryNumber),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: failed to save journal entry %s: %s", apperrors.ErrDependency, entry.EntryNumber, err)
	}

	logger.Info("Journal entry posted",
		slog.String("journal_id", entry.JournalID),
		slog.String("entry_number", entry.EntryNumber),
	)
	return &domain.PostedJournalRef{JournalID: entry.JournalID, EntryNumber: entry.EntryNumber}, nil
}

// validateEntryBalance enforces the double-entry invariant: at least two
// lines, each line one-sided with a positive amount, total debits equal to
// total credits.
func validateEntryBalance(entry domain.JournalEntry) error {
	if len(entry.Lines) < 2 {
		return ErrEntryTooFewLines
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range entry.Lines {
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line %d: %w", i+1, ErrLineAmountInvalid)
		}
		if debitSet == creditSet {
			return fmt.Errorf("line %d: %w", i+1, ErrLineNotOneSided)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrEntryUnbalanced, totalDebit.String(), totalCredit.String())
	}
	return nil
}
