package repositories

import (
	"context"
	"time"

	"github.com/buildledger/payables_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ListPayablesFilter narrows a payable listing. A nil Status means all.
type ListPayablesFilter struct {
	Status *domain.PayableStatus
	Limit  int
	Offset int
}

// PayableReader defines read operations for payable data.
type PayableReader interface {
	// FindPayableByID retrieves a payable with its line items and payments.
	FindPayableByID(ctx context.Context, apID string) (*domain.AccountsPayable, error)

	// ListPayables retrieves a paginated list of payables (headers and line
	// items; payments are loaded only for single-record fetches).
	ListPayables(ctx context.Context, filter ListPayablesFilter) ([]domain.AccountsPayable, error)

	// FindOpenPayables retrieves every payable that is not paid, cancelled
	// or void, with line items, for aging aggregation.
	FindOpenPayables(ctx context.Context) ([]domain.AccountsPayable, error)
}

// PayableWriter defines write operations for payable data.
type PayableWriter interface {
	// SavePayable persists a new payable and its line items atomically.
	SavePayable(ctx context.Context, payable domain.AccountsPayable) error

	// MarkApproved sets approval fields on a payable that is still pending.
	// Returns ErrNotFound if the payable does not exist and ErrConflict if a
	// concurrent writer moved it out of pending first.
	MarkApproved(ctx context.Context, apID string, approvedBy string, approvedAt time.Time, notes string) error

	// MarkCancelled sets status cancelled on a payable that is still pending
	// or approved with no recorded payments. Same error contract as MarkApproved.
	MarkCancelled(ctx context.Context, apID string, actorID string, now time.Time) error
}

// PayableTransactionSupport defines the linearization point for financial
// mutations: the payable row is locked, re-validated and updated in one
// database transaction so concurrent payments cannot overshoot the due amount.
type PayableTransactionSupport interface {
	// FindPayableByIDForUpdate selects a payable header and locks its row
	// within the given transaction.
	FindPayableByIDForUpdate(ctx context.Context, tx pgx.Tx, apID string) (*domain.AccountsPayable, error)

	// AppendPaymentInTx inserts the payment row and writes the recomputed
	// amountPaid/amountDue/status/lastPaymentDate within the transaction.
	AppendPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment, updated domain.AccountsPayable) error
}

// PayableRepositoryFacade combines all payable repository interfaces.
type PayableRepositoryFacade interface {
	PayableReader
	PayableWriter
	PayableTransactionSupport
}

// PayableRepositoryWithTx extends PayableRepositoryFacade with transaction capabilities.
type PayableRepositoryWithTx interface {
	PayableRepositoryFacade
	TransactionManager
}
