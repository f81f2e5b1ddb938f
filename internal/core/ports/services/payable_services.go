package services

import (
	"context"

	"github.com/buildledger/payables_backend/internal/core/domain"
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
	"github.com/buildledger/payables_backend/internal/dto"
)

// PayableSvcFacade is the lifecycle manager for accounts-payable records.
// Every operation returns either the refreshed record or an error carrying
// one of the apperrors kinds; collaborator (journal, audit) failures never
// surface through these methods.
type PayableSvcFacade interface {
	// CreatePayable validates the input, allocates the AP number, enriches
	// line items and persists the new record in pending state.
	CreatePayable(ctx context.Context, req dto.CreatePayableRequest, actorID string) (*domain.AccountsPayable, error)

	// GetPayableByID fetches a payable with line items and payments.
	GetPayableByID(ctx context.Context, apID string) (*domain.AccountsPayable, error)

	// ListPayables fetches a page of payables, optionally filtered by status.
	ListPayables(ctx context.Context, filter portsrepo.ListPayablesFilter) ([]domain.AccountsPayable, error)

	// ApprovePayable moves a pending payable to approved.
	ApprovePayable(ctx context.Context, apID string, req dto.ApprovePayableRequest, actorID string) (*domain.AccountsPayable, error)

	// CancelPayable moves a pending or approved payable with no recorded
	// payments to cancelled.
	CancelPayable(ctx context.Context, apID string, req dto.CancelPayableRequest, actorID string) (*domain.AccountsPayable, error)

	// RecordPayment applies a full or partial payment and posts the
	// balancing journal entry on a best-effort basis.
	RecordPayment(ctx context.Context, apID string, req dto.RecordPaymentRequest, actorID string) (*domain.AccountsPayable, error)
}
