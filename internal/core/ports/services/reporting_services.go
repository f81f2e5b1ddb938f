package services

import (
	"context"
	"time"

	"github.com/buildledger/payables_backend/internal/core/domain"
)

// ReportingSvcFacade builds payable aging reports. Report generation is an
// idempotent read: aging is recomputed against asOf, never read back from
// stored snapshots.
type ReportingSvcFacade interface {
	GenerateAgingReport(ctx context.Context, asOf time.Time, actorID string) (*domain.AgingReport, error)
}
