package repositories

import (
	"context"

	"github.com/buildledger/payables_backend/internal/core/domain"
)

// AuditLogRepository appends immutable action records. Rows are never
// updated or deleted by this subsystem.
type AuditLogRepository interface {
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error
}
