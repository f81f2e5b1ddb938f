package pgsql

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buildledger/payables_backend/internal/apperrors"
	"github.com/buildledger/payables_backend/internal/core/domain"
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for audit trail records.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepository {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAuditRepository implements portsrepo.AuditLogRepository
var _ portsrepo.AuditLogRepository = (*PgxAuditRepository)(nil)

// SaveAuditLog appends one immutable audit record. Details marshal to JSONB;
// a nil map stores SQL NULL.
func (r *PgxAuditRepository) SaveAuditLog(ctx context.Context, log domain.AuditLog) error {
	var details []byte
	if log.Details != nil {
		var err error
		details, err = json.Marshal(log.Details)
		if err != nil {
			return apperrors.NewAppError(500, "failed to marshal audit details for "+log.AuditID, err)
		}
	}

	query := `
		INSERT INTO ap_audit_logs (audit_id, reference_id, action, actor_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		log.AuditID, log.ReferenceID, string(log.Action), log.ActorID, details, log.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit log "+log.AuditID, err)
	}
	return nil
}
