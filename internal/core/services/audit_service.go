package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/buildledger/payables_backend/internal/core/domain"
	portsrepo "github.com/buildledger/payables_backend/internal/core/ports/repositories"
	portssvc "github.com/buildledger/payables_backend/internal/core/ports/services"
	"github.com/buildledger/payables_backend/internal/middleware"
)

type auditRecorderService struct {
	auditRepo portsrepo.AuditLogRepository
}

// NewAuditRecorderService creates a new AuditRecorderService.
func NewAuditRecorderService(auditRepo portsrepo.AuditLogRepository) portssvc.AuditRecorderSvcFacade {
	return &auditRecorderService{auditRepo: auditRepo}
}

// Ensure auditRecorderService implements the portssvc.AuditRecorderSvcFacade interface
var _ portssvc.AuditRecorderSvcFacade = (*auditRecorderService)(nil)

// Record appends an audit log entry asynchronously. Failures are logged and
// swallowed: the audit trail must never block or fail the operation it
// describes. The write outlives the request via a detached context.
// Implements portssvc.AuditRecorderSvcFacade
func (s *auditRecorderService) Record(ctx context.Context, apID string, action domain.AuditAction, actorID string, details map[string]any) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry := domain.AuditLog{
		AuditID:     uuid.NewString(),
		ReferenceID: apID,
		Action:      action,
		ActorID:     actorID,
		Details:     details,
		CreatedAt:   time.Now().UTC(),
	}

	detached := context.WithoutCancel(ctx)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic while recording audit log",
					slog.String("ap_id", apID),
					slog.String("action", string(action)),
					slog.Any("panic", r),
				)
			}
		}()
		if err := s.auditRepo.SaveAuditLog(detached, entry); err != nil {
			logger.Warn("Failed to record audit log",
				slog.String("ap_id", apID),
				slog.String("action", string(action)),
				slog.String("error", err.Error()),
			)
		}
	}()
}
