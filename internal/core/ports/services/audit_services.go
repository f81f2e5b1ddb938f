package services

import (
	"context"

	"github.com/buildledger/payables_backend/internal/core/domain"
)

// AuditRecorderSvcFacade appends immutable action records keyed by payable
// ID. Record is fire-and-forget: implementations log failures and never
// return them, so the primary operation cannot be failed by its audit trail.
type AuditRecorderSvcFacade interface {
	Record(ctx context.Context, apID string, action domain.AuditAction, actorID string, details map[string]any)
}
