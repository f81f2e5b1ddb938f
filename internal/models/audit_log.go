package models

import "time"

// AuditLog is the database shape of one immutable audit trail record.
// Details is stored as JSONB.
type AuditLog struct {
	AuditID     string         `db:"audit_id"` // Primary Key (UUID)
	ReferenceID string         `db:"reference_id"`
	Action      string         `db:"action"`
	ActorID     string         `db:"actor_id"`
	Details     map[string]any `db:"details"`
	CreatedAt   time.Time      `db:"created_at"`
}
