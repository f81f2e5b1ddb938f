package domain

import "time"

// AuditAction names a lifecycle event recorded on the audit trail.
type AuditAction string

const (
	AuditAPCreated       AuditAction = "ap_created"
	AuditAPApproved      AuditAction = "ap_approved"
	AuditAPCancelled     AuditAction = "ap_cancelled"
	AuditPaymentRecorded AuditAction = "payment_recorded"
)

// AuditLog is one immutable action record keyed by payable ID.
type AuditLog struct {
	AuditID     string         `json:"auditID"` // Primary Key (UUID)
	ReferenceID string         `json:"referenceID"` // the payable's APID
	Action      AuditAction    `json:"action"`
	ActorID     string         `json:"actorID"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}
