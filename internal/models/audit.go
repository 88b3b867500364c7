package models

import "time"

// Audit actions. One row is appended per successful mutation.
const (
	AuditActionCreate = "Create"
	AuditActionUpdate = "Update"
	AuditActionDelete = "Delete"
)

// ActorSystem attributes writes that arrive without an identity.
const ActorSystem = "System"

// AuditLog is an immutable record of one mutation. Rows are only ever
// inserted; nothing in the register updates or deletes them.
type AuditLog struct {
	ID            int64     `db:"id" json:"id"`
	Timestamp     time.Time `db:"timestamp" json:"timestamp"`
	PerformedBy   string    `db:"performed_by" json:"performed_by"`
	Action        string    `db:"action" json:"action"`
	TargetEntity  string    `db:"target_entity" json:"target_entity"`
	TargetID      *string   `db:"target_id" json:"target_id,omitempty"`
	ChangeSummary string    `db:"change_summary" json:"change_summary"`
}
