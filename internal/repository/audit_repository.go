package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mkcore/itam-api/internal/models"
)

// AuditRepository appends and reads the immutable audit trail. No update
// or delete statement exists for audit rows anywhere in the register.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new instance of AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append inserts one audit row. The timestamp is always set here, never
// taken from the caller.
func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	entry.Timestamp = time.Now().UTC()
	const query = `INSERT INTO audit_logs (timestamp, performed_by, action, target_entity, target_id, change_summary)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		entry.Timestamp, entry.PerformedBy, entry.Action,
		entry.TargetEntity, entry.TargetID, entry.ChangeSummary,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}

// List returns the full trail, newest first.
func (r *AuditRepository) List(ctx context.Context) ([]models.AuditLog, error) {
	const query = `SELECT id, timestamp, performed_by, action, target_entity, target_id, change_summary
	FROM audit_logs ORDER BY timestamp DESC, id DESC`
	var entries []models.AuditLog
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return entries, nil
}
