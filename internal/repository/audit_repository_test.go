package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkcore/itam-api/internal/models"
)

func TestAuditRepositoryAppendStampsTimestamp(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectQuery("INSERT INTO audit_logs").
		WithArgs(sqlmock.AnyArg(), "admin", models.AuditActionCreate, "User", sqlmock.AnyArg(), "Created user jane.doe").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	targetID := "42"
	entry := &models.AuditLog{
		Timestamp:     time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		PerformedBy:   "admin",
		Action:        models.AuditActionCreate,
		TargetEntity:  "User",
		TargetID:      &targetID,
		ChangeSummary: "Created user jane.doe",
	}
	require.NoError(t, repo.Append(context.Background(), entry))

	assert.Equal(t, int64(9), entry.ID)
	// The caller-supplied timestamp is ignored; the row stamp is set here.
	assert.WithinDuration(t, time.Now().UTC(), entry.Timestamp, time.Minute)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryListNewestFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "timestamp", "performed_by", "action", "target_entity", "target_id", "change_summary"}).
		AddRow(2, now, "tech", models.AuditActionUpdate, "Asset", nil, "Updated asset MacBook Pro 14").
		AddRow(1, now.Add(-time.Hour), "admin", models.AuditActionCreate, "Asset", "SN-PC-1001", "Registered new MacBook Pro 14")
	mock.ExpectQuery(`SELECT id, timestamp, performed_by, action, target_entity, target_id, change_summary\s+FROM audit_logs ORDER BY timestamp DESC, id DESC`).
		WillReturnRows(rows)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].ID)
	assert.Nil(t, entries[0].TargetID)
	require.NotNil(t, entries[1].TargetID)
	assert.Equal(t, "SN-PC-1001", *entries[1].TargetID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
