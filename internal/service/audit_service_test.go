package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkcore/itam-api/internal/models"
	appErrors "github.com/mkcore/itam-api/pkg/errors"
)

type fakeAuditRepo struct {
	entries   []models.AuditLog
	appendErr error
	listErr   error
}

func (f *fakeAuditRepo) Append(ctx context.Context, entry *models.AuditLog) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	entry.ID = int64(len(f.entries) + 1)
	entry.Timestamp = time.Now().UTC()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context) ([]models.AuditLog, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.AuditLog, 0, len(f.entries))
	for i := len(f.entries) - 1; i >= 0; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

func TestAuditServiceRecordAttributesMissingActorToSystem(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, nil, nil)

	require.NoError(t, svc.Record(context.Background(), "", models.AuditActionCreate, "User", "1", "Created user jane.doe"))
	require.NoError(t, svc.Record(context.Background(), "   ", models.AuditActionDelete, "User", "1", "Deleted user jane.doe"))

	require.Len(t, repo.entries, 2)
	assert.Equal(t, models.ActorSystem, repo.entries[0].PerformedBy)
	assert.Equal(t, models.ActorSystem, repo.entries[1].PerformedBy)
}

func TestAuditServiceRecordFailureSurfaces(t *testing.T) {
	repo := &fakeAuditRepo{appendErr: assert.AnError}
	svc := NewAuditService(repo, nil, nil)

	err := svc.Record(context.Background(), "admin", models.AuditActionCreate, "User", "1", "Created user jane.doe")
	assert.ErrorIs(t, err, appErrors.ErrAuditWrite)
}

func TestAuditServiceRecordOmitsEmptyTargetID(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, nil, nil)

	require.NoError(t, svc.Record(context.Background(), "admin", models.AuditActionCreate, "Department", "", "Created 'IT' department"))
	require.Len(t, repo.entries, 1)
	assert.Nil(t, repo.entries[0].TargetID)
}

func TestAuditServiceListEmptyTrail(t *testing.T) {
	svc := NewAuditService(&fakeAuditRepo{}, nil, nil)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestAuditServiceExportCSV(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, nil, nil)
	require.NoError(t, svc.Record(context.Background(), "admin", models.AuditActionCreate, "Asset", "SN-PC-1001", "Registered new MacBook Pro 14"))

	out, contentType, err := svc.Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	body := string(out)
	assert.True(t, strings.HasPrefix(body, "Timestamp,Performed By,Action,Entity,Target,Summary"))
	assert.Contains(t, body, "SN-PC-1001")
	assert.Contains(t, body, "Registered new MacBook Pro 14")
}

func TestAuditServiceExportPDF(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo, nil, nil)
	require.NoError(t, svc.Record(context.Background(), "admin", models.AuditActionCreate, "User", "1", "Created user jane.doe"))

	out, contentType, err := svc.Export(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestAuditServiceExportUnsupportedFormat(t *testing.T) {
	svc := NewAuditService(&fakeAuditRepo{}, nil, nil)

	_, _, err := svc.Export(context.Background(), "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
