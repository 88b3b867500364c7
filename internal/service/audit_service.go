package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mkcore/itam-api/internal/models"
	appErrors "github.com/mkcore/itam-api/pkg/errors"
	"github.com/mkcore/itam-api/pkg/export"
)

type auditRepository interface {
	Append(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context) ([]models.AuditLog, error)
}

// auditRecorder is the slice of AuditService the mutation coordinators
// depend on.
type auditRecorder interface {
	Record(ctx context.Context, actor, action, entity, targetID, summary string) error
}

// AuditService owns the append-only change trail.
type AuditService struct {
	repo    auditRepository
	logger  *zap.Logger
	metrics *MetricsService
}

// NewAuditService creates an instance of AuditService. metrics may be nil.
func NewAuditService(repo auditRepository, logger *zap.Logger, metrics *MetricsService) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger, metrics: metrics}
}

// Record appends one audit row attributing the mutation to the actor.
// An empty actor is recorded as "System". The append runs after the
// primary write has committed; when it fails the caller reports the whole
// operation as failed even though the primary change is already durable.
func (s *AuditService) Record(ctx context.Context, actor, action, entity, targetID, summary string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		actor = models.ActorSystem
	}

	entry := &models.AuditLog{
		PerformedBy:   actor,
		Action:        action,
		TargetEntity:  entity,
		ChangeSummary: summary,
	}
	if targetID != "" {
		entry.TargetID = &targetID
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("audit append failed",
			zap.String("actor", actor),
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrAuditWrite.Code, appErrors.ErrAuditWrite.Status, "failed to append audit log")
	}

	if s.metrics != nil {
		s.metrics.IncMutation(entity, action)
	}
	return nil
}

// List returns the full trail, newest first. Filtering and pagination are
// presentation concerns.
func (s *AuditService) List(ctx context.Context) ([]models.AuditLog, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit logs")
	}
	if entries == nil {
		entries = []models.AuditLog{}
	}
	return entries, nil
}

// Export renders the full trail as CSV or PDF.
func (s *AuditService) Export(ctx context.Context, format string) ([]byte, string, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"Timestamp", "Performed By", "Action", "Entity", "Target", "Summary"},
		Rows:    make([][]string, 0, len(entries)),
	}
	for _, e := range entries {
		target := ""
		if e.TargetID != nil {
			target = *e.TargetID
		}
		data.Rows = append(data.Rows, []string{
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.PerformedBy,
			e.Action,
			e.TargetEntity,
			target,
			e.ChangeSummary,
		})
	}

	switch strings.ToLower(format) {
	case "", "csv":
		out, err := export.NewCSVExporter().Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return out, "text/csv", nil
	case "pdf":
		out, err := export.NewPDFExporter().Render(data, "Audit Trail")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return out, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
