package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mkcore/itam-api/internal/models"
	appErrors "github.com/mkcore/itam-api/pkg/errors"
)

type departmentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	Create(ctx context.Context, dept *models.Department) error
	Update(ctx context.Context, dept *models.Department) error
	Delete(ctx context.Context, id int64) error
}

// DepartmentRequest carries the field set for department mutations.
type DepartmentRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// DepartmentService coordinates department mutations.
type DepartmentService struct {
	repo      departmentRepository
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDepartmentService creates an instance of DepartmentService.
func NewDepartmentService(repo departmentRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *DepartmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DepartmentService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// List returns all departments.
func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	depts, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list departments")
	}
	if depts == nil {
		depts = []models.Department{}
	}
	return depts, nil
}

// Get returns a department by id.
func (s *DepartmentService) Get(ctx context.Context, id int64) (*models.Department, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}
	return dept, nil
}

// Create adds a new department and appends one audit row.
func (s *DepartmentService) Create(ctx context.Context, req DepartmentRequest, actor string) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}

	dept := &models.Department{Name: req.Name, Description: req.Description}
	if err := s.repo.Create(ctx, dept); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create department")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionCreate, "Department", strconv.FormatInt(dept.ID, 10), fmt.Sprintf("Created department %s", dept.Name)); err != nil {
		return nil, err
	}
	return dept, nil
}

// Update replaces the mutable fields of a department.
func (s *DepartmentService) Update(ctx context.Context, id int64, req DepartmentRequest, actor string) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}

	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}

	dept.Name = req.Name
	dept.Description = req.Description

	if err := s.repo.Update(ctx, dept); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update department")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionUpdate, "Department", strconv.FormatInt(dept.ID, 10), fmt.Sprintf("Updated department %s", dept.Name)); err != nil {
		return nil, err
	}
	return dept, nil
}

// Delete removes a department. Assets pointing at it keep their dangling
// department_id; the reference is not cleared here.
func (s *DepartmentService) Delete(ctx context.Context, id int64, actor string) error {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "department not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete department")
	}

	return s.audit.Record(ctx, actor, models.AuditActionDelete, "Department", strconv.FormatInt(id, 10), fmt.Sprintf("Deleted department %s", dept.Name))
}
