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

type groupRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Group, error)
	List(ctx context.Context) ([]models.GroupSummary, error)
	Create(ctx context.Context, group *models.Group) error
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id int64) error
}

type groupMembershipRepository interface {
	ReplaceMembersForGroup(ctx context.Context, groupID int64, userIDs []int64) error
	MembersOfGroup(ctx context.Context, groupID int64) ([]models.MemberRef, error)
}

// GroupRequest carries the field set for creating or updating a group.
// The member id list fully replaces the current member set; ids that do
// not name an existing user are dropped without failing the operation.
type GroupRequest struct {
	GroupName  string  `json:"group_name" validate:"required"`
	Type       string  `json:"type" validate:"required,oneof=Security Distribution"`
	Department string  `json:"department" validate:"required"`
	MemberIDs  []int64 `json:"member_ids"`
}

// GroupService coordinates group mutations.
type GroupService struct {
	repo        groupRepository
	memberships groupMembershipRepository
	audit       auditRecorder
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewGroupService creates an instance of GroupService.
func NewGroupService(repo groupRepository, memberships groupMembershipRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &GroupService{repo: repo, memberships: memberships, audit: audit, validator: validate, logger: logger}
}

// List returns all groups with member counts.
func (s *GroupService) List(ctx context.Context) ([]models.GroupSummary, error) {
	groups, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list groups")
	}
	if groups == nil {
		groups = []models.GroupSummary{}
	}
	return groups, nil
}

// Get returns a group with its current member set.
func (s *GroupService) Get(ctx context.Context, id int64) (*models.Group, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}
	return s.withMembers(ctx, group)
}

// Create adds a new group, sets its member set and appends one audit row.
func (s *GroupService) Create(ctx context.Context, req GroupRequest, actor string) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}

	group := &models.Group{
		GroupName:  req.GroupName,
		Type:       req.Type,
		Department: req.Department,
	}

	if err := s.repo.Create(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create group")
	}

	if err := s.memberships.ReplaceMembersForGroup(ctx, group.ID, req.MemberIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sync members")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionCreate, "Group", strconv.FormatInt(group.ID, 10), fmt.Sprintf("Created group %s", group.GroupName)); err != nil {
		return nil, err
	}

	return s.withMembers(ctx, group)
}

// Update fully replaces the mutable fields and member set of a group.
func (s *GroupService) Update(ctx context.Context, id int64, req GroupRequest, actor string) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}

	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}

	group.GroupName = req.GroupName
	group.Type = req.Type
	group.Department = req.Department

	if err := s.repo.Update(ctx, group); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update group")
	}

	if err := s.memberships.ReplaceMembersForGroup(ctx, group.ID, req.MemberIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sync members")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionUpdate, "Group", strconv.FormatInt(group.ID, 10), fmt.Sprintf("Updated group %s", group.GroupName)); err != nil {
		return nil, err
	}

	return s.withMembers(ctx, group)
}

// Delete removes a group. Users that belonged to it lose the edge via the
// store cascade.
func (s *GroupService) Delete(ctx context.Context, id int64, actor string) error {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "group not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete group")
	}

	return s.audit.Record(ctx, actor, models.AuditActionDelete, "Group", strconv.FormatInt(id, 10), fmt.Sprintf("Deleted group %s", group.GroupName))
}

func (s *GroupService) withMembers(ctx context.Context, group *models.Group) (*models.Group, error) {
	members, err := s.memberships.MembersOfGroup(ctx, group.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load members")
	}
	group.Members = members
	return group, nil
}
