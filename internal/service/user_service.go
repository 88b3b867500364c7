package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mkcore/itam-api/internal/models"
	"github.com/mkcore/itam-api/internal/repository"
	appErrors "github.com/mkcore/itam-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByAccount(ctx context.Context, account string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

type userMembershipRepository interface {
	ReplaceGroupsForUser(ctx context.Context, userID int64, groupIDs []int64) error
	GroupsOfUser(ctx context.Context, userID int64) ([]models.GroupRef, error)
	GroupsByUser(ctx context.Context) (map[int64][]models.GroupRef, error)
}

// UserRequest carries the full field set for creating or updating a user.
// Update replaces every mutable field; the password is the one exception
// and is kept when the payload leaves it empty.
type UserRequest struct {
	FirstName   string      `json:"first_name" validate:"required"`
	LastName    string      `json:"last_name" validate:"required"`
	UserStatus  string      `json:"user_status" validate:"required,oneof=Active Disabled"`
	AccountType string      `json:"account_type" validate:"required,oneof=User Service System Consultant"`
	Account     string      `json:"account" validate:"required"`
	Domain      string      `json:"domain" validate:"required"`
	Upn         string      `json:"upn" validate:"required"`
	Email       string      `json:"email" validate:"required,email"`
	Password    string      `json:"password"`
	JobTitle    string      `json:"job_title" validate:"required"`
	Company     string      `json:"company" validate:"required"`
	Description string      `json:"description"`
	ManagerName string      `json:"manager_name"`
	Department  string      `json:"department" validate:"required"`
	Role        models.Role `json:"role" validate:"required,oneof=Admin Technician User"`
	GroupIDs    []int64     `json:"group_ids"`
}

// applyDefaults fills the fields the original intake forms defaulted,
// including the firstname.lastname account derivation.
func (r *UserRequest) applyDefaults() {
	if r.UserStatus == "" {
		r.UserStatus = models.UserStatusActive
	}
	if r.AccountType == "" {
		r.AccountType = models.AccountTypeUser
	}
	if r.Role == "" {
		r.Role = models.RoleUser
	}
	if r.Account == "" && r.FirstName != "" && r.LastName != "" {
		r.Account = strings.ToLower(r.FirstName + "." + r.LastName)
	}
}

// UserService coordinates user mutations: validation, storage write,
// membership sync, audit append.
type UserService struct {
	repo        userRepository
	memberships userMembershipRepository
	audit       auditRecorder
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, memberships userMembershipRepository, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, memberships: memberships, audit: audit, validator: validate, logger: logger}
}

// List returns all users with their group references attached.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}

	groupsByUser, err := s.memberships.GroupsByUser(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load memberships")
	}

	for i := range users {
		refs := groupsByUser[users[i].ID]
		if refs == nil {
			refs = []models.GroupRef{}
		}
		users[i].Groups = refs
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Get returns a user with its current group memberships.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return s.withGroups(ctx, user)
}

// Create adds a new user, replaces its membership set with the requested
// group ids and appends one audit row.
func (s *UserService) Create(ctx context.Context, req UserRequest, actor string) (*models.User, error) {
	req.applyDefaults()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	if req.Password == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "password is required")
	}

	user := &models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		UserStatus:  req.UserStatus,
		AccountType: req.AccountType,
		Account:     req.Account,
		Domain:      req.Domain,
		Upn:         req.Upn,
		Email:       req.Email,
		Password:    req.Password,
		JobTitle:    req.JobTitle,
		Company:     req.Company,
		Description: req.Description,
		ManagerName: req.ManagerName,
		Department:  req.Department,
		Role:        req.Role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "account already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	if err := s.memberships.ReplaceGroupsForUser(ctx, user.ID, req.GroupIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sync memberships")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionCreate, "User", strconv.FormatInt(user.ID, 10), fmt.Sprintf("Created user %s", user.Account)); err != nil {
		return nil, err
	}

	return s.withGroups(ctx, user)
}

// Update fully replaces the mutable fields of a user and its membership
// set. The stored password survives an empty payload password.
func (s *UserService) Update(ctx context.Context, id int64, req UserRequest, actor string) (*models.User, error) {
	req.applyDefaults()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.UserStatus = req.UserStatus
	user.AccountType = req.AccountType
	user.Account = req.Account
	user.Domain = req.Domain
	user.Upn = req.Upn
	user.Email = req.Email
	if req.Password != "" {
		user.Password = req.Password
	}
	user.JobTitle = req.JobTitle
	user.Company = req.Company
	user.Description = req.Description
	user.ManagerName = req.ManagerName
	user.Department = req.Department
	user.Role = req.Role

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// A concurrent delete won the race.
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		case errors.Is(err, repository.ErrDuplicateAccount):
			return nil, appErrors.Clone(appErrors.ErrConflict, "account already exists")
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
		}
	}

	if err := s.memberships.ReplaceGroupsForUser(ctx, user.ID, req.GroupIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sync memberships")
	}

	if err := s.audit.Record(ctx, actor, models.AuditActionUpdate, "User", strconv.FormatInt(user.ID, 10), fmt.Sprintf("Updated user %s", user.Account)); err != nil {
		return nil, err
	}

	return s.withGroups(ctx, user)
}

// Delete removes a user. Groups that referenced it lose the edge via the
// store cascade; assets assigned to it keep their dangling reference.
func (s *UserService) Delete(ctx context.Context, id int64, actor string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user")
	}

	return s.audit.Record(ctx, actor, models.AuditActionDelete, "User", strconv.FormatInt(id, 10), fmt.Sprintf("Deleted user %s", user.Account))
}

func (s *UserService) withGroups(ctx context.Context, user *models.User) (*models.User, error) {
	refs, err := s.memberships.GroupsOfUser(ctx, user.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load memberships")
	}
	user.Groups = refs
	return user, nil
}
