package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mkcore/itam-api/internal/models"
)

// ErrDuplicateAccount is returned when a write violates the unique
// account constraint.
var ErrDuplicateAccount = errors.New("account already exists")

const uniqueViolation = "23505"

// UserRepository provides database access for user records.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, first_name, last_name, user_status, account_type, account, domain, upn, email, password, job_title, company, description, manager_name, department, role`

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// FindByAccount returns a user by account name.
func (r *UserRepository) FindByAccount(ctx context.Context, account string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE account = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by account: %w", err)
	}
	return &user, nil
}

// List returns all users ordered by identifier.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create inserts a new user and assigns its identifier.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO users
	(first_name, last_name, user_status, account_type, account, domain, upn, email, password, job_title, company, description, manager_name, department, role)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		user.FirstName, user.LastName, user.UserStatus, user.AccountType,
		user.Account, user.Domain, user.Upn, user.Email, user.Password,
		user.JobTitle, user.Company, user.Description, user.ManagerName,
		user.Department, user.Role,
	).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicateAccount
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a user. sql.ErrNoRows is returned
// when the row no longer exists.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	const query = `UPDATE users SET
	first_name = :first_name, last_name = :last_name, user_status = :user_status,
	account_type = :account_type, account = :account, domain = :domain, upn = :upn,
	email = :email, password = :password, job_title = :job_title, company = :company,
	description = :description, manager_name = :manager_name, department = :department,
	role = :role
	WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicateAccount
		}
		return fmt.Errorf("update user: %w", err)
	}
	return ensureRowAffected(res, "update user")
}

// Delete removes a user. Membership edges cascade in the same statement.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return ensureRowAffected(res, "delete user")
}

// ensureRowAffected maps a zero-row write to sql.ErrNoRows so callers can
// re-report a vanished target as not found.
func ensureRowAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
