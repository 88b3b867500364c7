package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mkcore/itam-api/internal/models"
)

// DepartmentRepository provides database access for department records.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository creates a new instance of DepartmentRepository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// FindByID returns a department by identifier.
func (r *DepartmentRepository) FindByID(ctx context.Context, id int64) (*models.Department, error) {
	const query = `SELECT id, name, description FROM departments WHERE id = $1 LIMIT 1`
	var dept models.Department
	if err := r.db.GetContext(ctx, &dept, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find department by id: %w", err)
	}
	return &dept, nil
}

// List returns all departments ordered by name.
func (r *DepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	const query = `SELECT id, name, description FROM departments ORDER BY name ASC`
	var depts []models.Department
	if err := r.db.SelectContext(ctx, &depts, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return depts, nil
}

// Create inserts a new department and assigns its identifier.
func (r *DepartmentRepository) Create(ctx context.Context, dept *models.Department) error {
	const query = `INSERT INTO departments (name, description) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, dept.Name, dept.Description).Scan(&dept.ID); err != nil {
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a department.
func (r *DepartmentRepository) Update(ctx context.Context, dept *models.Department) error {
	const query = `UPDATE departments SET name = :name, description = :description WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, dept)
	if err != nil {
		return fmt.Errorf("update department: %w", err)
	}
	return ensureRowAffected(res, "update department")
}

// Delete removes a department. Assets pointing at it keep their
// department_id; callers clear the reference first if they care.
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return ensureRowAffected(res, "delete department")
}
