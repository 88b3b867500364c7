package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mkcore/itam-api/internal/models"
)

// GroupRepository provides database access for group records.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository creates a new instance of GroupRepository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// FindByID returns a group by identifier.
func (r *GroupRepository) FindByID(ctx context.Context, id int64) (*models.Group, error) {
	const query = `SELECT id, group_name, type, department FROM groups WHERE id = $1 LIMIT 1`
	var group models.Group
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find group by id: %w", err)
	}
	return &group, nil
}

// List returns all groups with their member counts.
func (r *GroupRepository) List(ctx context.Context) ([]models.GroupSummary, error) {
	const query = `
SELECT g.id, g.group_name, g.type, g.department, COUNT(ug.user_id) AS member_count
FROM groups g
LEFT JOIN user_groups ug ON ug.group_id = g.id
GROUP BY g.id, g.group_name, g.type, g.department
ORDER BY g.id ASC`
	var groups []models.GroupSummary
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// Create inserts a new group and assigns its identifier.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	const query = `INSERT INTO groups (group_name, type, department) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, group.GroupName, group.Type, group.Department).Scan(&group.ID); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a group.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	const query = `UPDATE groups SET group_name = :group_name, type = :type, department = :department WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, group)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return ensureRowAffected(res, "update group")
}

// Delete removes a group. Membership edges cascade in the same statement.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return ensureRowAffected(res, "delete group")
}
