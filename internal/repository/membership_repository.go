package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mkcore/itam-api/internal/models"
)

// MembershipRepository owns the user/group edge set. Both replace
// operations are full replacements: the new set supersedes the old one,
// and requested ids that do not exist on the opposite side are silently
// dropped.
type MembershipRepository struct {
	db *sqlx.DB
}

// NewMembershipRepository creates a new instance of MembershipRepository.
func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// ReplaceGroupsForUser rewrites the group memberships of a user within a
// transaction.
func (r *MembershipRepository) ReplaceGroupsForUser(ctx context.Context, userID int64, groupIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace user groups: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var existing []int64
	if len(groupIDs) > 0 {
		if err = tx.SelectContext(ctx, &existing, `SELECT id FROM groups WHERE id = ANY($1)`, pq.Array(groupIDs)); err != nil {
			return fmt.Errorf("filter group ids: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM user_groups WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear user groups: %w", err)
	}

	for _, groupID := range existing {
		if _, err = tx.ExecContext(ctx, `INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)`, userID, groupID); err != nil {
			return fmt.Errorf("insert user group edge: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace user groups: %w", err)
	}
	return nil
}

// ReplaceMembersForGroup rewrites the member set of a group within a
// transaction.
func (r *MembershipRepository) ReplaceMembersForGroup(ctx context.Context, groupID int64, userIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace group members: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var existing []int64
	if len(userIDs) > 0 {
		if err = tx.SelectContext(ctx, &existing, `SELECT id FROM users WHERE id = ANY($1)`, pq.Array(userIDs)); err != nil {
			return fmt.Errorf("filter user ids: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM user_groups WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("clear group members: %w", err)
	}

	for _, userID := range existing {
		if _, err = tx.ExecContext(ctx, `INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)`, userID, groupID); err != nil {
			return fmt.Errorf("insert group member edge: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace group members: %w", err)
	}
	return nil
}

// GroupsOfUser returns the groups the user currently belongs to.
func (r *MembershipRepository) GroupsOfUser(ctx context.Context, userID int64) ([]models.GroupRef, error) {
	const query = `
SELECT g.id, g.group_name
FROM user_groups ug
JOIN groups g ON g.id = ug.group_id
WHERE ug.user_id = $1
ORDER BY g.id ASC`
	refs := []models.GroupRef{}
	if err := r.db.SelectContext(ctx, &refs, query, userID); err != nil {
		return nil, fmt.Errorf("groups of user: %w", err)
	}
	return refs, nil
}

// MembersOfGroup returns the current member set of a group.
func (r *MembershipRepository) MembersOfGroup(ctx context.Context, groupID int64) ([]models.MemberRef, error) {
	const query = `
SELECT u.id, u.first_name, u.last_name, u.email
FROM user_groups ug
JOIN users u ON u.id = ug.user_id
WHERE ug.group_id = $1
ORDER BY u.id ASC`
	refs := []models.MemberRef{}
	if err := r.db.SelectContext(ctx, &refs, query, groupID); err != nil {
		return nil, fmt.Errorf("members of group: %w", err)
	}
	return refs, nil
}

// GroupsByUser returns the group references of every user in one query,
// keyed by user id. Used by the user list projection.
func (r *MembershipRepository) GroupsByUser(ctx context.Context) (map[int64][]models.GroupRef, error) {
	const query = `
SELECT ug.user_id, g.id, g.group_name
FROM user_groups ug
JOIN groups g ON g.id = ug.group_id
ORDER BY ug.user_id ASC, g.id ASC`
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("groups by user: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]models.GroupRef)
	for rows.Next() {
		var userID int64
		var ref models.GroupRef
		if err := rows.Scan(&userID, &ref.ID, &ref.GroupName); err != nil {
			return nil, fmt.Errorf("scan group ref: %w", err)
		}
		result[userID] = append(result[userID], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group refs: %w", err)
	}
	return result, nil
}
