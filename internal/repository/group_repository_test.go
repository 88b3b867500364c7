package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkcore/itam-api/internal/models"
)

func TestGroupRepositoryListWithMemberCounts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	rows := sqlmock.NewRows([]string{"id", "group_name", "type", "department", "member_count"}).
		AddRow(1, "IT Security Group", models.GroupTypeSecurity, "IT", 4).
		AddRow(2, "HR Global Team", models.GroupTypeDistribution, "HR", 0)
	mock.ExpectQuery(`SELECT g\.id, g\.group_name, g\.type, g\.department, COUNT\(ug\.user_id\) AS member_count`).
		WillReturnRows(rows)

	groups, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, 4, groups[0].MemberCount)
	assert.Equal(t, 0, groups[1].MemberCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO groups (group_name, type, department) VALUES ($1, $2, $3) RETURNING id`)).
		WithArgs("IT Security Group", models.GroupTypeSecurity, "IT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	group := &models.Group{GroupName: "IT Security Group", Type: models.GroupTypeSecurity, Department: "IT"}
	require.NoError(t, repo.Create(context.Background(), group))
	assert.Equal(t, int64(11), group.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepositoryUpdateMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectExec("UPDATE groups SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Group{ID: 404, GroupName: "Gone", Type: models.GroupTypeSecurity})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM groups WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
