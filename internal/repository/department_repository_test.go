package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkcore/itam-api/internal/models"
)

func TestDepartmentRepositoryListOrderedByName(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "description"}).
		AddRow(5, "Accounting", "Accounting Department").
		AddRow(1, "IT", "IT Department")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description FROM departments ORDER BY name ASC`)).
		WillReturnRows(rows)

	depts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, depts, 2)
	assert.Equal(t, "Accounting", depts[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewDepartmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO departments (name, description) VALUES ($1, $2) RETURNING id`)).
		WithArgs("IT", "IT Department").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	dept := &models.Department{Name: "IT", Description: "IT Department"}
	require.NoError(t, repo.Create(context.Background(), dept))
	assert.Equal(t, int64(1), dept.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
