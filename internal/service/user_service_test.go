package service

import (
	"context"
	"database/sql"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkcore/itam-api/internal/models"
	"github.com/mkcore/itam-api/internal/repository"
	appErrors "github.com/mkcore/itam-api/pkg/errors"
)

type auditRecord struct {
	actor, action, entity, targetID, summary string
}

type recorderStub struct {
	records []auditRecord
	err     error
}

func (r *recorderStub) Record(ctx context.Context, actor, action, entity, targetID, summary string) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, auditRecord{actor, action, entity, targetID, summary})
	return nil
}

type memUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*models.User)}
}

func (m *memUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (m *memUserRepo) FindByAccount(ctx context.Context, account string) (*models.User, error) {
	for _, user := range m.users {
		if user.Account == account {
			copied := *user
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) List(ctx context.Context) ([]models.User, error) {
	ids := make([]int64, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.users[id])
	}
	return out, nil
}

func (m *memUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range m.users {
		if existing.Account == user.Account {
			return repository.ErrDuplicateAccount
		}
	}
	m.nextID++
	user.ID = m.nextID
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.users, id)
	return nil
}

type memUserEdges struct {
	byUser map[int64][]models.GroupRef
}

func newMemUserEdges() *memUserEdges {
	return &memUserEdges{byUser: make(map[int64][]models.GroupRef)}
}

func (m *memUserEdges) ReplaceGroupsForUser(ctx context.Context, userID int64, groupIDs []int64) error {
	refs := make([]models.GroupRef, 0, len(groupIDs))
	for _, id := range groupIDs {
		refs = append(refs, models.GroupRef{ID: id})
	}
	m.byUser[userID] = refs
	return nil
}

func (m *memUserEdges) GroupsOfUser(ctx context.Context, userID int64) ([]models.GroupRef, error) {
	refs, ok := m.byUser[userID]
	if !ok {
		return []models.GroupRef{}, nil
	}
	return refs, nil
}

func (m *memUserEdges) GroupsByUser(ctx context.Context) (map[int64][]models.GroupRef, error) {
	return m.byUser, nil
}

func validUserRequest() UserRequest {
	return UserRequest{
		FirstName:   "Jane",
		LastName:    "Doe",
		UserStatus:  models.UserStatusActive,
		AccountType: models.AccountTypeUser,
		Account:     "jane.doe",
		Domain:      "company.com",
		Upn:         "jane.doe@company.com",
		Email:       "jane.doe@company.com",
		Password:    "secret",
		JobTitle:    "Engineer",
		Company:     "MyCompany",
		Department:  "IT",
		Role:        models.RoleUser,
	}
}

func TestUserServiceCreateDerivesAccount(t *testing.T) {
	repo := newMemUserRepo()
	recorder := &recorderStub{}
	svc := NewUserService(repo, newMemUserEdges(), recorder, nil, nil)

	req := validUserRequest()
	req.Account = ""
	req.Upn = "jane.doe@company.com"

	user, err := svc.Create(context.Background(), req, "admin")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", user.Account)
	assert.NotNil(t, user.Groups)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, "admin", recorder.records[0].actor)
	assert.Equal(t, models.AuditActionCreate, recorder.records[0].action)
	assert.Equal(t, "User", recorder.records[0].entity)
}

func TestUserServiceCreateRequiresPassword(t *testing.T) {
	svc := NewUserService(newMemUserRepo(), newMemUserEdges(), &recorderStub{}, nil, nil)

	req := validUserRequest()
	req.Password = ""

	_, err := svc.Create(context.Background(), req, "admin")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestUserServiceCreateDuplicateAccount(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, newMemUserEdges(), &recorderStub{}, nil, nil)

	_, err := svc.Create(context.Background(), validUserRequest(), "admin")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validUserRequest(), "admin")
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestUserServiceUpdateKeepsStoredPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo, newMemUserEdges(), &recorderStub{}, nil, nil)

	created, err := svc.Create(context.Background(), validUserRequest(), "admin")
	require.NoError(t, err)

	req := validUserRequest()
	req.Password = ""
	req.JobTitle = "Senior Engineer"

	updated, err := svc.Update(context.Background(), created.ID, req, "admin")
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", updated.JobTitle)
	assert.Equal(t, "secret", repo.users[created.ID].Password)
}

func TestUserServiceUpdateNotFound(t *testing.T) {
	svc := NewUserService(newMemUserRepo(), newMemUserEdges(), &recorderStub{}, nil, nil)

	_, err := svc.Update(context.Background(), 404, validUserRequest(), "admin")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestUserServiceDeleteAudits(t *testing.T) {
	repo := newMemUserRepo()
	recorder := &recorderStub{}
	svc := NewUserService(repo, newMemUserEdges(), recorder, nil, nil)

	created, err := svc.Create(context.Background(), validUserRequest(), "admin")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, "tech"))
	assert.Empty(t, repo.users)

	require.Len(t, recorder.records, 2)
	last := recorder.records[1]
	assert.Equal(t, "tech", last.actor)
	assert.Equal(t, models.AuditActionDelete, last.action)
	assert.Contains(t, last.summary, "jane.doe")
}

func TestUserServiceCreateAuditFailureLeavesRowDurable(t *testing.T) {
	repo := newMemUserRepo()
	recorder := &recorderStub{err: appErrors.Clone(appErrors.ErrAuditWrite, "audit trail append failed")}
	svc := NewUserService(repo, newMemUserEdges(), recorder, nil, nil)

	_, err := svc.Create(context.Background(), validUserRequest(), "admin")
	assert.ErrorIs(t, err, appErrors.ErrAuditWrite)

	// The primary write committed before the audit append ran.
	assert.Len(t, repo.users, 1)
}

func TestUserServiceListAttachesGroupRefs(t *testing.T) {
	repo := newMemUserRepo()
	edges := newMemUserEdges()
	svc := NewUserService(repo, edges, &recorderStub{}, nil, nil)

	first, err := svc.Create(context.Background(), validUserRequest(), "admin")
	require.NoError(t, err)

	second := validUserRequest()
	second.Account = "john.roe"
	second.Email = "john.roe@company.com"
	_, err = svc.Create(context.Background(), second, "admin")
	require.NoError(t, err)

	require.NoError(t, edges.ReplaceGroupsForUser(context.Background(), first.ID, []int64{3}))

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotNil(t, u.Groups)
	}
	assert.Len(t, users[0].Groups, 1)
	assert.Empty(t, users[1].Groups)
}
