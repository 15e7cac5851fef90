package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fraudcheck/internal/dbx"
	"github.com/dmitrijs2005/fraudcheck/internal/server/models"
	"github.com/dmitrijs2005/fraudcheck/internal/server/repositories/records"
	"github.com/dmitrijs2005/fraudcheck/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/fraudcheck/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	created *models.User
	byEmail map[string]*models.User
	byID    map[string]*models.User
	err     error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u.ID = "u-new"
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return lookup(f.byEmail, email, f.err)
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return lookup(f.byID, id, f.err)
}

func lookup(m map[string]*models.User, k string, err error) (*models.User, error) {
	if err != nil {
		return nil, err
	}
	if u, ok := m[k]; ok {
		return u, nil
	}
	return nil, notFound
}

type fakeRefreshRepo struct {
	tokens    map[string]*models.RefreshToken
	findErr   error
	deleteErr error
	createErr error
	deleted   []string
	created   []string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if t, ok := f.tokens[token]; ok {
		return t, nil
	}
	return nil, notFound
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeRecordsRepo struct {
	records.Repository
	list      []*models.Record
	get       *models.Record
	created   *models.Record
	updated   *models.RecordPatch
	updatedBy string
	err       error
}

func (f *fakeRecordsRepo) SelectAll(ctx context.Context) ([]*models.Record, error) {
	return f.list, f.err
}

func (f *fakeRecordsRepo) GetByID(ctx context.Context, id string) (*models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.get, nil
}

func (f *fakeRecordsRepo) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec.ID = "r-new"
	f.created = rec
	return rec, nil
}

func (f *fakeRecordsRepo) UpdateOwned(ctx context.Context, id, owner string, patch *models.RecordPatch) (*models.Record, error) {
	f.updated, f.updatedBy = patch, owner
	if f.err != nil {
		return nil, f.err
	}
	return &models.Record{ID: id, Name: patch.Name, Email: patch.Email, AddedBy: owner}, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	c *fakeRecordsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Records(db dbx.DBTX) records.Repository             { return m.c }
