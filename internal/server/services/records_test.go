package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/fraudcheck/internal/common"
	"github.com/dmitrijs2005/fraudcheck/internal/server/config"
	"github.com/dmitrijs2005/fraudcheck/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (f *fakeStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	if f.err != nil {
		return f.err
	}
	f.key, f.contentType, f.body = key, contentType, body
	return nil
}

func (f *fakeStore) PublicURL(key string) string { return "https://cdn.example/resumes/" + key }

func newRecordService(t *testing.T, repo *fakeRecordsRepo, store *fakeStore) *RecordService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	return NewRecordService(db, &fakeRepoManager{c: repo}, store, &config.Config{MaxUploadSizeMB: 1})
}

func TestRecordService_ListAndGet(t *testing.T) {
	repo := &fakeRecordsRepo{
		list: []*models.Record{{ID: "r2"}, {ID: "r1"}},
		get:  &models.Record{ID: "r1", Name: "Ann"},
	}
	s := newRecordService(t, repo, &fakeStore{})

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	rec, err := s.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", rec.Name)

	repo.err = common.ErrorNotFound
	_, err = s.Get(context.Background(), "r9")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.List(context.Background())
	assert.ErrorContains(t, err, "error listing records")
}

func TestRecordService_Create(t *testing.T) {
	tests := []struct {
		name        string
		rec         models.Record
		wantErr     error
		wantAddedBy string
	}{
		{name: "added_by defaults to caller", rec: models.Record{Name: "Ann", Email: "ann@x.io"}, wantAddedBy: "me@x.io"},
		{name: "explicit caller", rec: models.Record{Name: "Ann", Email: "ann@x.io", AddedBy: "me@x.io"}, wantAddedBy: "me@x.io"},
		{name: "sentinel replaced by caller", rec: models.Record{Name: "Ann", Email: "ann@x.io", AddedBy: common.UnknownAddedBy}, wantAddedBy: "me@x.io"},
		{name: "someone else replaced by caller", rec: models.Record{Name: "Ann", Email: "ann@x.io", AddedBy: "other@x.io"}, wantAddedBy: "me@x.io"},
		{name: "missing name", rec: models.Record{Name: "  ", Email: "ann@x.io"}, wantErr: common.ErrorValidation},
		{name: "missing email", rec: models.Record{Name: "Ann"}, wantErr: common.ErrorValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRecordsRepo{}
			s := newRecordService(t, repo, &fakeStore{})

			rec := tt.rec
			got, err := s.Create(context.Background(), "me@x.io", &rec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "r-new", got.ID)
			assert.Equal(t, tt.wantAddedBy, repo.created.AddedBy)
		})
	}
}

func TestRecordService_Update(t *testing.T) {
	repo := &fakeRecordsRepo{}
	s := newRecordService(t, repo, &fakeStore{})

	rec, err := s.Update(context.Background(), "me@x.io", "r1", &models.RecordPatch{Name: "Ann", Email: "ann@x.io"})
	require.NoError(t, err)
	assert.Equal(t, "me@x.io", repo.updatedBy)
	assert.Equal(t, "me@x.io", rec.AddedBy)

	_, err = s.Update(context.Background(), "me@x.io", "r1", &models.RecordPatch{Name: "", Email: "ann@x.io"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	repo.err = common.ErrAccessDenied
	_, err = s.Update(context.Background(), "intruder@x.io", "r1", &models.RecordPatch{Name: "A", Email: "a@x.io"})
	assert.ErrorIs(t, err, common.ErrAccessDenied)
}

func TestRecordService_Upload(t *testing.T) {
	store := &fakeStore{}
	s := newRecordService(t, &fakeRecordsRepo{}, store)

	url, err := s.Upload(context.Background(), "u1", "u1/1700000000000-abc.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/resumes/u1/1700000000000-abc.pdf", url)
	assert.Equal(t, "u1/1700000000000-abc.pdf", store.key)

	_, err = s.Upload(context.Background(), "u1", "u1/x.PNG", "", []byte{1})
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", store.contentType)
}

func TestRecordService_UploadRejects(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		data    []byte
		wantErr error
	}{
		{"other user's prefix", "u2/a.pdf", []byte{1}, common.ErrAccessDenied},
		{"no prefix", "a.pdf", []byte{1}, common.ErrAccessDenied},
		{"prefix only", "u1/", []byte{1}, common.ErrAccessDenied},
		{"traversal", "u1/../u2/a.pdf", []byte{1}, common.ErrorValidation},
		{"bad extension", "u1/a.exe", []byte{1}, common.ErrUnsupportedFileType},
		{"no extension", "u1/a", []byte{1}, common.ErrUnsupportedFileType},
		{"empty", "u1/a.pdf", nil, common.ErrorValidation},
		{"too large", "u1/a.pdf", []byte(strings.Repeat("x", 1<<20+1)), common.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			s := newRecordService(t, &fakeRecordsRepo{}, store)

			_, err := s.Upload(context.Background(), "u1", tt.key, "application/pdf", tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.key)
		})
	}
}

func TestRecordService_UploadStoreError(t *testing.T) {
	s := newRecordService(t, &fakeRecordsRepo{}, &fakeStore{err: common.ErrAlreadyExists})

	_, err := s.Upload(context.Background(), "u1", "u1/a.pdf", "application/pdf", []byte{1})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}
