package services

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/dmitrijs2005/fraudcheck/internal/common"
	"github.com/dmitrijs2005/fraudcheck/internal/server/config"
	"github.com/dmitrijs2005/fraudcheck/internal/server/models"
	"github.com/dmitrijs2005/fraudcheck/internal/server/repositories/repomanager"
)

// ObjectStore is the part of storage.S3Store the record service needs.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	PublicURL(key string) string
}

type RecordService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	store          ObjectStore
	maxUploadBytes int64
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager, store ObjectStore, cfg *config.Config) *RecordService {
	return &RecordService{
		db:             db,
		repomanager:    m,
		store:          store,
		maxUploadBytes: cfg.MaxUploadBytes(),
	}
}

func (s *RecordService) List(ctx context.Context) ([]*models.Record, error) {
	recs, err := s.repomanager.Records(s.db).SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	return recs, nil
}

func (s *RecordService) Get(ctx context.Context, id string) (*models.Record, error) {
	rec, err := s.repomanager.Records(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading record: %w", err)
	}
	return rec, nil
}

// Create stores rec on behalf of callerEmail. AddedBy always becomes the
// caller; whatever the client sent is discarded.
func (s *RecordService) Create(ctx context.Context, callerEmail string, rec *models.Record) (*models.Record, error) {
	if err := validateFields(rec.Name, rec.Email); err != nil {
		return nil, err
	}

	rec.AddedBy = callerEmail

	created, err := s.repomanager.Records(s.db).Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("error creating record: %w", err)
	}
	return created, nil
}

// Update applies patch to record id. Only the creator may update; this is
// the authoritative ownership check.
func (s *RecordService) Update(ctx context.Context, callerEmail, id string, patch *models.RecordPatch) (*models.Record, error) {
	if err := validateFields(patch.Name, patch.Email); err != nil {
		return nil, err
	}

	rec, err := s.repomanager.Records(s.db).UpdateOwned(ctx, id, callerEmail, patch)
	if err != nil {
		return nil, fmt.Errorf("error updating record: %w", err)
	}
	return rec, nil
}

// Upload stores data under key and returns its public URL. Keys must live
// under the caller's own "<userID>/" prefix and keep an accepted extension.
func (s *RecordService) Upload(ctx context.Context, callerID, key, contentType string, data []byte) (string, error) {
	if err := validateKey(callerID, key); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", common.ErrorValidation)
	}
	if s.maxUploadBytes > 0 && int64(len(data)) > s.maxUploadBytes {
		return "", common.ErrFileTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.store.Put(ctx, key, contentType, data); err != nil {
		return "", fmt.Errorf("error uploading file: %w", err)
	}
	return s.store.PublicURL(key), nil
}

func validateFields(name, email string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: name and email are required", common.ErrorValidation)
	}
	return nil
}

func validateKey(callerID, key string) error {
	prefix := callerID + "/"
	if callerID == "" || !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
		return fmt.Errorf("%w: key must be under %q", common.ErrAccessDenied, prefix)
	}
	if strings.Contains(key, "..") || path.Clean(key) != key {
		return fmt.Errorf("%w: malformed key", common.ErrorValidation)
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(key)), ".")
	if !slices.Contains(common.AcceptedAttachmentExtensions, ext) {
		return common.ErrUnsupportedFileType
	}
	return nil
}
