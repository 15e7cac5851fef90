// Package records persists fraud candidate records in PostgreSQL.
package records

import (
	"context"

	"github.com/dmitrijs2005/fraudcheck/internal/server/models"
)

type Repository interface {
	// SelectAll returns every record, newest first.
	SelectAll(ctx context.Context) ([]*models.Record, error)
	GetByID(ctx context.Context, id string) (*models.Record, error)
	// Create fills in ID and CreatedAt.
	Create(ctx context.Context, rec *models.Record) (*models.Record, error)
	// UpdateOwned applies patch only when the row's added_by equals owner.
	// It returns common.ErrorNotFound when the row does not exist and
	// common.ErrAccessDenied when it belongs to someone else.
	UpdateOwned(ctx context.Context, id string, owner string, patch *models.RecordPatch) (*models.Record, error)
}
