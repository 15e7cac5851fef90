// Package users declares the server-side user repository and its
// PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/fraudcheck/internal/server/models"
)

type Repository interface {
	// Create inserts the user and fills in ID and CreatedAt. A duplicate
	// email yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
