package client

import (
	"context"

	"github.com/dmitrijs2005/fraudcheck/internal/client/models"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*models.Identity, error)
	// Resume exchanges a cached refresh token for a new token pair and
	// returns the identity it belongs to.
	Resume(ctx context.Context, refreshToken string) (*models.Identity, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.Identity, error)
	RefreshToken() string
	OnTokensRefreshed(fn func(refreshToken string))

	ListRecords(ctx context.Context) ([]*models.Record, error)
	GetRecord(ctx context.Context, id string) (*models.Record, error)
	CreateRecord(ctx context.Context, rec *models.Record) (*models.Record, error)
	UpdateRecord(ctx context.Context, rec *models.Record) (*models.Record, error)
	UploadFile(ctx context.Context, key, contentType string, data []byte) (string, error)
}
