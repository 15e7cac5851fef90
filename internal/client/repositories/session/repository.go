// Package session persists the signed-in session between CLI runs as a
// small key/value table in SQLite.
package session

import "context"

const (
	KeyRefreshToken = "refresh_token"
	KeyUserID       = "user_id"
	KeyEmail        = "email"
)

// Repository is a key/value store. Get returns (nil, nil) for absent keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
