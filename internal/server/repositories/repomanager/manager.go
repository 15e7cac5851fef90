package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/fraudcheck/internal/dbx"
	"github.com/dmitrijs2005/fraudcheck/internal/server/repositories/records"
	"github.com/dmitrijs2005/fraudcheck/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/fraudcheck/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a *sql.DB or a *sql.Tx,
// so services can choose per call whether work runs in a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Records(db dbx.DBTX) records.Repository
}
