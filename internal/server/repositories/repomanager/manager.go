package repomanager

import (
	"context"
	"database/sql"

	"github.com/konega2/portfolio-sub001/internal/dbx"
	"github.com/konega2/portfolio-sub001/internal/server/repositories/accounts"
)

// RepositoryManager hands out repositories bound to a connection or a
// transaction, and owns the schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
