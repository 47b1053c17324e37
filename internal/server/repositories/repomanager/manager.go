// Package repomanager wires database connections to repositories and applies
// schema migrations at startup.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/profilehub/internal/server/repositories/accounts"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Accounts() accounts.Repository
	RunMigrations(ctx context.Context) error
}
