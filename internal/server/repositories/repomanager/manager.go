// Package repomanager wires the server repositories to a shared database
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/ssrdocs/internal/server/repositories/deliverables"
	"github.com/dmitrijs2005/ssrdocs/internal/server/repositories/users"
)

// RepositoryManager hands out the repositories sharing one connection.
type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Deliverables() deliverables.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
