package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to one storage backend and
// owns its lifecycle.
type RepositoryManager interface {
	// RunMigrations brings the schema up to date.
	RunMigrations(ctx context.Context) error

	// Users returns a repository outside of any transaction.
	Users() users.Repository

	// InTx runs fn with a users repository bound to a single transaction.
	InTx(ctx context.Context, fn func(ctx context.Context, repo users.Repository) error) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
