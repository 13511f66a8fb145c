package dbclient

import (
	"context"
	"fmt"

	"dayflow/internal/domain"
)

// Backend is a remote persistence collaborator: a PageStore plus
// connection lifecycle. Every shipped backend stores the page as a single
// JSON document keyed by page id, so UpdatePage is last-write-wins — the
// property the autosave scheduler requires of its collaborator.
type Backend interface {
	domain.PageStore

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Close closes the connection.
	Close() error
}

// Driver names accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongo    = "mongo"
)

// Open creates a Backend for the given driver and DSN.
func Open(driver, dsn string) (Backend, error) {
	switch driver {
	case DriverPostgres:
		return newPostgresBackend(dsn)
	case DriverMySQL:
		return newMySQLBackend(dsn)
	case DriverMongo:
		return newMongoBackend(dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}
