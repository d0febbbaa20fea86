// Package metadata stores small key/value records in the local SQLite
// database. The session store keeps the access token and the current user here.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/skillshare/internal/dbx"
)

// Repository is a key/value store. Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// WithDB returns a repository bound to db, typically a transaction
	// handed out by dbx.WithTx.
	WithDB(db dbx.DBTX) Repository
}
