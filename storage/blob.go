package storage

import (
	"context"
	"errors"
)

// Blob keys used by the portal. Each key holds one serialized collection
// and is rewritten whole on every mutation.
const (
	IssuesKey  = "issues"
	UsersKey   = "users"
	SessionKey = "session"
)

// ErrNoBlob is returned by Get when nothing has been stored under the key.
// Callers must not treat a read failure as an empty blob.
var ErrNoBlob = errors.New("storage: no blob stored under key")

// BlobStore is a keyed blob repository. Implementations do not interpret
// the payload; whole-blob read-then-write is the only access pattern.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
