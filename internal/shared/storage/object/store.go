package object

import (
	"context"
	"io"
)

// ObjectStore persists uploaded documents. Save namespaces the object by
// user, sniffs the content type and returns the key needed to Open it later.
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, size int64, contentType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
