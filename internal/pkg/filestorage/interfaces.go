package filestorage

import (
	"context"
	"io"
)

// StoredObject describes a blob after a successful store call.
type StoredObject struct {
	// Path is the blob store's internal key, required to remove the blob later.
	Path string
	// PublicURL is the stable, publicly resolvable address of the blob's bytes.
	PublicURL string
}

// ObjectStorage defines the interface for blob store operations. The store
// addresses objects as <folder>/<generated name> within a single configured
// bucket.
type ObjectStorage interface {
	// Store uploads content under a collision-resistant generated name
	// inside folder, keeping the extension of originalName.
	Store(ctx context.Context, folder, originalName, contentType string, content io.Reader) (*StoredObject, error)

	// Remove deletes a previously stored blob by its path.
	Remove(ctx context.Context, path string) error

	// PublicURL derives the public address for a stored path without a
	// network round trip.
	PublicURL(path string) string
}
