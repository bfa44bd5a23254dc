// Package artifact provides the client for the durable object store holding
// raw uploaded bytes. The store is keyed by opaque string and carries no
// business logic.
package artifact

import (
	"context"
	"strings"
	"time"
)

// ObjectInfo describes one stored object as returned by List.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Store is the artifact store contract used by the uploader.
type Store interface {
	// Put writes one object under key with the given content type and
	// user-defined metadata. One durable write per call; no retries.
	Put(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) error

	// List returns the objects whose keys start with prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Head returns the user-defined metadata attached to an object.
	Head(ctx context.Context, key string) (map[string]string, error)
}

// ContentTypeFor derives the content type from the filename suffix. Anything
// that is not a JPEG is treated as PNG, matching the processing worker.
func ContentTypeFor(filename string) string {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg") {
		return "image/jpeg"
	}
	return "image/png"
}
