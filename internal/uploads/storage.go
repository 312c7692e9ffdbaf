package uploads

import (
	"context"
	"io"
	"time"

	"github.com/unknowncanwrite/ship/internal/uploads/drivers"
)

var (
	// ErrFileNotFound is returned when no stored file has the requested key.
	ErrFileNotFound = drivers.ErrNotFound
	// ErrInvalidKey is returned for keys that are not a single path segment.
	ErrInvalidKey = drivers.ErrInvalidKey
)

// ObjectInfo is the content type and original name kept with each file.
type ObjectInfo = drivers.ObjectInfo

// StorageDriver is the binary store behind document storage.
type StorageDriver interface {
	// Save writes content under key.
	Save(ctx context.Context, key string, content []byte, info ObjectInfo) error

	// Get streams the file back along with what Save recorded.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the file. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// GenerateURL returns a viewable link for key.
	GenerateURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// ValidateKey rejects keys that are empty or contain path separators.
func ValidateKey(key string) error {
	return drivers.ValidateKey(key)
}
