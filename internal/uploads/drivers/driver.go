package drivers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// ErrInvalidKey is returned for keys that could escape the storage namespace.
var ErrInvalidKey = errors.New("invalid object key")

// ValidateKey accepts flat keys only.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// ObjectInfo is stored next to the object bytes.
type ObjectInfo struct {
	ContentType string `json:"contentType"`
	Name        string `json:"name,omitempty"`
}
