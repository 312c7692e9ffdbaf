package uploads

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const defaultMimeType = "application/octet-stream"

// keyPrefixLen is the length of "<uuid>-".
const keyPrefixLen = 37

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// UploadService stores shipment documents through a StorageDriver.
type UploadService struct {
	Driver StorageDriver
}

func NewUploadService(driver StorageDriver) *UploadService {
	return &UploadService{Driver: driver}
}

// Upload stores content under a fresh key that embeds the original name.
func (s *UploadService) Upload(ctx context.Context, name, mime string, content []byte) (*FileMetadata, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("file name cannot be empty")
	}
	if mime == "" {
		mime = defaultMimeType
	}
	key := fmt.Sprintf("%s-%s", uuid.NewString(), sanitizeName(name))

	if err := s.Driver.Save(ctx, key, content, ObjectInfo{ContentType: mime, Name: name}); err != nil {
		return nil, fmt.Errorf("storage driver failed: %w", err)
	}

	url, err := s.Driver.GenerateURL(ctx, key, 0)
	if err != nil {
		if delErr := s.Driver.Delete(ctx, key); delErr != nil {
			slog.WarnContext(ctx, "failed to cleanup orphaned file", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to generate URL: %w", err)
	}

	slog.InfoContext(ctx, "file uploaded", "key", key, "size", len(content))
	return &FileMetadata{
		Key:      key,
		Name:     name,
		URL:      url,
		Size:     int64(len(content)),
		MimeType: mime,
	}, nil
}

// Fetch reads a stored file fully into memory.
func (s *UploadService) Fetch(ctx context.Context, key string) (*File, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	body, info, err := s.Driver.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Files written before names were recorded fall back to the key.
	name := info.Name
	if name == "" {
		name = NameFromKey(key)
	}
	mime := info.ContentType
	if mime == "" {
		mime = defaultMimeType
	}
	return &File{Name: name, MimeType: mime, Data: data}, nil
}

// Delete removes a stored file.
func (s *UploadService) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := s.Driver.Delete(ctx, key); err != nil {
		return fmt.Errorf("storage driver failed: %w", err)
	}
	slog.InfoContext(ctx, "file deleted", "key", key)
	return nil
}

// NameFromKey recovers the sanitized original name from a generated key.
func NameFromKey(key string) string {
	if len(key) > keyPrefixLen && isUUID(key[:keyPrefixLen-1]) && key[keyPrefixLen-1] == '-' {
		return key[keyPrefixLen:]
	}
	return key
}

// sanitizeName keeps a name safe to use as a single path segment.
func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = strings.Trim(unsafeNameChars.ReplaceAllString(name, "_"), "._")
	if name == "" {
		return "file"
	}
	return name
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
