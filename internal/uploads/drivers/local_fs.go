package drivers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalFSDriver keeps documents on local disk, fanned out into two levels of
// directories taken from the key prefix.
type LocalFSDriver struct {
	BaseDir   string
	PublicURL string
}

// NewLocalFSDriver creates baseDir if needed. publicURL is the prefix used
// for viewable links, typically the API route that serves files back.
func NewLocalFSDriver(baseDir, publicURL string) (*LocalFSDriver, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &LocalFSDriver{BaseDir: baseDir, PublicURL: publicURL}, nil
}

func (d *LocalFSDriver) path(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	if len(key) < 4 {
		return filepath.Join(d.BaseDir, key), nil
	}
	return filepath.Join(d.BaseDir, key[0:2], key[2:4], key), nil
}

func (d *LocalFSDriver) Save(_ context.Context, key string, content []byte, info ObjectInfo) error {
	fullPath, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create hashed directory: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		_ = os.Remove(fullPath)
		return fmt.Errorf("failed to save file content: %w", err)
	}
	meta, err := json.Marshal(info)
	if err != nil {
		_ = os.Remove(fullPath)
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(fullPath+".meta", meta, 0o644); err != nil {
		_ = os.Remove(fullPath)
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

func (d *LocalFSDriver) Get(_ context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	fullPath, err := d.path(key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, ObjectInfo{}, fmt.Errorf("failed to open file: %w", err)
	}

	info := ObjectInfo{ContentType: "application/octet-stream"}
	if meta, err := os.ReadFile(fullPath + ".meta"); err == nil && len(meta) > 0 {
		info = readSidecar(meta)
	}
	return f, info, nil
}

// readSidecar accepts the JSON sidecar and the older bare content type.
func readSidecar(meta []byte) ObjectInfo {
	var info ObjectInfo
	if err := json.Unmarshal(meta, &info); err != nil {
		return ObjectInfo{ContentType: string(meta)}
	}
	if info.ContentType == "" {
		info.ContentType = "application/octet-stream"
	}
	return info
}

// Delete is idempotent.
func (d *LocalFSDriver) Delete(_ context.Context, key string) error {
	fullPath, err := d.path(key)
	if err != nil {
		return err
	}
	_ = os.Remove(fullPath + ".meta")
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (d *LocalFSDriver) GenerateURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if d.PublicURL == "" {
		return key, nil
	}
	return fmt.Sprintf("%s/%s", d.PublicURL, key), nil
}
