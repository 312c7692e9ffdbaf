package uploads

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryingDriver retries transient storage failures. Missing files and bad
// keys are returned immediately.
type RetryingDriver struct {
	next     StorageDriver
	attempts uint
	delay    time.Duration
}

func NewRetryingDriver(next StorageDriver, attempts uint, delay time.Duration) *RetryingDriver {
	if attempts == 0 {
		attempts = 1
	}
	return &RetryingDriver{next: next, attempts: attempts, delay: delay}
}

func (d *RetryingDriver) do(ctx context.Context, op, key string, fn func() error) error {
	return retry.Do(
		fn,
		retry.Attempts(d.attempts),
		retry.Delay(d.delay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, ErrFileNotFound) && !errors.Is(err, ErrInvalidKey)
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.WarnContext(ctx, "retrying storage operation", "op", op, "key", key, "attempt", n+1, "error", err)
		}),
	)
}

func (d *RetryingDriver) Save(ctx context.Context, key string, content []byte, info ObjectInfo) error {
	return d.do(ctx, "save", key, func() error {
		return d.next.Save(ctx, key, content, info)
	})
}

func (d *RetryingDriver) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	var (
		body io.ReadCloser
		info ObjectInfo
	)
	err := d.do(ctx, "get", key, func() error {
		var err error
		body, info, err = d.next.Get(ctx, key)
		return err
	})
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	return body, info, nil
}

func (d *RetryingDriver) Delete(ctx context.Context, key string) error {
	return d.do(ctx, "delete", key, func() error {
		return d.next.Delete(ctx, key)
	})
}

func (d *RetryingDriver) GenerateURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	var url string
	err := d.do(ctx, "url", key, func() error {
		var err error
		url, err = d.next.GenerateURL(ctx, key, expires)
		return err
	})
	return url, err
}
