package blob

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

const defaultDownloadAttempts = 3

// HTTPStore is the production blob Store. Downloads go through resty and are
// retried on transient failures.
type HTTPStore struct {
	client   *resty.Client
	attempts uint
}

// NewHTTPStore creates an HTTPStore with default retry behavior.
func NewHTTPStore() *HTTPStore {
	return &HTTPStore{
		client:   resty.New(),
		attempts: defaultDownloadAttempts,
	}
}

func isRetryableDownloadError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}
	// Retry on 5xx and rate limiting
	if strings.Contains(errStr, "status code 5") || strings.Contains(errStr, "status code 429") {
		return true
	}
	return false
}

func (s *HTTPStore) Download(ctx context.Context, url, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll() > %w", err)
	}

	if err := retry.Do(
		func() error {
			if err := s.download(ctx, url, destPath); err != nil {
				if !isRetryableDownloadError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return fmt.Errorf("download %s > %w", url, err)
	}
	return nil
}

func (s *HTTPStore) download(ctx context.Context, url, destPath string) error {
	res, err := s.client.R().
		SetContext(ctx).
		SetOutput(destPath).
		Get(url)
	if err != nil {
		return fmt.Errorf("client.R().Get() > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		// resty wrote whatever body came back; don't leave a partial file
		_ = os.Remove(destPath)
		return fmt.Errorf("status code %d", res.StatusCode())
	}
	return nil
}

func (s *HTTPStore) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("os.Stat() > %w", err)
	}
	return !info.IsDir(), nil
}

func (s *HTTPStore) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("os.Remove() > %w", err)
	}
	return nil
}

var _ Store = (*HTTPStore)(nil)
