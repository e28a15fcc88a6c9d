package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FakeStore is an in-process Store for tests. Downloads write a stub file so
// Exists/Delete behave like the real store, without any network access.
type FakeStore struct {
	mu        sync.Mutex
	Downloads []string
	FailURLs  map[string]error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{FailURLs: map[string]error{}}
}

func (s *FakeStore) Download(ctx context.Context, url, destPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.FailURLs[url]; ok {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll() > %w", err)
	}
	if err := os.WriteFile(destPath, []byte(url), 0o644); err != nil {
		return fmt.Errorf("os.WriteFile() > %w", err)
	}
	s.Downloads = append(s.Downloads, url)
	return nil
}

func (s *FakeStore) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *FakeStore) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ Store = (*FakeStore)(nil)
