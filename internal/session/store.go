package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rnakata/phraseloop/internal/storage"
)

const sessionKey = "session:current"

// ErrNoSession is returned by Load when no usable snapshot exists.
var ErrNoSession = errors.New("session: no persisted session")

// Store serializes the singleton session snapshot through the key-value
// store. A corrupt snapshot is treated as absent and removed, never surfaced
// as an error.
type Store struct {
	kv     storage.KeyValueStore
	logger *slog.Logger
}

// NewStore creates a Store over kv.
func NewStore(kv storage.KeyValueStore) *Store {
	return &Store{kv: kv, logger: slog.Default()}
}

// Save persists the snapshot.
func (s *Store) Save(ctx context.Context, sess *PersistedSession) error {
	contents, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("json.Marshal() > %w", err)
	}
	if err := s.kv.Set(ctx, sessionKey, contents); err != nil {
		return fmt.Errorf("kv.Set(%s) > %w", sessionKey, err)
	}
	return nil
}

// Load returns the persisted snapshot, or ErrNoSession when there is none.
func (s *Store) Load(ctx context.Context) (*PersistedSession, error) {
	contents, err := s.kv.Get(ctx, sessionKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("kv.Get(%s) > %w", sessionKey, err)
	}

	var sess PersistedSession
	if err := json.Unmarshal(contents, &sess); err != nil {
		s.logger.Warn("discarding corrupt session snapshot",
			slog.Any("error", err),
		)
		_ = s.kv.Remove(ctx, sessionKey)
		return nil, ErrNoSession
	}
	return &sess, nil
}

// Clear removes the snapshot. Clearing an absent snapshot is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, sessionKey); err != nil {
		return fmt.Errorf("kv.Remove(%s) > %w", sessionKey, err)
	}
	return nil
}
