package prefetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rnakata/phraseloop/internal/storage"
)

const registrationKeyPrefix = "prefetch:task:"

// KVScheduler is the production Scheduler on hosts without a native
// background task API. Registrations persist through the key-value store and
// an external timer (cron, systemd) invokes the run command; the manager's
// own last-run throttle enforces the minimum interval.
type KVScheduler struct {
	kv         storage.KeyValueStore
	restricted bool
}

// NewKVScheduler creates a KVScheduler. restricted mirrors a host policy
// that forbids background execution.
func NewKVScheduler(kv storage.KeyValueStore, restricted bool) *KVScheduler {
	return &KVScheduler{kv: kv, restricted: restricted}
}

func (s *KVScheduler) RegisterPeriodic(ctx context.Context, config TaskConfig) error {
	contents, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("json.Marshal() > %w", err)
	}
	if err := s.kv.Set(ctx, registrationKeyPrefix+config.ID, contents); err != nil {
		return fmt.Errorf("kv.Set() > %w", err)
	}
	return nil
}

func (s *KVScheduler) IsRegistered(ctx context.Context, id string) (bool, error) {
	_, err := s.kv.Get(ctx, registrationKeyPrefix+id)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("kv.Get() > %w", err)
	}
	return true, nil
}

func (s *KVScheduler) BackgroundRestricted(ctx context.Context) (bool, error) {
	return s.restricted, nil
}

var _ Scheduler = (*KVScheduler)(nil)
