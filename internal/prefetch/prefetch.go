// Package prefetch replenishes the audio cache in the background, gated to
// WiFi and throttled to a minimum interval. The job it consumes and the
// last-run timestamp live in the key-value store because the background
// invocation may run while the foreground app is fully unloaded.
package prefetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rnakata/phraseloop/internal/assetcache"
	"github.com/rnakata/phraseloop/internal/network"
	"github.com/rnakata/phraseloop/internal/storage"
)

const (
	jobKey     = "prefetch:job"
	lastRunKey = "prefetch:last_run"

	// TaskID names the recurring background task with the host scheduler.
	TaskID = "phraseloop.audio-prefetch"

	// DefaultMinInterval is the recurring task's minimum interval, enforced
	// both at registration and by the manager's own last-run check.
	DefaultMinInterval = 24 * time.Hour
)

// Result is what a background invocation reports to the host scheduler,
// which governs its own backoff on Failed.
type Result string

const (
	ResultNewData Result = "new_data"
	ResultNoData  Result = "no_data"
	ResultFailed  Result = "failed"
)

// Item is one asset to prefetch.
type Item struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Job is the single pending prefetch request. Queueing a new job replaces
// any pending one (last-writer-wins).
type Job struct {
	DeckID   string    `json:"deckId"`
	QueuedAt time.Time `json:"queuedAt"`
	Items    []Item    `json:"items"`
}

// Options tunes the manager. Zero values select defaults.
type Options struct {
	MinInterval time.Duration
	// Cache bounds applied by the post-run trim.
	TrimMaxEntries int
	TrimMaxAge     time.Duration
	Now            func() time.Time
}

// Manager queues prefetch work and drains it when a background invocation
// finds the right conditions.
type Manager struct {
	cache  *assetcache.Cache
	probe  network.Probe
	kv     storage.KeyValueStore
	sched  Scheduler
	opts   Options
	logger *slog.Logger
}

// NewManager creates a Manager.
func NewManager(cache *assetcache.Cache, probe network.Probe, kv storage.KeyValueStore, sched Scheduler, opts Options) *Manager {
	if opts.MinInterval == 0 {
		opts.MinInterval = DefaultMinInterval
	}
	if opts.TrimMaxEntries == 0 {
		opts.TrimMaxEntries = assetcache.DefaultMaxEntries
	}
	if opts.TrimMaxAge == 0 {
		opts.TrimMaxAge = assetcache.DefaultMaxAge
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		cache:  cache,
		probe:  probe,
		kv:     kv,
		sched:  sched,
		opts:   opts,
		logger: slog.Default(),
	}
}

// Enqueue queues prefetch work for a deck, deduplicating items by sanitized
// id and discarding items without a URL. If nothing remains the pending job
// is left untouched.
func (m *Manager) Enqueue(ctx context.Context, deckID string, items []Item) error {
	seen := map[string]struct{}{}
	deduped := make([]Item, 0, len(items))
	for _, item := range items {
		if item.URL == "" {
			continue
		}
		key := assetcache.SanitizeID(item.ID)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, item)
	}
	if len(deduped) == 0 {
		return nil
	}

	job := Job{DeckID: deckID, QueuedAt: m.opts.Now(), Items: deduped}
	contents, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("json.Marshal() > %w", err)
	}
	if err := m.kv.Set(ctx, jobKey, contents); err != nil {
		return fmt.Errorf("kv.Set(%s) > %w", jobKey, err)
	}
	return nil
}

// RegisterPeriodicTask idempotently registers the recurring background task.
// Registration is skipped when the host restricts background execution or
// when the task is already registered. Errors are returned so the caller can
// report job failure to the host.
func (m *Manager) RegisterPeriodicTask(ctx context.Context) error {
	restricted, err := m.sched.BackgroundRestricted(ctx)
	if err != nil {
		return fmt.Errorf("sched.BackgroundRestricted() > %w", err)
	}
	if restricted {
		m.logger.Info("background execution restricted, skipping prefetch registration")
		return nil
	}

	registered, err := m.sched.IsRegistered(ctx, TaskID)
	if err != nil {
		return fmt.Errorf("sched.IsRegistered() > %w", err)
	}
	if registered {
		return nil
	}

	if err := m.sched.RegisterPeriodic(ctx, TaskConfig{
		ID:                 TaskID,
		MinIntervalSeconds: int(m.opts.MinInterval / time.Second),
		StopOnTerminate:    false,
		StartOnBoot:        true,
	}); err != nil {
		return fmt.Errorf("sched.RegisterPeriodic() > %w", err)
	}
	return nil
}

// RunOnce is the background invocation body. It consumes the pending job
// when allowed: not throttled by the last successful run, and on WiFi. A
// consumed job is cleared even when some items fail; per-item failures are
// logged and skipped, never retried.
func (m *Manager) RunOnce(ctx context.Context) Result {
	job, err := m.loadJob(ctx)
	if err != nil {
		m.logger.Error("failed to read prefetch job", slog.Any("error", err))
		return ResultFailed
	}
	if job == nil {
		return ResultNoData
	}

	now := m.opts.Now()
	if lastRun, ok := m.lastRun(ctx); ok && now.Sub(lastRun) < m.opts.MinInterval {
		// Some hosts invoke more eagerly than the requested interval
		m.logger.Debug("prefetch throttled",
			slog.Time("lastRun", lastRun),
			slog.Duration("minInterval", m.opts.MinInterval),
		)
		return ResultNoData
	}

	status, err := m.probe.Status(ctx)
	if err != nil {
		m.logger.Error("network probe failed", slog.Any("error", err))
		return ResultFailed
	}
	if !status.Online || status.Transport != network.TransportWiFi {
		// Leave the job queued for the next eligible window
		m.logger.Info("prefetch deferred, not on WiFi",
			slog.String("transport", string(status.Transport)),
		)
		return ResultNoData
	}

	succeeded := 0
	for _, item := range job.Items {
		path, err := m.cache.Ensure(ctx, item.ID, item.URL)
		if err != nil {
			m.logger.Warn("prefetch item failed",
				slog.String("id", item.ID),
				slog.Any("error", err),
			)
			continue
		}
		if err := m.cache.Touch(ctx, item.ID, path); err != nil {
			m.logger.Warn("failed to record prefetched item",
				slog.String("id", item.ID),
				slog.Any("error", err),
			)
		}
		succeeded++
	}

	if err := m.kv.Set(ctx, lastRunKey, []byte(now.Format(time.RFC3339))); err != nil {
		m.logger.Warn("failed to record prefetch run time", slog.Any("error", err))
	}
	// The job is consumed regardless of partial per-item failure
	if err := m.kv.Remove(ctx, jobKey); err != nil {
		m.logger.Warn("failed to clear consumed prefetch job", slog.Any("error", err))
	}
	if err := m.cache.Trim(ctx, m.opts.TrimMaxEntries, m.opts.TrimMaxAge); err != nil {
		m.logger.Warn("post-prefetch trim failed", slog.Any("error", err))
	}

	m.logger.Info("prefetch run finished",
		slog.String("deckID", job.DeckID),
		slog.Int("succeeded", succeeded),
		slog.Int("total", len(job.Items)),
	)
	if succeeded > 0 {
		return ResultNewData
	}
	return ResultNoData
}

// PendingJob returns the queued job, or nil.
func (m *Manager) PendingJob(ctx context.Context) (*Job, error) {
	return m.loadJob(ctx)
}

func (m *Manager) loadJob(ctx context.Context) (*Job, error) {
	contents, err := m.kv.Get(ctx, jobKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv.Get(%s) > %w", jobKey, err)
	}

	var job Job
	if err := json.Unmarshal(contents, &job); err != nil {
		// A corrupt job cannot be consumed; drop it
		m.logger.Warn("discarding corrupt prefetch job", slog.Any("error", err))
		_ = m.kv.Remove(ctx, jobKey)
		return nil, nil
	}
	return &job, nil
}

func (m *Manager) lastRun(ctx context.Context) (time.Time, bool) {
	contents, err := m.kv.Get(ctx, lastRunKey)
	if err != nil {
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339, string(contents))
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}
