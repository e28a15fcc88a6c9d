// Package completion delivers completed-session events to the remote service
// with at-least-once semantics: a failed submission is queued durably and
// retried on later drains, bounded in both queue length and retry count.
package completion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rnakata/phraseloop/internal/api"
	"github.com/rnakata/phraseloop/internal/storage"
)

const queueKey = "completion:queue"

const (
	// DefaultMaxQueueSize bounds queue growth; the oldest events are dropped
	// first when the cap is exceeded.
	DefaultMaxQueueSize = 100

	// DefaultMaxRetries is the delivery attempt cap per queued event. An
	// event failing this many drain passes is dropped.
	DefaultMaxRetries = 3
)

//go:generate mockgen -source=queue.go -destination=../mocks/completion/mock_queue.go -package=mock_completion Submitter

// Submitter performs one remote delivery attempt.
type Submitter interface {
	SubmitCompletion(ctx context.Context, payload api.CompletionPayload) error
}

// Event is one queued completion awaiting delivery.
type Event struct {
	// ID lets the server de-duplicate redelivered events.
	ID         uuid.UUID             `json:"id"`
	Timestamp  time.Time             `json:"timestamp"`
	Payload    api.CompletionPayload `json:"payload"`
	RetryCount int                   `json:"retryCount"`
}

// DrainResult reports one drain pass.
type DrainResult struct {
	Success int
	Failed  int
}

// Options tunes the queue. Zero values select defaults.
type Options struct {
	MaxSize    int
	MaxRetries int
	Now        func() time.Time
}

// Queue is the durable completion queue.
type Queue struct {
	kv        storage.KeyValueStore
	submitter Submitter
	opts      Options
	logger    *slog.Logger
}

// NewQueue creates a Queue over kv delivering through submitter.
func NewQueue(kv storage.KeyValueStore, submitter Submitter, opts Options) *Queue {
	if opts.MaxSize == 0 {
		opts.MaxSize = DefaultMaxQueueSize
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Queue{
		kv:        kv,
		submitter: submitter,
		opts:      opts,
		logger:    slog.Default(),
	}
}

// Submit attempts an immediate delivery and queues the payload on any
// failure. Delivery failure is never surfaced; the returned error is
// non-nil only when the queue itself could not be persisted.
func (q *Queue) Submit(ctx context.Context, payload api.CompletionPayload) error {
	err := q.submitter.SubmitCompletion(ctx, payload)
	if err == nil {
		return nil
	}
	q.logger.Info("completion submission failed, queueing for retry",
		slog.String("deck", payload.DeckType),
		slog.Any("error", err),
	)
	return q.Enqueue(ctx, payload)
}

// Enqueue appends a new event and trims the queue to its cap, dropping the
// oldest entries first.
func (q *Queue) Enqueue(ctx context.Context, payload api.CompletionPayload) error {
	events, err := q.load(ctx)
	if err != nil {
		return fmt.Errorf("q.load() > %w", err)
	}

	events = append(events, Event{
		ID:        uuid.New(),
		Timestamp: q.opts.Now(),
		Payload:   payload,
	})
	if dropped := len(events) - q.opts.MaxSize; dropped > 0 {
		q.logger.Warn("completion queue full, dropping oldest events",
			slog.Int("dropped", dropped),
		)
		events = events[dropped:]
	}

	if err := q.save(ctx, events); err != nil {
		return fmt.Errorf("q.save() > %w", err)
	}
	return nil
}

// Drain attempts delivery of every queued event in order. Successes are
// removed; failures stay queued with an incremented retry count until the
// retry cap drops them. Drain never fails on delivery errors; it is meant to
// be invoked opportunistically (app foreground, connectivity regained).
func (q *Queue) Drain(ctx context.Context) DrainResult {
	var result DrainResult

	events, err := q.load(ctx)
	if err != nil {
		q.logger.Warn("failed to load completion queue", slog.Any("error", err))
		return result
	}
	if len(events) == 0 {
		return result
	}

	remaining := events[:0]
	for _, event := range events {
		payload := event.Payload
		payload.FromQueue = true

		if err := q.submitter.SubmitCompletion(ctx, payload); err == nil {
			result.Success++
			continue
		}

		result.Failed++
		if event.RetryCount >= q.opts.MaxRetries-1 {
			q.logger.Warn("dropping completion event, exhausted retries",
				slog.String("eventID", event.ID.String()),
				slog.Int("retryCount", event.RetryCount+1),
			)
			continue
		}
		event.RetryCount++
		remaining = append(remaining, event)
	}

	if err := q.save(ctx, remaining); err != nil {
		q.logger.Warn("failed to persist completion queue after drain", slog.Any("error", err))
	}
	return result
}

// Pending returns the queued events, oldest first.
func (q *Queue) Pending(ctx context.Context) ([]Event, error) {
	return q.load(ctx)
}

func (q *Queue) load(ctx context.Context) ([]Event, error) {
	contents, err := q.kv.Get(ctx, queueKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv.Get(%s) > %w", queueKey, err)
	}

	var events []Event
	if err := json.Unmarshal(contents, &events); err != nil {
		// An unreadable queue is treated as empty rather than wedging
		// submissions forever
		q.logger.Warn("discarding corrupt completion queue", slog.Any("error", err))
		return nil, nil
	}
	return events, nil
}

func (q *Queue) save(ctx context.Context, events []Event) error {
	if events == nil {
		events = []Event{}
	}
	contents, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("json.Marshal() > %w", err)
	}
	if err := q.kv.Set(ctx, queueKey, contents); err != nil {
		return fmt.Errorf("kv.Set(%s) > %w", queueKey, err)
	}
	return nil
}
