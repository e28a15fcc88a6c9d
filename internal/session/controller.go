package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rnakata/phraseloop/internal/api"
	"github.com/rnakata/phraseloop/internal/debounce"
	"github.com/rnakata/phraseloop/internal/results"
)

// State is the controller's lifecycle phase.
type State string

const (
	StateIdle              State = "idle"
	StateCheckingPersisted State = "checking_persisted"
	StateResumePrompt      State = "resume_prompt"
	StateLoadingFresh      State = "loading_fresh"
	StateActive            State = "active"
	StateComplete          State = "complete"
)

const (
	// DefaultStaleness is how old a snapshot's lastUpdated may be before it
	// is discarded instead of offered for resume.
	DefaultStaleness = 24 * time.Hour

	// DefaultDebounceInterval bounds how stale the on-disk snapshot may be
	// behind the in-memory state during fast input.
	DefaultDebounceInterval = 500 * time.Millisecond

	defaultFetchLimit = 10
)

//go:generate mockgen -source=controller.go -destination=../mocks/session/mock_controller.go -package=mock_session PromptFetcher,ResultSink

// PromptFetcher fetches a fresh practice item set.
type PromptFetcher interface {
	FetchPrompts(ctx context.Context, deck, mode string, limit int) (api.PromptsResponse, error)
}

// ResultSink receives the completion payload when a session finishes.
// Implemented by the completion queue; delivery failures are its concern.
type ResultSink interface {
	Submit(ctx context.Context, payload api.CompletionPayload) error
}

// Options tunes the controller. Zero values select defaults.
type Options struct {
	Staleness        time.Duration
	DebounceInterval time.Duration
	FetchLimit       int
	Now              func() time.Time
	Shuffle          func(cards []Card)
}

// Controller drives a practice session's lifecycle:
//
//	Idle → CheckingPersisted → {ResumePrompt | LoadingFresh} → Active → Complete
//
// Storage failures during checkpointing are logged and swallowed; the user's
// current answer is never blocked by a persistence failure.
type Controller struct {
	store   *Store
	fetcher PromptFetcher
	sink    ResultSink
	opts    Options

	debouncer *debounce.Debouncer
	logger    *slog.Logger

	state     State
	deck      string
	mode      string
	sess      *PersistedSession
	resumable *PersistedSession
}

// NewController creates a Controller in StateIdle.
func NewController(store *Store, fetcher PromptFetcher, sink ResultSink, opts Options) *Controller {
	if opts.Staleness == 0 {
		opts.Staleness = DefaultStaleness
	}
	if opts.DebounceInterval == 0 {
		opts.DebounceInterval = DefaultDebounceInterval
	}
	if opts.FetchLimit == 0 {
		opts.FetchLimit = defaultFetchLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Shuffle == nil {
		opts.Shuffle = func(cards []Card) {
			rand.Shuffle(len(cards), func(i, j int) {
				cards[i], cards[j] = cards[j], cards[i]
			})
		}
	}

	return &Controller{
		store:     store,
		fetcher:   fetcher,
		sink:      sink,
		opts:      opts,
		debouncer: debounce.New(opts.DebounceInterval),
		logger:    slog.Default(),
		state:     StateIdle,
	}
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	return c.state
}

// Session returns the active session snapshot, or nil.
func (c *Controller) Session() *PersistedSession {
	return c.sess
}

// Resumable returns the snapshot offered for resume while in
// StateResumePrompt, or nil.
func (c *Controller) Resumable() *PersistedSession {
	return c.resumable
}

// Current returns the card awaiting an answer.
func (c *Controller) Current() (Card, bool) {
	if c.state != StateActive || c.sess == nil || c.sess.Finished() {
		return Card{}, false
	}
	return c.sess.Cards[c.sess.CurrentIndex], true
}

// Begin checks for a resumable persisted session for the requested deck and
// mode. It leaves the controller in StateResumePrompt when one is found, or
// loads a fresh session into StateActive otherwise. Fetch failures are
// returned to the caller (the UI shows a retry affordance); api.ErrNoItems
// indicates a content problem rather than connectivity.
func (c *Controller) Begin(ctx context.Context, deck, mode string) (State, error) {
	if c.state != StateIdle {
		return c.state, fmt.Errorf("begin from state %q", c.state)
	}
	c.state = StateCheckingPersisted
	c.deck = deck
	c.mode = mode

	persisted, err := c.store.Load(ctx)
	if err != nil && err != ErrNoSession {
		// Treat an unreadable snapshot like an absent one
		c.logger.Warn("failed to read persisted session, starting fresh",
			slog.Any("error", err),
		)
		persisted = nil
	}

	if persisted != nil {
		now := c.opts.Now()
		if persisted.Matches(deck, mode) && !persisted.IsStale(now, c.opts.Staleness) && !persisted.Finished() {
			c.resumable = persisted
			c.state = StateResumePrompt
			return c.state, nil
		}
		if err := c.store.Clear(ctx); err != nil {
			c.logger.Warn("failed to clear stale session", slog.Any("error", err))
		}
	}

	return c.loadFresh(ctx)
}

// Resume restores the offered snapshot into StateActive.
func (c *Controller) Resume() (State, error) {
	if c.state != StateResumePrompt || c.resumable == nil {
		return c.state, fmt.Errorf("resume from state %q", c.state)
	}
	c.sess = c.resumable
	c.resumable = nil
	c.state = StateActive
	return c.state, nil
}

// StartFresh discards the offered snapshot and loads a new session.
func (c *Controller) StartFresh(ctx context.Context) (State, error) {
	if c.state != StateResumePrompt {
		return c.state, fmt.Errorf("start fresh from state %q", c.state)
	}
	c.resumable = nil
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn("failed to discard persisted session", slog.Any("error", err))
	}
	return c.loadFresh(ctx)
}

func (c *Controller) loadFresh(ctx context.Context) (State, error) {
	c.state = StateLoadingFresh

	response, err := c.fetcher.FetchPrompts(ctx, c.deck, c.mode, c.opts.FetchLimit)
	if err != nil {
		c.state = StateIdle
		return c.state, fmt.Errorf("fetcher.FetchPrompts() > %w", err)
	}

	cards := make([]Card, len(response.Items))
	for i, item := range response.Items {
		cards[i] = Card{
			ID:       item.ID,
			Front:    item.Front,
			Back:     item.Back,
			AudioURL: item.AudioURL,
		}
	}
	c.opts.Shuffle(cards)

	c.sess = NewPersistedSession(c.deck, c.mode, cards, c.opts.Now())
	if err := c.store.Save(ctx, c.sess); err != nil {
		c.logger.Warn("failed to persist fresh session", slog.Any("error", err))
	}
	c.state = StateActive
	return c.state, nil
}

// Answer records one answer. Counters update synchronously; persistence is
// debounced so fast input coalesces into a single write carrying the latest
// state. Completing the last card deletes the snapshot synchronously and
// submits the result before returning.
func (c *Controller) Answer(ctx context.Context, correct bool) (State, error) {
	if c.state != StateActive || c.sess == nil {
		return c.state, fmt.Errorf("answer from state %q", c.state)
	}

	if correct {
		c.sess.CorrectCount++
	} else {
		c.sess.IncorrectCount++
	}
	c.sess.CurrentIndex++
	c.sess.LastUpdated = c.opts.Now().UnixMilli()

	if c.sess.Finished() {
		c.complete(ctx)
		return c.state, nil
	}

	snapshot := *c.sess
	c.debouncer.Schedule(func() {
		// The answer that scheduled this write may be long past; persist
		// with a fresh context so a finished request doesn't cancel it.
		if err := c.store.Save(context.Background(), &snapshot); err != nil {
			c.logger.Warn("debounced session save failed", slog.Any("error", err))
		}
	})
	return c.state, nil
}

func (c *Controller) complete(ctx context.Context) {
	// A killed app must never resume a finished session
	c.debouncer.Cancel()
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn("failed to clear completed session", slog.Any("error", err))
	}
	c.state = StateComplete

	now := c.opts.Now()
	summary := results.Summarize(
		c.sess.Deck, c.sess.Mode,
		c.sess.CorrectCount, c.sess.IncorrectCount, len(c.sess.Cards),
		time.UnixMilli(c.sess.StartTime), now,
	)
	if err := c.sink.Submit(ctx, summary.Payload()); err != nil {
		// The sink queues failed deliveries itself; this is diagnostics only
		c.logger.Warn("result submission failed", slog.Any("error", err))
	}
}

// Summary returns the completion summary after StateComplete.
func (c *Controller) Summary() (results.Summary, bool) {
	if c.state != StateComplete || c.sess == nil {
		return results.Summary{}, false
	}
	return results.Summarize(
		c.sess.Deck, c.sess.Mode,
		c.sess.CorrectCount, c.sess.IncorrectCount, len(c.sess.Cards),
		time.UnixMilli(c.sess.StartTime), time.UnixMilli(c.sess.LastUpdated),
	), true
}

// Exit flushes any pending debounced write before navigation away, so no
// answered-but-unsaved state is lost.
func (c *Controller) Exit() {
	c.debouncer.Flush()
}

// Discard drops the pending write and deletes the persisted snapshot. Used
// when the user abandons the session on purpose.
func (c *Controller) Discard(ctx context.Context) {
	c.debouncer.Cancel()
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn("failed to discard session", slog.Any("error", err))
	}
	c.sess = nil
	c.state = StateIdle
}
