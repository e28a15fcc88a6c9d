package prefetch

import "context"

//go:generate mockgen -source=scheduler.go -destination=../mocks/prefetch/mock_scheduler.go -package=mock_prefetch Scheduler

// TaskConfig describes a recurring background task registration.
type TaskConfig struct {
	ID                 string `json:"id"`
	MinIntervalSeconds int    `json:"minIntervalSeconds"`
	StopOnTerminate    bool   `json:"stopOnTerminate"`
	StartOnBoot        bool   `json:"startOnBoot"`
}

// Scheduler abstracts the host platform's background task scheduler. The
// scheduling policy itself (self-throttling, network gating) is business
// logic in Manager and stays testable against a fake Scheduler.
type Scheduler interface {
	// RegisterPeriodic registers a named recurring task. Registering an
	// already-registered id replaces the registration.
	RegisterPeriodic(ctx context.Context, config TaskConfig) error

	// IsRegistered reports whether a task id is currently registered.
	IsRegistered(ctx context.Context, id string) (bool, error)

	// BackgroundRestricted reports whether the host forbids background
	// execution entirely.
	BackgroundRestricted(ctx context.Context) (bool, error)
}
