// Package session persists and resumes in-progress practice sessions so a
// killed or backgrounded app picks up exactly where the user left off.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Card is one practice item, fixed at session creation.
type Card struct {
	ID       string `json:"id"`
	Front    string `json:"front"`
	Back     string `json:"back"`
	AudioURL string `json:"audioUrl,omitempty"`
}

// PersistedSession is the snapshot of a single in-flight practice session.
// There is at most one per device. Answer history is not persisted, only
// aggregate counters; a resumed session is a reduced-fidelity resume.
type PersistedSession struct {
	ID             string `json:"id"`
	Deck           string `json:"deckSelector"`
	Mode           string `json:"mode"`
	Cards          []Card `json:"cards"`
	CurrentIndex   int    `json:"currentIndex"`
	CorrectCount   int    `json:"correctCount"`
	IncorrectCount int    `json:"incorrectCount"`
	// Epoch milliseconds.
	StartTime   int64 `json:"startTime"`
	LastUpdated int64 `json:"lastUpdated"`
}

// NewPersistedSession creates a fresh session over the given cards.
func NewPersistedSession(deck, mode string, cards []Card, now time.Time) *PersistedSession {
	ms := now.UnixMilli()
	return &PersistedSession{
		ID:          uuid.NewString(),
		Deck:        deck,
		Mode:        mode,
		Cards:       cards,
		StartTime:   ms,
		LastUpdated: ms,
	}
}

// Validate checks the session's progress invariants.
func (s *PersistedSession) Validate() error {
	if s.CurrentIndex < 0 || s.CurrentIndex > len(s.Cards) {
		return fmt.Errorf("currentIndex %d out of range [0, %d]", s.CurrentIndex, len(s.Cards))
	}
	if s.CorrectCount+s.IncorrectCount > s.CurrentIndex {
		return fmt.Errorf("answer counts %d exceed currentIndex %d", s.CorrectCount+s.IncorrectCount, s.CurrentIndex)
	}
	return nil
}

// Matches reports whether the snapshot was created for the same deck and mode.
func (s *PersistedSession) Matches(deck, mode string) bool {
	return s.Deck == deck && s.Mode == mode
}

// IsStale reports whether the snapshot's last update is at or beyond the
// staleness threshold, making it ineligible for resume.
func (s *PersistedSession) IsStale(now time.Time, threshold time.Duration) bool {
	age := now.Sub(time.UnixMilli(s.LastUpdated))
	return age >= threshold
}

// Finished reports whether every card has been answered.
func (s *PersistedSession) Finished() bool {
	return s.CurrentIndex >= len(s.Cards)
}
