// Package results computes the completion summary for a finished practice
// session: accuracy, XP award and duration.
package results

import (
	"math"
	"time"

	"github.com/rnakata/phraseloop/internal/api"
)

const (
	xpPerCorrectAnswer = 10
	xpPerfectBonus     = 25
)

// Summary is the aggregate outcome of one completed session.
type Summary struct {
	Deck        string
	Mode        string
	Correct     int
	Incorrect   int
	Total       int
	Accuracy    float64
	XP          int
	Duration    time.Duration
	CompletedAt time.Time
}

// Summarize computes the summary for a session that started at start and
// completed at completedAt.
func Summarize(deck, mode string, correct, incorrect, total int, start, completedAt time.Time) Summary {
	var accuracy float64
	if total > 0 {
		// One decimal place is enough for display and the submission payload
		accuracy = math.Round(float64(correct)/float64(total)*1000) / 10
	}

	xp := correct * xpPerCorrectAnswer
	if total > 0 && correct == total {
		xp += xpPerfectBonus
	}

	return Summary{
		Deck:        deck,
		Mode:        mode,
		Correct:     correct,
		Incorrect:   incorrect,
		Total:       total,
		Accuracy:    accuracy,
		XP:          xp,
		Duration:    completedAt.Sub(start),
		CompletedAt: completedAt,
	}
}

// Payload converts the summary into the remote submission body.
func (s Summary) Payload() api.CompletionPayload {
	return api.CompletionPayload{
		DeckType:    s.Deck,
		Mode:        s.Mode,
		Correct:     s.Correct,
		Total:       s.Total,
		Accuracy:    s.Accuracy,
		XPEarned:    s.XP,
		DurationMs:  s.Duration.Milliseconds(),
		CompletedAt: s.CompletedAt,
	}
}
