package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rnakata/phraseloop/internal/assetcache"
	"github.com/rnakata/phraseloop/internal/session"
)

// Practice modes. Typing compares the typed answer against the card's back;
// flashcard reveals the back and asks the user to grade themselves.
const (
	ModeTyping    = "typing"
	ModeFlashcard = "flashcard"
)

var errEnd = errors.New("end")

// PracticeCLI manages the interactive practice session for a deck
type PracticeCLI struct {
	controller   *session.Controller
	assets       *assetcache.Cache
	mode         string
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

// NewPracticeCLI creates a new interactive practice CLI. The asset cache is
// optional; without it cards are shown without a local audio path.
func NewPracticeCLI(controller *session.Controller, assets *assetcache.Cache, mode string) *PracticeCLI {
	return &PracticeCLI{
		controller:   controller,
		assets:       assets,
		mode:         mode,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

// Start begins or resumes a session for the given deck. When a resumable
// snapshot exists the user decides whether to pick it up or start over.
func (cli *PracticeCLI) Start(ctx context.Context, deck string) error {
	state, err := cli.controller.Begin(ctx, deck, cli.mode)
	if err != nil {
		return fmt.Errorf("controller.Begin() > %w", err)
	}
	if state != session.StateResumePrompt {
		return nil
	}

	snapshot := cli.controller.Resumable()
	fmt.Fprintf(cli.stdoutWriter, "Found an unfinished session from %s (%d/%d cards answered).\n",
		time.UnixMilli(snapshot.LastUpdated).Format("Jan 2 15:04"),
		snapshot.CurrentIndex,
		len(snapshot.Cards),
	)
	fmt.Fprint(cli.stdoutWriter, "Resume where you left off? [Y/n]: ")

	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(input))
	if answer == "n" || answer == "no" {
		if _, err := cli.controller.StartFresh(ctx); err != nil {
			return fmt.Errorf("controller.StartFresh() > %w", err)
		}
		return nil
	}
	if _, err := cli.controller.Resume(); err != nil {
		return fmt.Errorf("controller.Resume() > %w", err)
	}
	return nil
}

//go:generate mockgen -source=practice.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

type Session interface {
	Session(context context.Context) error
}

func (cli *PracticeCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Println("Received interrupt signal, exiting...")
		// Flush the pending checkpoint so the answered cards survive
		cli.controller.Exit()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

func (cli *PracticeCLI) Session(ctx context.Context) error {
	if cli.controller.State() == session.StateComplete {
		cli.printSummary()
		return errEnd
	}

	currentCard, ok := cli.controller.Current()
	if !ok {
		return errEnd
	}

	sess := cli.controller.Session()
	fmt.Fprintf(cli.stdoutWriter, "[%d/%d] ", sess.CurrentIndex+1, len(sess.Cards))
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s\n", currentCard.Front)

	if path := cli.ensureAudio(ctx, currentCard); path != "" {
		fmt.Fprintf(cli.stdoutWriter, "Audio: %s\n", path)
	}

	var correct bool
	switch cli.mode {
	case ModeFlashcard:
		fmt.Fprint(cli.stdoutWriter, "Press enter to reveal the answer: ")
		if _, err := cli.stdinReader.ReadString('\n'); err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}
		fmt.Fprintf(cli.stdoutWriter, "%s\n", cli.italic.Sprintf("%s", currentCard.Back))
		fmt.Fprint(cli.stdoutWriter, "Did you know it? [y/N]: ")
		input, err := cli.stdinReader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}
		graded := strings.ToLower(strings.TrimSpace(input))
		correct = graded == "y" || graded == "yes"
	default:
		fmt.Fprint(cli.stdoutWriter, "Your answer: ")
		input, err := cli.stdinReader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}
		correct = gradeTypedAnswer(input, currentCard.Back)

		if correct {
			fmt.Fprint(cli.stdoutWriter, "✅ ")
			color.Green(`It's correct. %s means "%s"`,
				cli.bold.Sprintf("%s", currentCard.Front),
				cli.italic.Sprintf("%s", currentCard.Back),
			)
		} else {
			fmt.Fprint(cli.stdoutWriter, "❌ ")
			color.Red(`It's wrong. %s means "%s"`,
				cli.bold.Sprintf("%s", currentCard.Front),
				cli.italic.Sprintf("%s", currentCard.Back),
			)
		}
	}
	fmt.Fprintln(cli.stdoutWriter)

	if _, err := cli.controller.Answer(ctx, correct); err != nil {
		return fmt.Errorf("controller.Answer() > %w", err)
	}
	return nil
}

// ensureAudio downloads the card's audio into the cache. Playback is nice to
// have; a failed download never interrupts the session.
func (cli *PracticeCLI) ensureAudio(ctx context.Context, card session.Card) string {
	if cli.assets == nil || card.AudioURL == "" {
		return ""
	}
	path, err := cli.assets.Ensure(ctx, card.ID, card.AudioURL)
	if err != nil {
		return ""
	}
	_ = cli.assets.Touch(ctx, card.ID, path)
	return path
}

func (cli *PracticeCLI) printSummary() {
	summary, ok := cli.controller.Summary()
	if !ok {
		return
	}
	fmt.Fprintln(cli.stdoutWriter)
	_, _ = cli.bold.Fprintln(cli.stdoutWriter, "Session complete!")
	fmt.Fprintf(cli.stdoutWriter, "Correct: %d/%d (%.1f%%)\n", summary.Correct, summary.Total, summary.Accuracy)
	fmt.Fprintf(cli.stdoutWriter, "XP earned: %d\n", summary.XP)
	fmt.Fprintf(cli.stdoutWriter, "Duration: %s\n", summary.Duration.Round(time.Second))
}

// gradeTypedAnswer compares a typed answer against the expected back of the
// card, ignoring case and surrounding whitespace. An empty answer is wrong.
func gradeTypedAnswer(input, expected string) bool {
	answer := strings.TrimSpace(input)
	if answer == "" {
		return false
	}
	return strings.EqualFold(answer, strings.TrimSpace(expected))
}
