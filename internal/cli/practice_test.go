package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rnakata/phraseloop/internal/api"
	mock_cli "github.com/rnakata/phraseloop/internal/mocks/cli"
	mock_session "github.com/rnakata/phraseloop/internal/mocks/session"
	"github.com/rnakata/phraseloop/internal/session"
	"github.com/rnakata/phraseloop/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGradeTypedAnswer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		want     bool
	}{
		{
			name:     "exact match",
			input:    "hello\n",
			expected: "hello",
			want:     true,
		},
		{
			name:     "case insensitive match",
			input:    "Hello\n",
			expected: "hello",
			want:     true,
		},
		{
			name:     "surrounding whitespace ignored",
			input:    "  hello  \n",
			expected: "hello",
			want:     true,
		},
		{
			name:     "wrong answer",
			input:    "goodbye\n",
			expected: "hello",
			want:     false,
		},
		{
			name:     "empty answer is wrong",
			input:    "\n",
			expected: "hello",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gradeTypedAnswer(tt.input, tt.expected))
		})
	}
}

type practiceFixture struct {
	cli     *PracticeCLI
	store   *session.Store
	kv      *storage.MemoryStore
	fetcher *mock_session.MockPromptFetcher
	sink    *mock_session.MockResultSink
	stdout  *bytes.Buffer
}

func newPracticeFixture(t *testing.T, mode, input string) *practiceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	fetcher := mock_session.NewMockPromptFetcher(ctrl)
	sink := mock_session.NewMockResultSink(ctrl)

	kv := storage.NewMemoryStore()
	store := session.NewStore(kv)
	controller := session.NewController(store, fetcher, sink, session.Options{
		Now:     func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) },
		Shuffle: func(cards []session.Card) {},
	})

	stdout := &bytes.Buffer{}
	practiceCLI := NewPracticeCLI(controller, nil, mode)
	practiceCLI.stdinReader = bufio.NewReader(strings.NewReader(input))
	practiceCLI.stdoutWriter = stdout
	practiceCLI.bold = color.New(color.Bold)
	practiceCLI.italic = color.New(color.Italic)

	return &practiceFixture{
		cli:     practiceCLI,
		store:   store,
		kv:      kv,
		fetcher: fetcher,
		sink:    sink,
		stdout:  stdout,
	}
}

func (f *practiceFixture) runToEnd(ctx context.Context, t *testing.T) {
	t.Helper()
	for {
		err := f.cli.Session(ctx)
		if err != nil {
			require.ErrorIs(t, err, errEnd)
			return
		}
	}
}

func TestPracticeCLI_TypingSession(t *testing.T) {
	ctx := context.Background()
	fixture := newPracticeFixture(t, ModeTyping, "dog\nwrong answer\n")

	fixture.fetcher.EXPECT().
		FetchPrompts(gomock.Any(), "daily", ModeTyping, gomock.Any()).
		Return(api.PromptsResponse{
			Items: []api.PromptItem{
				{ID: "card-1", Front: "犬", Back: "dog"},
				{ID: "card-2", Front: "猫", Back: "cat"},
			},
		}, nil)
	fixture.sink.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload api.CompletionPayload) error {
			assert.Equal(t, 1, payload.Correct)
			assert.Equal(t, 2, payload.Total)
			assert.Equal(t, 50.0, payload.Accuracy)
			return nil
		})

	require.NoError(t, fixture.cli.Start(ctx, "daily"))
	fixture.runToEnd(ctx, t)

	output := fixture.stdout.String()
	assert.Contains(t, output, "[1/2]")
	assert.Contains(t, output, "[2/2]")
	assert.Contains(t, output, "Session complete!")
	assert.Contains(t, output, "Correct: 1/2 (50.0%)")
	assert.Contains(t, output, "XP earned: 10")
}

func TestPracticeCLI_FlashcardSession(t *testing.T) {
	ctx := context.Background()
	// Reveal then grade: knew the first card, not the second
	fixture := newPracticeFixture(t, ModeFlashcard, "\ny\n\nn\n")

	fixture.fetcher.EXPECT().
		FetchPrompts(gomock.Any(), "daily", ModeFlashcard, gomock.Any()).
		Return(api.PromptsResponse{
			Items: []api.PromptItem{
				{ID: "card-1", Front: "犬", Back: "dog"},
				{ID: "card-2", Front: "猫", Back: "cat"},
			},
		}, nil)
	fixture.sink.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload api.CompletionPayload) error {
			assert.Equal(t, 1, payload.Correct)
			return nil
		})

	require.NoError(t, fixture.cli.Start(ctx, "daily"))
	fixture.runToEnd(ctx, t)

	assert.Contains(t, fixture.stdout.String(), "Did you know it?")
}

func TestPracticeCLI_Run(t *testing.T) {
	tests := []struct {
		name            string
		sessionErr      error
		wantErr         bool
		wantErrContains string
	}{
		{
			name:       "session ended normally",
			sessionErr: errEnd,
		},
		{
			name:            "session error is surfaced",
			sessionErr:      assert.AnError,
			wantErr:         true,
			wantErrContains: "error:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newPracticeFixture(t, ModeTyping, "")

			ctrl := gomock.NewController(t)
			mockSession := mock_cli.NewMockSession(ctrl)
			mockSession.EXPECT().Session(gomock.Any()).Return(tt.sessionErr)

			err := fixture.cli.Run(context.Background(), mockSession)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrContains)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPracticeCLI_Start_ResumeDeclined(t *testing.T) {
	ctx := context.Background()
	fixture := newPracticeFixture(t, ModeTyping, "n\n")

	persisted := session.NewPersistedSession("daily", ModeTyping, []session.Card{
		{ID: "card-1", Front: "犬", Back: "dog"},
		{ID: "card-2", Front: "猫", Back: "cat"},
	}, time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC))
	persisted.CurrentIndex = 1
	require.NoError(t, fixture.store.Save(ctx, persisted))

	fixture.fetcher.EXPECT().
		FetchPrompts(gomock.Any(), "daily", ModeTyping, gomock.Any()).
		Return(api.PromptsResponse{
			Items: []api.PromptItem{{ID: "card-3", Front: "鳥", Back: "bird"}},
		}, nil)

	require.NoError(t, fixture.cli.Start(ctx, "daily"))

	assert.Contains(t, fixture.stdout.String(), "Resume where you left off?")
	current, ok := fixture.cli.controller.Current()
	require.True(t, ok)
	assert.Equal(t, "card-3", current.ID)
}

func TestPracticeCLI_Start_ResumeAccepted(t *testing.T) {
	ctx := context.Background()
	fixture := newPracticeFixture(t, ModeTyping, "\n")

	persisted := session.NewPersistedSession("daily", ModeTyping, []session.Card{
		{ID: "card-1", Front: "犬", Back: "dog"},
		{ID: "card-2", Front: "猫", Back: "cat"},
	}, time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC))
	persisted.CurrentIndex = 1
	persisted.CorrectCount = 1
	require.NoError(t, fixture.store.Save(ctx, persisted))

	require.NoError(t, fixture.cli.Start(ctx, "daily"))

	assert.Contains(t, fixture.stdout.String(), "1/2 cards answered")
	current, ok := fixture.cli.controller.Current()
	require.True(t, ok)
	assert.Equal(t, "card-2", current.ID)
}
