package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			// Verify the logger was set (no panic)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(nil, slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "phraseloop", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	subcommands := map[string]bool{}
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, name := range []string{"practice", "drain", "prefetch", "cache"} {
		assert.True(t, subcommands[name], "missing subcommand %s", name)
	}
}

func TestNewPracticeCommand(t *testing.T) {
	cmd := newPracticeCommand()

	assert.Equal(t, "practice [deck]", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("mode"))
}

func TestNewPrefetchCommand(t *testing.T) {
	cmd := newPrefetchCommand()

	assert.Equal(t, "prefetch", cmd.Use)
	assert.True(t, cmd.HasSubCommands())
}

func TestNewCacheCommand(t *testing.T) {
	cmd := newCacheCommand()

	assert.Equal(t, "cache", cmd.Use)
	assert.True(t, cmd.HasSubCommands())
}
