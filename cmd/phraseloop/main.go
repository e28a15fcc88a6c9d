package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func setupLogger(debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func newRootCommand() *cobra.Command {
	var debugMode bool

	rootCommand := &cobra.Command{
		Use:          "phraseloop",
		Short:        "Practice language decks with offline-resilient sessions",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(debugMode)
		},
	}
	rootCommand.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the configuration file")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	rootCommand.AddCommand(newPracticeCommand())
	rootCommand.AddCommand(newDrainCommand())
	rootCommand.AddCommand(newPrefetchCommand())
	rootCommand.AddCommand(newCacheCommand())

	return rootCommand
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
