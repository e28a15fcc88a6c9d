package main

import (
	"errors"
	"fmt"

	"github.com/rnakata/phraseloop/internal/api"
	"github.com/rnakata/phraseloop/internal/cli"
	"github.com/rnakata/phraseloop/internal/session"
	"github.com/spf13/cobra"
)

func newPracticeCommand() *cobra.Command {
	var mode string

	command := &cobra.Command{
		Use:   "practice [deck]",
		Short: "Start an interactive practice session for a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != cli.ModeTyping && mode != cli.ModeFlashcard {
				return fmt.Errorf("unknown mode %q: use %s or %s", mode, cli.ModeTyping, cli.ModeFlashcard)
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()

			// Results stranded by earlier offline sessions go out first
			if status, err := app.probe.Status(ctx); err == nil && status.Online {
				result := app.queue.Drain(ctx)
				if result.Success > 0 {
					fmt.Printf("Delivered %d queued session result(s)\n", result.Success)
				}
			}

			controller := session.NewController(session.NewStore(app.store), app.client, app.queue, session.Options{
				Staleness:        app.cfg.Session.Staleness(),
				DebounceInterval: app.cfg.Session.Debounce(),
				FetchLimit:       app.cfg.Session.FetchLimit,
			})

			practiceCLI := cli.NewPracticeCLI(controller, app.cache, mode)
			if err := practiceCLI.Start(ctx, args[0]); err != nil {
				if errors.Is(err, api.ErrNoItems) {
					fmt.Println("No practice items available for this deck right now.")
					return nil
				}
				return err
			}

			fmt.Printf("Starting practice with %d cards\n\n", len(controller.Session().Cards))
			return practiceCLI.Run(ctx, practiceCLI)
		},
	}
	command.Flags().StringVar(&mode, "mode", cli.ModeTyping, "practice mode (typing or flashcard)")

	return command
}
