package main

import (
	"errors"
	"fmt"

	"github.com/rnakata/phraseloop/internal/api"
	"github.com/rnakata/phraseloop/internal/prefetch"
	"github.com/spf13/cobra"
)

func newPrefetchCommand() *cobra.Command {
	prefetchCommand := &cobra.Command{
		Use:   "prefetch",
		Short: "Prefetch commands for caching audio ahead of practice",
	}

	prefetchCommand.AddCommand(newPrefetchEnqueueCommand())
	prefetchCommand.AddCommand(newPrefetchRunCommand())
	prefetchCommand.AddCommand(newPrefetchRegisterCommand())

	return prefetchCommand
}

func newPrefetchEnqueueCommand() *cobra.Command {
	var mode string

	command := &cobra.Command{
		Use:   "enqueue [deck]",
		Short: "Queue a deck's audio for the next background prefetch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			deck := args[0]

			response, err := app.client.FetchPrompts(ctx, deck, mode, app.cfg.Session.FetchLimit)
			if err != nil {
				if errors.Is(err, api.ErrNoItems) {
					fmt.Println("Nothing to prefetch for this deck.")
					return nil
				}
				return fmt.Errorf("client.FetchPrompts(%s) > %w", deck, err)
			}

			items := make([]prefetch.Item, 0, len(response.Items))
			for _, item := range response.Items {
				if item.AudioURL == "" {
					continue
				}
				items = append(items, prefetch.Item{ID: item.ID, URL: item.AudioURL})
			}
			if len(items) == 0 {
				fmt.Println("The deck has no audio to prefetch.")
				return nil
			}

			if err := app.prefetcher.Enqueue(ctx, deck, items); err != nil {
				return fmt.Errorf("prefetcher.Enqueue(%s) > %w", deck, err)
			}
			fmt.Printf("Queued %d audio file(s) from %s for the next prefetch run.\n", len(items), deck)
			return nil
		},
	}
	command.Flags().StringVar(&mode, "mode", "typing", "practice mode used to select prompts")

	return command
}

func newPrefetchRunCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "run",
		Short: "Run the pending prefetch job once, if WiFi is available",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			result := app.prefetcher.RunOnce(cmd.Context())
			switch result {
			case prefetch.ResultNewData:
				fmt.Println("Prefetch completed with new audio cached.")
			case prefetch.ResultNoData:
				fmt.Println("Nothing to prefetch.")
			case prefetch.ResultFailed:
				return fmt.Errorf("prefetch run failed")
			}
			return nil
		},
	}

	return command
}

func newPrefetchRegisterCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "register",
		Short: "Register the recurring background prefetch task",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.prefetcher.RegisterPeriodicTask(cmd.Context()); err != nil {
				return fmt.Errorf("prefetcher.RegisterPeriodicTask() > %w", err)
			}
			fmt.Printf("Background prefetch task %s registered.\n", prefetch.TaskID)
			return nil
		},
	}

	return command
}
