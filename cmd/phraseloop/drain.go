package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDrainCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "drain",
		Short: "Deliver queued session results to the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()

			pending, err := app.queue.Pending(ctx)
			if err != nil {
				return fmt.Errorf("queue.Pending() > %w", err)
			}
			if len(pending) == 0 {
				fmt.Println("No queued results to deliver.")
				return nil
			}

			status, err := app.probe.Status(ctx)
			if err != nil || !status.Online {
				fmt.Printf("Offline; %d result(s) stay queued.\n", len(pending))
				return nil
			}

			result := app.queue.Drain(ctx)
			remaining, err := app.queue.Pending(ctx)
			if err != nil {
				return fmt.Errorf("queue.Pending() > %w", err)
			}
			fmt.Printf("Delivered %d result(s), %d still queued.\n", result.Success, len(remaining))
			return nil
		},
	}

	return command
}
