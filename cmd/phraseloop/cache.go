package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newCacheCommand() *cobra.Command {
	cacheCommand := &cobra.Command{
		Use:   "cache",
		Short: "Audio cache maintenance commands",
	}

	cacheCommand.AddCommand(newCacheListCommand())
	cacheCommand.AddCommand(newCacheTrimCommand())

	return cacheCommand
}

func newCacheListCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "list",
		Short: "List cached audio files",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			entries, err := app.cache.Entries(cmd.Context())
			if err != nil {
				return fmt.Errorf("cache.Entries() > %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("The audio cache is empty.")
				return nil
			}

			ids := make([]string, 0, len(entries))
			for id := range entries {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			for _, id := range ids {
				entry := entries[id]
				fmt.Printf("%s\t%s\tlast used %s\n", id, entry.LocalPath, entry.LastUsedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	return command
}

func newCacheTrimCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "trim",
		Short: "Evict expired and excess audio files from the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()

			before, err := app.cache.Entries(ctx)
			if err != nil {
				return fmt.Errorf("cache.Entries() > %w", err)
			}
			if err := app.cache.Trim(ctx, app.cfg.Cache.MaxEntries, app.cfg.Cache.MaxAge()); err != nil {
				return fmt.Errorf("cache.Trim() > %w", err)
			}
			after, err := app.cache.Entries(ctx)
			if err != nil {
				return fmt.Errorf("cache.Entries() > %w", err)
			}

			fmt.Printf("Evicted %d file(s); %d remain cached.\n", len(before)-len(after), len(after))
			return nil
		},
	}

	return command
}
