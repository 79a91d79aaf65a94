package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archlens-labs/archlens/internal/cache"
	"github.com/archlens-labs/archlens/internal/cli/output"
)

// NewCacheCommand creates the cache command with its subcommands.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the analysis cache",
		Long: `Inspect or clear the content-addressable analysis cache. The
drift baseline lives in the same directory but is never touched by clear.`,
	}

	cmd.AddCommand(newCacheStatsCommand())
	cmd.AddCommand(newCacheClearCommand())

	return cmd
}

func newCacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count and size",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutEngine(cmd)
			r := cmdCtx.Renderer

			store, err := cache.NewStore(cmdCtx.Cfg.CacheDir)
			if err != nil {
				return err
			}
			count, bytes, err := store.Stats()
			if err != nil {
				return err
			}

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string]any{
					"dir":     store.Dir(),
					"entries": count,
					"bytes":   bytes,
				})
			}
			r.Printf("Cache: %s\n", store.Dir())
			r.Printf("Entries: %d\n", count)
			r.Printf("Size: %d bytes\n", bytes)
			return nil
		},
	}
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cache entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutEngine(cmd)
			r := cmdCtx.Renderer

			store, err := cache.NewStore(cmdCtx.Cfg.CacheDir)
			if err != nil {
				return err
			}
			removed, err := store.Clear()
			if err != nil {
				return err
			}

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string]any{"removed": removed})
			}
			r.Success(fmt.Sprintf("Removed %d cache entries", removed))
			return nil
		},
	}
}
