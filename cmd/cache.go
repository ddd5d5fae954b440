package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/hlpack/internal/cache"
	"github.com/Norgate-AV/hlpack/internal/config"
)

func newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the build cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:          "stats",
		Short:        "Show cache statistics",
		Args:         cobra.NoArgs,
		RunE:         withCache(cacheStats),
		SilenceUsage: true,
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:          "clear",
		Short:        "Remove all cached bundles",
		Args:         cobra.NoArgs,
		RunE:         withCache(cacheClear),
		SilenceUsage: true,
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:          "prune",
		Short:        "Remove expired bundles",
		Args:         cobra.NoArgs,
		RunE:         withCache(cachePrune),
		SilenceUsage: true,
	})

	return cacheCmd
}

// withCache opens the configured cache for the duration of fn
func withCache(fn func(cmd *cobra.Command, c *cache.Bolt) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewLoader().LoadForBuild(cmd)
		if err != nil {
			return err
		}

		c, err := cache.Open(cfg.CacheDir)
		if err != nil {
			return err
		}

		defer c.Close()

		return fn(cmd, c)
	}
}

func cacheStats(cmd *cobra.Command, c *cache.Bolt) error {
	count, size, err := c.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cache: %s\nEntries: %d\nSize: %d bytes\n", c.Dir(), count, size)
	return nil
}

func cacheClear(cmd *cobra.Command, c *cache.Bolt) error {
	if err := c.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
	return nil
}

func cachePrune(cmd *cobra.Command, c *cache.Bolt) error {
	n, err := c.Prune()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries\n", n)
	return nil
}
