package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/algoviz/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local trace cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheDir returns the configured file cache directory.
func (c *CLI) cacheDir() string {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir
	}
	return cache.DefaultDir()
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached traces",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache.Backend == cache.BackendRedis {
				printWarning("Redis entries expire on their own; only the file cache is cleared")
			}
			fc, err := cache.NewFileCache(c.cacheDir())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			n, err := fc.Clear()
			if err != nil {
				return err
			}
			if n == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached traces", n)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.out, c.cacheDir())
			return nil
		},
	}
}
