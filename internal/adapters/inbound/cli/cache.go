package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charsnap/charsnap/internal/adapters/outbound/cache"
)

func newCacheCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the detection cache",
	}
	cmd.AddCommand(newCacheClearCmd(env))
	return cmd
}

func newCacheClearCmd(env *environment) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached detection results",
		Long: "Remove the detection cache so the next snapshot runs the detector on every file. " +
			"Clearing a directory without a cache is not an error.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg, err := env.loadConfig()
				if err != nil {
					return err
				}
				dir = cfg.CacheDir
			}
			if dir == "" {
				return fmt.Errorf("no cache directory: set cache_dir or pass --cache-dir")
			}

			if err := cache.Invalidate(dir); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared detection cache in %s\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "cache-dir", "", "Detection cache directory (defaults to cache_dir)")

	return cmd
}
