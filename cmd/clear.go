package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// clearCmd is the maintenance command that wipes the internalized-asset
// tree and the cache map so the next run starts cold.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete and recreate the internalized-assets directory and the cache map",
	Long: `Delete the entire internalized-asset tree on the storage disk and the
cache-map file, then recreate the empty directories. The next internalization
run re-fetches everything.

Examples:
  basset clear`,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx, err := newRunContext()
	if err != nil {
		return err
	}

	if err := ctx.disk.DeleteDirectory(ctx.cfg.Assets.Path); err != nil {
		return fmt.Errorf("delete internalized assets: %w", err)
	}
	if err := ctx.disk.MakeDirectory(ctx.cfg.Assets.Path); err != nil {
		return fmt.Errorf("recreate internalized assets directory: %w", err)
	}

	mapDir := filepath.Dir(ctx.cache.File())
	if err := ctx.fs.RemoveAll(mapDir); err != nil {
		return fmt.Errorf("delete cache map directory: %w", err)
	}
	if err := ctx.fs.MkdirAll(mapDir, 0o755); err != nil {
		return fmt.Errorf("recreate cache map directory: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Internalized assets and cache map cleared")

	return nil
}
