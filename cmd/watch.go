package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conneroisu/basset/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:     "watch [directories...]",
	Aliases: []string{"w"},
	Short:   "Re-internalize local asset directories on change",
	Long: `Watch local asset directories and re-internalize them whenever their
contents change. Directories default to watch.paths from the configuration;
arguments override them.

Every debounced change batch runs as a fresh internalization pass, so
changed files are re-copied even though earlier passes marked them loaded.

Examples:
  basset watch
  basset watch ./resources/js ./resources/css`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, err := newRunContext()
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = ctx.cfg.Watch.Paths
	}
	if len(paths) == 0 {
		return fmt.Errorf("nothing to watch: pass directories or set watch.paths")
	}
	for i, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		paths[i] = abs
	}

	fw, err := watcher.NewFileWatcher(ctx.cfg.Watch.Debounce, ctx.logger)
	if err != nil {
		return err
	}

	for _, path := range paths {
		if err := fw.AddRecursive(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		// A fresh run context per batch: new loaded set, so changed
		// directories are actually re-copied.
		run, err := newRunContext()
		if err != nil {
			return err
		}

		for _, path := range paths {
			res := run.engine.RefreshDirectory(path, "")
			fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s\n", res.Status, path)
		}

		return run.engine.Flush()
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %d directories (ctrl-c to stop)\n", len(paths))

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return fw.Start(sigCtx)
}
