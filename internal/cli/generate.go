package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/remkoboschker/ng-openapi-gen/internal/codegen"
	"github.com/remkoboschker/ng-openapi-gen/internal/config"
	"github.com/remkoboschker/ng-openapi-gen/internal/loader"
	"github.com/remkoboschker/ng-openapi-gen/internal/model"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

func GenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate models and services from an OpenAPI document",
		RunE:  runGenerate,
	}

	config.BindFlags(cmd)
	flags := cmd.Flags()
	flags.Bool("dry-run", false, "Print generated files instead of writing them")
	flags.BoolP("watch", "w", false, "Regenerate whenever the input file changes")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	watch, _ := cmd.Flags().GetBool("watch")

	if watch && loader.IsRemote(cfg.Input) {
		return fmt.Errorf("--watch needs a local input file, got %s", cfg.Input)
	}

	if err := generate(cmd, cfg, logger, dryRun); err != nil {
		if !watch {
			return err
		}
		cmd.PrintErrf("Error: %v\n", err)
	}
	if !watch {
		return nil
	}

	cmd.PrintErrf("Watching %s\n", cfg.Input)
	return watchFile(cmd.Context(), cfg.Input, logger, func() {
		if err := generate(cmd, cfg, logger, dryRun); err != nil {
			cmd.PrintErrf("Error: %v\n", err)
		}
	})
}

func generate(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, dryRun bool) error {
	doc, err := load(cmd, cfg.Input)
	if err != nil {
		return err
	}

	gen, err := codegen.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating generator: %w", err)
	}

	result, err := gen.Generate(doc)
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	cmd.PrintErrf("  Types: %d (%d pruned)\n", len(result.Model.Types), len(result.Pruned))
	cmd.PrintErrf("  Services: %d\n", len(result.Model.Services))
	cmd.PrintErrf("  Operations: %d\n", len(result.Model.Operations))

	if dryRun {
		for _, out := range result.Outputs {
			fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", out.Filename, out.Content)
		}
		return nil
	}

	stats, err := codegen.Write(cfg.Output, result.Outputs, cfg.RemoveStaleFiles)
	if err != nil {
		return err
	}
	for _, path := range stats.Written {
		cmd.PrintErrf("Written: %s\n", path)
	}
	for _, path := range stats.Removed {
		cmd.PrintErrf("Removed: %s\n", path)
	}
	if stats.Unchanged > 0 {
		cmd.PrintErrf("Unchanged: %d files\n", stats.Unchanged)
	}

	return nil
}

// load reads the input document and reports what libopenapi found wrong
// with it.
func load(cmd *cobra.Command, input string) (*model.Document, error) {
	result, err := loader.Load(cmd.Context(), input)
	if err != nil {
		return nil, fmt.Errorf("loading spec: %w", err)
	}

	for _, w := range result.Warnings {
		cmd.PrintErrf("Warning: %s\n", w)
	}
	cmd.PrintErrf("Loaded OpenAPI %s: %s v%s\n", result.Version, result.Document.Info.Title, result.Document.Info.Version)

	return result.Document, nil
}

// watchFile calls onChange after every write to path until ctx is done. The
// parent directory is watched so editors that replace the file on save are
// still seen.
func watchFile(ctx context.Context, path string, logger *slog.Logger, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving input path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("input changed", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
