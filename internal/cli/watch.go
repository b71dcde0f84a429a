package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/pipeline"
)

// watchDebounce batches the bursts of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// watchCommand creates the watch command re-rendering a document on change.
func (c *CLI) watchCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-render a stack document whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with priority and identifier")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	// Editors replace files on save; watching the directory survives that.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	render := func() {
		if err := c.renderOnce(ctx, path, opts); err != nil {
			printError("%v", err)
		}
	}
	render()
	printInfo("Watching %s (ctrl+c to stop)", path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isDocumentChange(ev, abs) {
				continue
			}
			logger.Debug("document changed", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-fire:
			fire = nil
			render()
		}
	}
}

// isDocumentChange reports whether ev rewrote the watched document.
func isDocumentChange(ev fsnotify.Event, abs string) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != abs {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// renderOnce renders path without caching.
func (c *CLI) renderOnce(ctx context.Context, path string, opts renderOpts) error {
	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	result, err := runner.Execute(ctx, pipeline.Options{
		Path:     path,
		Formats:  opts.formats,
		Detailed: opts.detailed,
		Scale:    opts.scale,
		Logger:   loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}
	printSuccess("Rendered %s at %s", result.Snapshot.Container, time.Now().Format("15:04:05"))
	return writeArtifacts(path, opts.output, opts.formats, result.Artifacts)
}
