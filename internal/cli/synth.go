package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/cache"
	"github.com/matzehuels/stackview/pkg/pipeline"
)

type synthOpts struct {
	json    bool
	noCache bool
	refresh bool
}

// synthCommand creates the synth command printing synthesized constraints.
func (c *CLI) synthCommand() *cobra.Command {
	var opts synthOpts

	cmd := &cobra.Command{
		Use:   "synth [file]",
		Short: "Print the constraints synthesized for a stack document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSynth(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the snapshot as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runSynth(ctx context.Context, path string, opts synthOpts) error {
	snap, cached, err := c.synthesize(ctx, path, opts.noCache, opts.refresh)
	if err != nil {
		return err
	}

	if opts.json {
		data, err := pipeline.MarshalSnapshot(snap)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render(string(snap.Container)))
	printKeyValue("axis", snap.Config.Axis)
	printKeyValue("alignment", snap.Config.Alignment)
	printKeyValue("distribution", snap.Config.Distribution)
	printKeyValue("spacing", fmt.Sprintf("%g", snap.Config.Spacing))
	printStats(pipeline.Stats{Items: len(snap.Items), Constraints: len(snap.Constraints), Spacers: len(snap.Spacers)}, cached)
	printNewline()
	fmt.Fprintln(stdout, itemTable(snap.Items))
	fmt.Fprintln(stdout, constraintTable(snap.Constraints))
	return nil
}

// synthesize loads path and synthesizes it through the cache.
func (c *CLI) synthesize(ctx context.Context, path string, noCache, refresh bool) (*pipeline.Snapshot, bool, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	doc, raw, err := pipeline.Load(ctx, path)
	if err != nil {
		return nil, false, err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, false, err
	}
	defer runner.Close()

	snap, cached, err := runner.SynthesizeWithCacheInfo(ctx, doc, cache.Hash(raw), pipeline.Options{
		Path:    path,
		Refresh: refresh,
		Logger:  logger,
	})
	if err != nil {
		return nil, false, err
	}
	prog.done(fmt.Sprintf("Synthesized %s", snap.Container))
	return snap, cached, nil
}
