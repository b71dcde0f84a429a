package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (several)
	formats  []string // dot, svg, png, pdf, json
	detailed bool     // priorities and identifiers on edges
	scale    float64  // PNG scale factor
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command drawing a document's
// constraint graph.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the constraint graph of a stack document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label edges with priority and identifier")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+path+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Path:     path,
		Formats:  opts.formats,
		Detailed: opts.detailed,
		Scale:    opts.scale,
		Refresh:  opts.refresh,
		Logger:   loggerFromContext(ctx),
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", result.Snapshot.Container))
	printStats(result.Stats, result.CacheInfo.SynthesisHit && result.CacheInfo.RenderHit)

	return writeArtifacts(path, opts.output, opts.formats, result.Artifacts)
}

// writeArtifacts writes artifacts in the order of formats.
func writeArtifacts(doc, output string, formats []string, artifacts map[string][]byte) error {
	multi := len(formats) > 1
	for _, f := range formats {
		p := outputPath(doc, output, f, multi)
		if err := os.WriteFile(p, artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", p, err)
		}
		printFile(p)
	}
	return nil
}
