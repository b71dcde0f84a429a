package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/memhost"
	"github.com/matzehuels/stackview/pkg/pipeline"
)

// simulateCommand creates the simulate command replaying a document's
// steps against the in-memory host.
func (c *CLI) simulateCommand() *cobra.Command {
	var asJSON, quiet bool

	cmd := &cobra.Command{
		Use:   "simulate [file]",
		Short: "Replay the scripted steps of a stack document",
		Long: `Replay the [[steps]] of a stack document against an in-memory host with a
simulated animation clock and print every host call it made.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), args[0], asJSON, quiet)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the simulation as JSON")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide constraint install/remove events")

	return cmd
}

func runSimulate(ctx context.Context, path string, asJSON, quiet bool) error {
	logger := loggerFromContext(ctx)
	doc, _, err := pipeline.Load(ctx, path)
	if err != nil {
		return err
	}
	if len(doc.Steps) == 0 {
		printWarning("%s has no steps", path)
	}

	sim, err := pipeline.Simulate(ctx, doc, logger)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(sim, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}

	for _, e := range sim.Events {
		if quiet && (e.Kind == memhost.EventInstall || e.Kind == memhost.EventRemove) {
			continue
		}
		fmt.Fprintln(stdout, StyleDim.Render(e.String()))
	}
	printNewline()
	for _, cpl := range sim.Completions {
		status := StyleSuccess.Render("finished")
		if !cpl.Finished {
			status = StyleWarning.Render("cancelled")
		}
		printInfo("animation of step %d %s (delivered during step %d)", cpl.Step, status, cpl.DeliveredAt)
	}
	fmt.Fprintln(stdout, itemTable(sim.Final.Items))
	return nil
}
