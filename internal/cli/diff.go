package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/reconcile"
)

// diffCommand creates the diff command comparing two documents'
// constraint sets the way the reconciler would apply them.
func (c *CLI) diffCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "diff [old] [new]",
		Short: "Compare the constraints synthesized for two stack documents",
		Long: `Compare the constraints synthesized for two stack documents.

Constraints are matched by identifier. A changed constraint that states the
same relation from the other side is reported as equivalent.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDiff(cmd.Context(), args[0], args[1], noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runDiff(ctx context.Context, oldPath, newPath string, noCache bool) error {
	prev, _, err := c.synthesize(ctx, oldPath, noCache, false)
	if err != nil {
		return fmt.Errorf("%s: %w", oldPath, err)
	}
	next, _, err := c.synthesize(ctx, newPath, noCache, false)
	if err != nil {
		return fmt.Errorf("%s: %w", newPath, err)
	}

	d := reconcile.Compare(prev.Constraints, next.Constraints)
	if d.Empty() {
		printSuccess("No constraint changes")
		return nil
	}

	before := byID(prev.Constraints)
	after := byID(next.Constraints)

	for _, id := range d.Removed {
		fmt.Fprintln(stdout, styleRemoved.Render("- "+before[id].String()))
	}
	for _, id := range d.Added {
		fmt.Fprintln(stdout, styleAdded.Render("+ "+after[id].String()))
	}
	equivalent := 0
	for _, id := range d.Replaced {
		if constraint.Equivalent(before[id], after[id]) {
			equivalent++
			fmt.Fprintln(stdout, StyleDim.Render("= "+after[id].String()+" (flipped)"))
			continue
		}
		fmt.Fprintln(stdout, styleChanged.Render("~ "+before[id].String()))
		fmt.Fprintln(stdout, styleChanged.Render("  "+iconArrow+" "+after[id].String()))
	}

	printNewline()
	printInfo("%d added, %d removed, %d changed, %d unchanged",
		len(d.Added), len(d.Removed), len(d.Replaced)-equivalent, len(d.Kept)+equivalent)
	return nil
}

func byID(cs []constraint.Constraint) map[string]constraint.Constraint {
	m := make(map[string]constraint.Constraint, len(cs))
	for _, c := range cs {
		m[c.ID] = c
	}
	return m
}
