package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/memhost"
	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/stack"
	"github.com/matzehuels/stackview/pkg/stackfile"
)

// Load reads and validates the document at path. It also returns the raw
// document, from which cache keys are derived.
func Load(ctx context.Context, path string) (*stackfile.Document, []byte, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, path)
	doc, raw, err := stackfile.ReadFile(path)
	items := 0
	if doc != nil {
		items = len(doc.Items)
	}
	observability.Pipeline().OnLoadComplete(ctx, path, items, time.Since(start), err)
	return doc, raw, err
}

// Build creates an in-memory host measuring the document's items and a
// container arranging them in document order.
func Build(doc *stackfile.Document, logger *log.Logger, hostOpts ...memhost.Option) (*stack.Container, *memhost.Host, error) {
	cfg, err := doc.Config()
	if err != nil {
		return nil, nil, err
	}

	opts := make([]memhost.Option, 0, len(doc.Items)+len(hostOpts))
	for _, it := range doc.Items {
		id := constraint.ElementID(it.ID)
		opts = append(opts, memhost.WithIntrinsicSize(id, it.Size()))
		if it.Baseline {
			opts = append(opts, memhost.WithBaseline(id))
		}
	}
	host := memhost.New(append(opts, hostOpts...)...)

	c, err := stack.New(constraint.ElementID(doc.ID), host, stack.WithConfig(cfg), stack.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	for _, it := range doc.Items {
		if err := c.AddItem(constraint.ElementID(it.ID), it.Options()...); err != nil {
			return nil, nil, err
		}
	}
	return c, host, nil
}

// Synthesize builds the document's container and captures its state.
func Synthesize(doc *stackfile.Document, logger *log.Logger) (*Snapshot, error) {
	c, _, err := Build(doc, logger)
	if err != nil {
		return nil, err
	}
	return Capture(c), nil
}
