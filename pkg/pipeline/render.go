package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/render"
)

// Render produces the requested artifacts for snap. The SVG is rendered
// once and shared by the png and pdf conversions.
func Render(ctx context.Context, snap *Snapshot, opts Options) (map[string][]byte, error) {
	dot := render.ToDOT(snap.Container, snap.Constraints, render.Options{
		Detailed: opts.Detailed,
		Hidden:   snap.HiddenItems(),
	})

	var svg []byte
	needSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = render.RenderSVG(ctx, dot)
		return svg, err
	}

	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)
		data, err := renderFormat(format, snap, dot, opts, needSVG)
		observability.Pipeline().OnRenderComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		out[format] = data
	}
	return out, nil
}

func renderFormat(format string, snap *Snapshot, dot string, opts Options, svg func() ([]byte, error)) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatJSON:
		return MarshalSnapshot(snap)
	case FormatSVG:
		return svg()
	case FormatPNG:
		s, err := svg()
		if err != nil {
			return nil, err
		}
		return render.ToPNG(s, opts.Scale)
	case FormatPDF:
		s, err := svg()
		if err != nil {
			return nil, err
		}
		return render.ToPDF(s)
	}
	return nil, ValidateFormat(format)
}
