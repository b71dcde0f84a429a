// Package render draws constraint graphs.
//
// # Overview
//
// [ToDOT] turns a container's constraints into a Graphviz DOT graph: one
// node per element (container, items, spacers) and one edge per binary
// constraint, labelled with its relation. Unary constraints such as
// collapsed hidden items are listed inside their element's node.
//
//	dot := render.ToDOT("card", constraints, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// PDF and PNG output converts the SVG with librsvg (rsvg-convert):
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz].
package render
