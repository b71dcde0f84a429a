// Package pipeline runs stack documents through load → synthesize → render.
//
// The CLI uses this package so that every command shares one code path and
// one cache:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "card.toml",
//	    Formats: []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
//
// Synthesis drives a real [stack.Container] against an in-memory host, so
// the constraints reported are exactly the ones a host would have installed.
// [Simulate] goes further and replays the document's scripted steps,
// returning the host's event log.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackview/pkg/errors"
)

// =============================================================================
// Formats
// =============================================================================

// Output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// ValidateFormat reports whether format is supported. Formats are
// case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (want dot, svg, png, pdf or json)", format)
	}
	return nil
}

// ValidateFormats validates every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Path is the stack document to load.
	Path string `json:"path"`

	// Formats lists the artifacts to render. Defaults to svg.
	Formats []string `json:"formats,omitempty"`

	// Detailed adds priorities and identifiers to diagram edges.
	Detailed bool `json:"detailed,omitempty"`

	// Scale is the PNG scale factor. Defaults to DefaultScale.
	Scale float64 `json:"scale,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills in defaults and validates o.
func (o *Options) ValidateAndSetDefaults() error {
	if err := errors.ValidateDocumentPath(o.Path); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result holds the output of Runner.Execute.
type Result struct {
	Snapshot  *Snapshot
	Artifacts map[string][]byte

	// SnapshotHash identifies the synthesis result; artifact keys derive
	// from it.
	SnapshotHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records stage timings and sizes.
type Stats struct {
	LoadTime      time.Duration
	SynthesisTime time.Duration
	RenderTime    time.Duration
	Items         int
	Constraints   int
	Spacers       int
}

// CacheInfo reports which stages were served from the cache.
type CacheInfo struct {
	SynthesisHit bool
	RenderHit    bool
}

func (s Stats) String() string {
	return fmt.Sprintf("%d items, %d constraints, %d spacers", s.Items, s.Constraints, s.Spacers)
}
