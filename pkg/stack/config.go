package stack

import (
	"math"

	"github.com/matzehuels/stackview/pkg/errors"
)

// Config holds the stack parameters owned by a [Container].
// The zero value is a horizontal, filling stack without spacing.
type Config struct {
	Axis         Axis
	Alignment    Alignment
	Distribution Distribution
	Spacing      float64
}

// Validate reports whether c can be synthesized.
//
// Baseline alignment on a vertical axis is rejected with
// ErrCodeInvalidAlignmentForAxis. Negative or non-finite spacing and unknown
// enum values are rejected with ErrCodeInvalidConfiguration.
func (c Config) Validate() error {
	if c.Axis > Vertical {
		return errors.New(errors.ErrCodeInvalidConfiguration, "unknown axis %v", c.Axis)
	}
	if c.Alignment > AlignLastBaseline {
		return errors.New(errors.ErrCodeInvalidConfiguration, "unknown alignment %v", c.Alignment)
	}
	if c.Distribution > DistributeEqualCentering {
		return errors.New(errors.ErrCodeInvalidConfiguration, "unknown distribution %v", c.Distribution)
	}
	if c.Alignment.IsBaseline() && c.Axis != Horizontal {
		return errors.New(errors.ErrCodeInvalidAlignmentForAxis,
			"%s alignment requires a horizontal axis, got %s", c.Alignment, c.Axis)
	}
	if c.Spacing < 0 || math.IsNaN(c.Spacing) || math.IsInf(c.Spacing, 0) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "spacing must be a non-negative number, got %v", c.Spacing)
	}
	return nil
}
