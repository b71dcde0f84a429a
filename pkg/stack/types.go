package stack

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stackview/pkg/constraint"
)

// =============================================================================
// Axis
// =============================================================================

// Axis is the direction along which items are stacked.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// Transverse returns the perpendicular axis.
func (a Axis) Transverse() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// Leading is the attribute of the edge where stacking starts.
func (a Axis) Leading() constraint.Attribute {
	if a == Vertical {
		return constraint.Top
	}
	return constraint.Leading
}

// Trailing is the attribute of the edge where stacking ends.
func (a Axis) Trailing() constraint.Attribute {
	if a == Vertical {
		return constraint.Bottom
	}
	return constraint.Trailing
}

// Center is the attribute of the center line perpendicular to a.
func (a Axis) Center() constraint.Attribute {
	if a == Vertical {
		return constraint.CenterY
	}
	return constraint.CenterX
}

// Dimension is the size attribute measured along a.
func (a Axis) Dimension() constraint.Attribute {
	if a == Vertical {
		return constraint.Height
	}
	return constraint.Width
}

// =============================================================================
// Alignment
// =============================================================================

// Alignment is the layout transverse to the stacking axis.
type Alignment uint8

const (
	// AlignFill ties both transverse edges of every item to the container.
	AlignFill Alignment = iota
	// AlignLeading ties the leading edge (vertical axis) or the top edge
	// (horizontal axis) of every item to the container.
	AlignLeading
	// AlignFirstBaseline aligns first baselines. Horizontal axis only.
	AlignFirstBaseline
	// AlignCenter centers items on the transverse axis.
	AlignCenter
	// AlignTrailing ties the trailing edge (vertical axis) or the bottom edge
	// (horizontal axis) of every item to the container.
	AlignTrailing
	// AlignLastBaseline aligns last baselines. Horizontal axis only.
	AlignLastBaseline
)

// AlignTop and AlignBottom name the leading and trailing alignments of a
// horizontal stack.
const (
	AlignTop    = AlignLeading
	AlignBottom = AlignTrailing
)

var alignmentNames = [...]string{
	AlignFill:          "fill",
	AlignLeading:       "leading",
	AlignFirstBaseline: "firstBaseline",
	AlignCenter:        "center",
	AlignTrailing:      "trailing",
	AlignLastBaseline:  "lastBaseline",
}

func (a Alignment) String() string {
	if int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return fmt.Sprintf("Alignment(%d)", uint8(a))
}

// IsBaseline reports whether a aligns on baselines.
func (a Alignment) IsBaseline() bool {
	return a == AlignFirstBaseline || a == AlignLastBaseline
}

// =============================================================================
// Distribution
// =============================================================================

// Distribution is the layout along the stacking axis.
type Distribution uint8

const (
	// DistributeFill places items edge to edge with the configured spacing
	// and leaves sizing to the items' own content priorities.
	DistributeFill Distribution = iota
	// DistributeFillEqually gives every visible item the same size.
	DistributeFillEqually
	// DistributeFillProportionally sizes items proportionally to their
	// intrinsic content size.
	DistributeFillProportionally
	// DistributeEqualSpacing makes the gaps between items equal.
	DistributeEqualSpacing
	// DistributeEqualCentering makes the distances between item centers equal.
	DistributeEqualCentering
)

var distributionNames = [...]string{
	DistributeFill:               "fill",
	DistributeFillEqually:        "fillEqually",
	DistributeFillProportionally: "fillProportionally",
	DistributeEqualSpacing:       "equalSpacing",
	DistributeEqualCentering:     "equalCentering",
}

func (d Distribution) String() string {
	if int(d) < len(distributionNames) {
		return distributionNames[d]
	}
	return fmt.Sprintf("Distribution(%d)", uint8(d))
}

// usesSpacers reports whether d realizes its gaps with spacer elements.
func (d Distribution) usesSpacers() bool {
	return d == DistributeEqualSpacing || d == DistributeEqualCentering
}

// =============================================================================
// Parsing
// =============================================================================

// ParseAxis parses an axis name (case-insensitive).
func ParseAxis(s string) (Axis, bool) {
	switch strings.ToLower(s) {
	case "horizontal", "h", "x":
		return Horizontal, true
	case "vertical", "v", "y":
		return Vertical, true
	}
	return 0, false
}

// ParseAlignment parses an alignment name (case-insensitive, "-" and "_"
// ignored). "top" and "bottom" are accepted as aliases.
func ParseAlignment(s string) (Alignment, bool) {
	switch normalizeName(s) {
	case "top":
		return AlignTop, true
	case "bottom":
		return AlignBottom, true
	}
	for i, name := range alignmentNames {
		if normalizeName(name) == normalizeName(s) {
			return Alignment(i), true
		}
	}
	return 0, false
}

// ParseDistribution parses a distribution name (case-insensitive, "-" and
// "_" ignored).
func ParseDistribution(s string) (Distribution, bool) {
	for i, name := range distributionNames {
		if normalizeName(name) == normalizeName(s) {
			return Distribution(i), true
		}
	}
	return 0, false
}

func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}
