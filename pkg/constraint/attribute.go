package constraint

import "fmt"

// ElementID identifies a participant of a constraint: an arranged item, a
// spacer, or the container itself.
type ElementID string

// Attribute is a geometric property of an element.
type Attribute uint8

const (
	NotAnAttribute Attribute = iota
	Left
	Right
	Top
	Bottom
	Leading
	Trailing
	Width
	Height
	CenterX
	CenterY
	FirstBaseline
	LastBaseline
)

var attributeNames = [...]string{
	NotAnAttribute: "notAnAttribute",
	Left:           "left",
	Right:          "right",
	Top:            "top",
	Bottom:         "bottom",
	Leading:        "leading",
	Trailing:       "trailing",
	Width:          "width",
	Height:         "height",
	CenterX:        "centerX",
	CenterY:        "centerY",
	FirstBaseline:  "firstBaseline",
	LastBaseline:   "lastBaseline",
}

func (a Attribute) String() string {
	if int(a) < len(attributeNames) {
		return attributeNames[a]
	}
	return fmt.Sprintf("Attribute(%d)", uint8(a))
}

// IsDimension reports whether a is a size rather than a position.
func (a Attribute) IsDimension() bool {
	return a == Width || a == Height
}

// Relation is the comparison between the two sides of a constraint.
type Relation int8

const (
	LessOrEqual    Relation = -1
	Equal          Relation = 0
	GreaterOrEqual Relation = 1
)

func (r Relation) String() string {
	switch r {
	case LessOrEqual:
		return "<="
	case Equal:
		return "=="
	case GreaterOrEqual:
		return ">="
	default:
		return fmt.Sprintf("Relation(%d)", int8(r))
	}
}

// Inverse returns the relation seen from the other side.
func (r Relation) Inverse() Relation {
	return -r
}

// Priority orders constraints for the solver. Required constraints must hold.
type Priority float64

const (
	Required         Priority = 1000
	DefaultHigh      Priority = 750
	DefaultLow       Priority = 250
	FittingSizeLevel Priority = 50
)

// Size is an intrinsic content size. Negative components mean "no intrinsic
// size" along that dimension.
type Size struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Along returns the component of s matching the dimension attribute a.
func (s Size) Along(a Attribute) float64 {
	if a == Height {
		return s.Height
	}
	return s.Width
}
