package constraint

import (
	"fmt"
	"math"
	"strings"
)

// Namespace prefixes every generated identifier.
const Namespace = "SV-"

// separator joins the participants of an identifier.
const separator = ":"

// ID builds a namespaced identifier from a role and its participants.
func ID(role string, participants ...ElementID) string {
	var b strings.Builder
	b.WriteString(Namespace)
	b.WriteString(role)
	for _, p := range participants {
		b.WriteString(separator)
		b.WriteString(string(p))
	}
	return b.String()
}

// IsGenerated reports whether id belongs to the generated namespace.
func IsGenerated(id string) bool {
	return strings.HasPrefix(id, Namespace) && len(id) > len(Namespace)
}

// Constraint describes one linear relation between element attributes.
type Constraint struct {
	ID         string    `json:"id"`
	First      ElementID `json:"first"`
	FirstAttr  Attribute `json:"first_attr"`
	Relation   Relation  `json:"relation"`
	Second     ElementID `json:"second,omitempty"`
	SecondAttr Attribute `json:"second_attr,omitempty"`
	Multiplier float64   `json:"multiplier"`
	Constant   float64   `json:"constant"`
	Priority   Priority  `json:"priority"`
}

// HasSecond reports whether the constraint relates two elements.
func (c Constraint) HasSecond() bool {
	return c.Second != "" && c.SecondAttr != NotAnAttribute
}

// String renders c in a readable form, e.g.
//
//	b.leading == a.trailing + 8 @1000 [SV-spacing:a:b]
func (c Constraint) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s.%s %s ", c.First, c.FirstAttr, c.Relation)
	if c.HasSecond() {
		fmt.Fprintf(&b, "%s.%s", c.Second, c.SecondAttr)
		if c.Multiplier != 1 {
			fmt.Fprintf(&b, " * %g", c.Multiplier)
		}
		switch {
		case c.Constant > 0:
			fmt.Fprintf(&b, " + %g", c.Constant)
		case c.Constant < 0:
			fmt.Fprintf(&b, " - %g", -c.Constant)
		}
	} else {
		fmt.Fprintf(&b, "%g", c.Constant)
	}
	fmt.Fprintf(&b, " @%g", float64(c.Priority))
	if c.ID != "" {
		fmt.Fprintf(&b, " [%s]", c.ID)
	}
	return b.String()
}

// Flip returns c written from the second element's side. Constraints without
// a second element, or with a zero multiplier, are returned unchanged.
func (c Constraint) Flip() Constraint {
	if !c.HasSecond() || c.Multiplier == 0 {
		return c
	}
	rel := c.Relation
	if c.Multiplier > 0 {
		rel = rel.Inverse()
	}
	return Constraint{
		ID:         c.ID,
		First:      c.Second,
		FirstAttr:  c.SecondAttr,
		Relation:   rel,
		Second:     c.First,
		SecondAttr: c.FirstAttr,
		Multiplier: 1 / c.Multiplier,
		Constant:   -c.Constant / c.Multiplier,
		Priority:   c.Priority,
	}
}

// tolerance is the numeric slack allowed by Equivalent.
const tolerance = 0.001

// Same reports whether a and b are identical up to numeric tolerance.
func Same(a, b Constraint) bool {
	return a.First == b.First &&
		a.FirstAttr == b.FirstAttr &&
		a.Relation == b.Relation &&
		a.Second == b.Second &&
		a.SecondAttr == b.SecondAttr &&
		math.Abs(a.Multiplier-b.Multiplier) <= tolerance &&
		math.Abs(a.Constant-b.Constant) <= tolerance &&
		math.Abs(float64(a.Priority-b.Priority)) <= tolerance &&
		SameIdentifier(a.ID, b.ID)
}

// Equivalent reports whether a and b describe the same relation, possibly
// written from opposite sides.
func Equivalent(a, b Constraint) bool {
	return Same(a, b) || Same(a, b.Flip())
}

// SameIdentifier compares identifiers ignoring a leading two-letter vendor
// prefix, so "UISV-spacing" matches "SV-spacing" and "TZSV-spacing".
func SameIdentifier(a, b string) bool {
	return a == b || stripVendor(a) == stripVendor(b)
}

func stripVendor(id string) string {
	i := strings.Index(id, Namespace)
	if i < 0 || i > 2 {
		return id
	}
	return id[i:]
}
