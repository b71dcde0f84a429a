// Package constraint defines the value types of a declarative layout
// constraint graph.
//
// A [Constraint] relates one attribute of an element to an optional attribute
// of a second element:
//
//	first.firstAttr  <relation>  second.secondAttr * multiplier + constant   @priority
//
// Elements are referenced by [ElementID] only. The package never owns or
// measures elements, and it never solves the graph; it only describes it.
//
// # Identifiers
//
// Every generated constraint carries an identifier. Identifiers built with
// [ID] live in the [Namespace] ("SV-") so a constraint store can tell
// generated constraints apart from caller-authored ones:
//
//	constraint.ID("spacing", "a", "b") // "SV-spacing:a:b"
//
// # Equivalence
//
// Two constraints describe the same relation when they are equal, or when one
// is the other written from the opposite side (see [Constraint.Flip]).
// [Equivalent] compares with a 0.001 tolerance on numeric fields.
package constraint
