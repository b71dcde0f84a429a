package stack

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/errors"
)

// SpacerRole is the job a spacer does between its two neighbours.
type SpacerRole uint8

const (
	// SpacerSpacing spans the gap between two neighbours' facing edges.
	SpacerSpacing SpacerRole = iota
	// SpacerCentering spans the distance between two neighbours' centers.
	SpacerCentering
)

func (r SpacerRole) String() string {
	switch r {
	case SpacerSpacing:
		return "spacing"
	case SpacerCentering:
		return "centering"
	default:
		return fmt.Sprintf("SpacerRole(%d)", uint8(r))
	}
}

// spacerRoleFor maps a spacer-based distribution to its spacer role.
func spacerRoleFor(d Distribution) SpacerRole {
	if d == DistributeEqualCentering {
		return SpacerCentering
	}
	return SpacerSpacing
}

// Spacer is an invisible, zero-content element inserted between two active
// items. Its identifier depends only on its role and its neighbours.
type Spacer struct {
	ID     constraint.ElementID `json:"id"`
	Role   SpacerRole           `json:"role"`
	Before constraint.ElementID `json:"before"`
	After  constraint.ElementID `json:"after"`
}

// SpacerID derives the identifier of the spacer between before and after.
func SpacerID(before, after constraint.ElementID, role SpacerRole) constraint.ElementID {
	return constraint.ElementID(constraint.ID(role.String()+"-spacer", before, after))
}

// SpacerSource hands out spacers during synthesis.
type SpacerSource interface {
	Spacer(before, after constraint.ElementID, role SpacerRole) Spacer
}

type spacerKey struct {
	before, after constraint.ElementID
	role          SpacerRole
}

type spacerEntry struct {
	spacer  Spacer
	pass    uint64
	created uint64
}

// Registry memoizes spacers across synthesis passes so an unchanged pair of
// neighbours keeps the same spacer element, even when items are inserted or
// removed elsewhere in the stack.
//
// Usage per pass:
//
//	r.Begin()
//	cs := stack.Synthesize(id, cfg, items, r)
//	released := r.ReleaseUnused()
//
// A pass whose constraints could not be installed calls Discard instead of
// ReleaseUnused.
type Registry struct {
	entries map[spacerKey]*spacerEntry
	keys    map[constraint.ElementID]spacerKey
	pass    uint64

	onCreate  func(Spacer)
	onRelease func(Spacer)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithSpacerHooks registers callbacks run when a spacer is created and when
// it is released. Either may be nil.
func WithSpacerHooks(onCreate, onRelease func(Spacer)) RegistryOption {
	return func(r *Registry) {
		r.onCreate = onCreate
		r.onRelease = onRelease
	}
}

// NewRegistry creates an empty spacer registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[spacerKey]*spacerEntry),
		keys:    make(map[constraint.ElementID]spacerKey),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Begin starts a synthesis pass. Spacers not requested before the next
// ReleaseUnused are released.
func (r *Registry) Begin() {
	r.pass++
}

// Spacer returns the spacer between before and after for role, creating it
// on first use. It panics with ErrCodeDuplicateSpacerIdentifier if the derived
// identifier already belongs to a different key, which indicates a synthesis
// bug rather than a runtime condition.
func (r *Registry) Spacer(before, after constraint.ElementID, role SpacerRole) Spacer {
	key := spacerKey{before: before, after: after, role: role}
	if e, ok := r.entries[key]; ok {
		e.pass = r.pass
		return e.spacer
	}

	s := Spacer{ID: SpacerID(before, after, role), Role: role, Before: before, After: after}
	if other, ok := r.keys[s.ID]; ok && other != key {
		panic(errors.New(errors.ErrCodeDuplicateSpacerIdentifier,
			"spacer %s derived for (%s, %s, %s) already belongs to (%s, %s, %s)",
			s.ID, before, after, role, other.before, other.after, other.role))
	}

	r.entries[key] = &spacerEntry{spacer: s, pass: r.pass, created: r.pass}
	r.keys[s.ID] = key
	if r.onCreate != nil {
		r.onCreate(s)
	}
	return s
}

// ReleaseUnused drops the spacers not requested since the last Begin and
// returns them sorted by identifier.
func (r *Registry) ReleaseUnused() []Spacer {
	var released []Spacer
	for key, e := range r.entries {
		if e.pass == r.pass {
			continue
		}
		delete(r.entries, key)
		delete(r.keys, e.spacer.ID)
		released = append(released, e.spacer)
	}
	sortSpacers(released)
	if r.onRelease != nil {
		for _, s := range released {
			r.onRelease(s)
		}
	}
	return released
}

// Discard abandons the current pass: spacers created since the last Begin
// are released and returned sorted by identifier. Spacers that existed
// before the pass are kept.
func (r *Registry) Discard() []Spacer {
	var discarded []Spacer
	for key, e := range r.entries {
		if e.created != r.pass {
			continue
		}
		delete(r.entries, key)
		delete(r.keys, e.spacer.ID)
		discarded = append(discarded, e.spacer)
	}
	sortSpacers(discarded)
	if r.onRelease != nil {
		for _, s := range discarded {
			r.onRelease(s)
		}
	}
	return discarded
}

// Clear releases every spacer.
func (r *Registry) Clear() []Spacer {
	r.pass++
	return r.ReleaseUnused()
}

// Spacers returns the live spacers sorted by identifier.
func (r *Registry) Spacers() []Spacer {
	out := make([]Spacer, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.spacer)
	}
	sortSpacers(out)
	return out
}

// Len returns the number of live spacers.
func (r *Registry) Len() int {
	return len(r.entries)
}

func sortSpacers(s []Spacer) {
	slices.SortFunc(s, func(a, b Spacer) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})
}
