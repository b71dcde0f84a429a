// Package reconcile installs successive generations of generated constraints
// into a host constraint store, touching only what changed.
//
// Constraints are matched by identifier. A constraint present in both
// generations with equal values is left installed; one whose values changed
// is removed and installed again. Constraints the store holds under other
// identifiers (caller-authored constraints) are never touched.
//
// Apply is all-or-nothing: if the store fails part way, the changes already
// made are undone and the previous generation stays installed.
package reconcile

import (
	"fmt"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/errors"
)

// Store is the host's constraint store.
type Store interface {
	InstallConstraint(c constraint.Constraint) error
	RemoveConstraint(id string) error
}

// Diff lists the identifiers affected by one Apply.
type Diff struct {
	Added    []string `json:"added,omitempty"`
	Removed  []string `json:"removed,omitempty"`
	Replaced []string `json:"replaced,omitempty"`
	Kept     []string `json:"kept,omitempty"`
}

// Empty reports whether the diff changes nothing.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Replaced) == 0
}

func (d Diff) String() string {
	return fmt.Sprintf("+%d -%d ~%d =%d", len(d.Added), len(d.Removed), len(d.Replaced), len(d.Kept))
}

// Compare computes the diff between two generations without touching a
// store. Both must have unique identifiers.
func Compare(prev, next []constraint.Constraint) Diff {
	var d Diff
	old := index(prev)
	seen := make(map[string]bool, len(next))
	for _, c := range next {
		seen[c.ID] = true
		p, ok := old[c.ID]
		switch {
		case !ok:
			d.Added = append(d.Added, c.ID)
		case p == c:
			d.Kept = append(d.Kept, c.ID)
		default:
			d.Replaced = append(d.Replaced, c.ID)
		}
	}
	for _, c := range prev {
		if !seen[c.ID] {
			d.Removed = append(d.Removed, c.ID)
		}
	}
	return d
}

func index(cs []constraint.Constraint) map[string]constraint.Constraint {
	m := make(map[string]constraint.Constraint, len(cs))
	for _, c := range cs {
		m[c.ID] = c
	}
	return m
}

// Reconciler tracks the generation installed in a Store.
type Reconciler struct {
	store   Store
	current []constraint.Constraint
}

// New creates a reconciler for store, which must not yet hold generated
// constraints.
func New(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Current returns the installed generation in installation order.
func (r *Reconciler) Current() []constraint.Constraint {
	out := make([]constraint.Constraint, len(r.current))
	copy(out, r.current)
	return out
}

// Apply makes next the installed generation.
//
// Every constraint in next must carry a unique generated identifier;
// otherwise Apply returns ErrCodeInvalidIdentifier before calling the store.
// Store failures return ErrCodeReconcileFailed after the store has been
// rolled back.
func (r *Reconciler) Apply(next []constraint.Constraint) (Diff, error) {
	if err := validate(next); err != nil {
		return Diff{}, err
	}

	diff := Compare(r.current, next)
	if diff.Empty() {
		r.current = append(r.current[:0:0], next...)
		return diff, nil
	}

	old := index(r.current)
	tx := &undo{store: r.store}

	for _, id := range append(append([]string(nil), diff.Removed...), diff.Replaced...) {
		if err := r.store.RemoveConstraint(id); err != nil {
			return diff, tx.rollback(errors.Wrap(errors.ErrCodeReconcileFailed, err, "remove constraint %s", id))
		}
		tx.removed = append(tx.removed, old[id])
	}
	for _, c := range next {
		if p, ok := old[c.ID]; ok && p == c {
			continue
		}
		if err := r.store.InstallConstraint(c); err != nil {
			return diff, tx.rollback(errors.Wrap(errors.ErrCodeReconcileFailed, err, "install constraint %s", c.ID))
		}
		tx.installed = append(tx.installed, c.ID)
	}

	r.current = append(r.current[:0:0], next...)
	return diff, nil
}

// Clear removes the installed generation.
func (r *Reconciler) Clear() (Diff, error) {
	return r.Apply(nil)
}

func validate(next []constraint.Constraint) error {
	seen := make(map[string]bool, len(next))
	for _, c := range next {
		if !constraint.IsGenerated(c.ID) {
			return errors.New(errors.ErrCodeInvalidIdentifier,
				"constraint %q is outside the %s namespace", c.ID, constraint.Namespace)
		}
		if seen[c.ID] {
			return errors.New(errors.ErrCodeInvalidIdentifier, "duplicate constraint identifier %q", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// undo records the store calls of one Apply.
type undo struct {
	store     Store
	removed   []constraint.Constraint
	installed []string
}

// rollback reverts the recorded calls in reverse order and returns cause.
// A failed revert is attached to the returned error's message.
func (u *undo) rollback(cause *errors.Error) error {
	var failed int
	for i := len(u.installed) - 1; i >= 0; i-- {
		if err := u.store.RemoveConstraint(u.installed[i]); err != nil {
			failed++
		}
	}
	for i := len(u.removed) - 1; i >= 0; i-- {
		if err := u.store.InstallConstraint(u.removed[i]); err != nil {
			failed++
		}
	}
	if failed > 0 {
		cause.Message = fmt.Sprintf("%s (rollback incomplete: %d store calls failed)", cause.Message, failed)
	}
	return cause
}
