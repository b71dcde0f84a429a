package reconcile

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/errors"
)

type call struct {
	op string
	id string
}

// fakeStore records calls. failOn makes the next matching call fail once.
type fakeStore struct {
	installed map[string]constraint.Constraint
	calls     []call
	failOn    call
}

func newFakeStore() *fakeStore {
	return &fakeStore{installed: make(map[string]constraint.Constraint)}
}

func (s *fakeStore) InstallConstraint(c constraint.Constraint) error {
	s.calls = append(s.calls, call{"install", c.ID})
	if s.failOn == (call{"install", c.ID}) {
		s.failOn = call{}
		return fmt.Errorf("solver rejected %s", c.ID)
	}
	if _, ok := s.installed[c.ID]; ok {
		return fmt.Errorf("%s already installed", c.ID)
	}
	s.installed[c.ID] = c
	return nil
}

func (s *fakeStore) RemoveConstraint(id string) error {
	s.calls = append(s.calls, call{"remove", id})
	if s.failOn == (call{"remove", id}) {
		s.failOn = call{}
		return fmt.Errorf("cannot remove %s", id)
	}
	if _, ok := s.installed[id]; !ok {
		return fmt.Errorf("%s not installed", id)
	}
	delete(s.installed, id)
	return nil
}

func (s *fakeStore) ids() []string {
	var out []string
	for id := range s.installed {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func spacing(a, b string, constant float64) constraint.Constraint {
	return constraint.Constraint{
		ID:         constraint.ID("spacing", constraint.ElementID(a), constraint.ElementID(b)),
		First:      constraint.ElementID(b),
		FirstAttr:  constraint.Top,
		Relation:   constraint.Equal,
		Second:     constraint.ElementID(a),
		SecondAttr: constraint.Bottom,
		Multiplier: 1,
		Constant:   constant,
		Priority:   constraint.Required,
	}
}

func TestApplyInstallsFirstGeneration(t *testing.T) {
	store := newFakeStore()
	r := New(store)

	gen := []constraint.Constraint{spacing("a", "b", 8), spacing("b", "c", 8)}
	diff, err := r.Apply(gen)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(diff.Added) != 2 || len(diff.Removed) != 0 || len(diff.Kept) != 0 {
		t.Errorf("diff = %v, want 2 added", diff)
	}
	if got := store.ids(); !slices.Equal(got, []string{"SV-spacing:a:b", "SV-spacing:b:c"}) {
		t.Errorf("installed = %v", got)
	}
}

func TestApplyLeavesUnchangedConstraints(t *testing.T) {
	store := newFakeStore()
	r := New(store)
	gen := []constraint.Constraint{spacing("a", "b", 8), spacing("b", "c", 8)}
	if _, err := r.Apply(gen); err != nil {
		t.Fatal(err)
	}
	store.calls = nil

	diff, err := r.Apply(gen)
	if err != nil {
		t.Fatal(err)
	}
	if !diff.Empty() || len(diff.Kept) != 2 {
		t.Errorf("diff = %v, want everything kept", diff)
	}
	if len(store.calls) != 0 {
		t.Errorf("unchanged generation made store calls: %v", store.calls)
	}
}

func TestApplyDiff(t *testing.T) {
	store := newFakeStore()
	r := New(store)
	if _, err := r.Apply([]constraint.Constraint{spacing("a", "b", 8), spacing("b", "c", 8)}); err != nil {
		t.Fatal(err)
	}
	store.calls = nil

	diff, err := r.Apply([]constraint.Constraint{spacing("a", "b", 16), spacing("c", "d", 8)})
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(diff.Removed, []string{"SV-spacing:b:c"}) {
		t.Errorf("Removed = %v", diff.Removed)
	}
	if !slices.Equal(diff.Replaced, []string{"SV-spacing:a:b"}) {
		t.Errorf("Replaced = %v", diff.Replaced)
	}
	if !slices.Equal(diff.Added, []string{"SV-spacing:c:d"}) {
		t.Errorf("Added = %v", diff.Added)
	}

	want := []call{
		{"remove", "SV-spacing:b:c"},
		{"remove", "SV-spacing:a:b"},
		{"install", "SV-spacing:a:b"},
		{"install", "SV-spacing:c:d"},
	}
	if !slices.Equal(store.calls, want) {
		t.Errorf("calls = %v, want %v", store.calls, want)
	}
	if got := store.installed["SV-spacing:a:b"].Constant; got != 16 {
		t.Errorf("replaced constant = %v, want 16", got)
	}
}

func TestApplyRejectsForeignIdentifiers(t *testing.T) {
	store := newFakeStore()
	r := New(store)

	c := spacing("a", "b", 8)
	c.ID = "user-width"
	_, err := r.Apply([]constraint.Constraint{c})
	if !errors.Is(err, errors.ErrCodeInvalidIdentifier) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidIdentifier)
	}

	dup := spacing("a", "b", 8)
	_, err = r.Apply([]constraint.Constraint{dup, dup})
	if !errors.Is(err, errors.ErrCodeInvalidIdentifier) {
		t.Errorf("duplicate error = %v, want %s", err, errors.ErrCodeInvalidIdentifier)
	}
	if len(store.calls) != 0 {
		t.Errorf("rejected generation reached the store: %v", store.calls)
	}
}

func TestApplyNeverTouchesCallerConstraints(t *testing.T) {
	store := newFakeStore()
	store.installed["user-width"] = constraint.Constraint{ID: "user-width"}
	r := New(store)

	if _, err := r.Apply([]constraint.Constraint{spacing("a", "b", 8)}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := store.ids(); !slices.Equal(got, []string{"user-width"}) {
		t.Errorf("installed = %v, want only the caller constraint", got)
	}
}

func TestApplyRollsBack(t *testing.T) {
	tests := []struct {
		name   string
		failOn call
	}{
		{"install fails", call{"install", "SV-spacing:c:d"}},
		{"replace install fails", call{"install", "SV-spacing:a:b"}},
		{"remove fails", call{"remove", "SV-spacing:a:b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			r := New(store)
			prev := []constraint.Constraint{spacing("a", "b", 8), spacing("b", "c", 8)}
			if _, err := r.Apply(prev); err != nil {
				t.Fatal(err)
			}

			store.failOn = tt.failOn
			_, err := r.Apply([]constraint.Constraint{spacing("a", "b", 16), spacing("c", "d", 8)})
			if !errors.Is(err, errors.ErrCodeReconcileFailed) {
				t.Fatalf("error = %v, want %s", err, errors.ErrCodeReconcileFailed)
			}

			if got := store.ids(); !slices.Equal(got, []string{"SV-spacing:a:b", "SV-spacing:b:c"}) {
				t.Errorf("installed after rollback = %v", got)
			}
			if got := store.installed["SV-spacing:a:b"].Constant; got != 8 {
				t.Errorf("constant after rollback = %v, want 8", got)
			}
			if cur := r.Current(); len(cur) != 2 || cur[0] != prev[0] {
				t.Errorf("Current() = %v, want previous generation", cur)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	prev := []constraint.Constraint{spacing("a", "b", 8)}
	next := []constraint.Constraint{spacing("a", "b", 8), spacing("b", "c", 8)}

	d := Compare(prev, next)
	if d.String() != "+1 -0 ~0 =1" {
		t.Errorf("Compare = %s", d)
	}
}
