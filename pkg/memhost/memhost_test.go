package memhost

import (
	"errors"
	"testing"
	"time"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/stack"
)

func spacing(a, b constraint.ElementID) constraint.Constraint {
	return constraint.Constraint{
		ID:         constraint.ID("spacing", a, b),
		First:      b,
		FirstAttr:  constraint.Leading,
		Relation:   constraint.Equal,
		Second:     a,
		SecondAttr: constraint.Trailing,
		Multiplier: 1,
		Constant:   8,
		Priority:   constraint.Required,
	}
}

func TestConstraintStore(t *testing.T) {
	h := New()
	ab, bc := spacing("a", "b"), spacing("b", "c")

	if err := h.InstallConstraint(ab); err != nil {
		t.Fatal(err)
	}
	if err := h.InstallConstraint(bc); err != nil {
		t.Fatal(err)
	}
	if err := h.InstallConstraint(ab); err == nil {
		t.Error("installing an identifier twice should fail")
	}

	if got := h.ConstraintsWithPrefix("SV-spacing:a:"); len(got) != 1 || got[0].ID != ab.ID {
		t.Errorf("ConstraintsWithPrefix = %v", got)
	}
	if err := h.RemoveConstraint(ab.ID); err != nil {
		t.Fatal(err)
	}
	if err := h.RemoveConstraint(ab.ID); err == nil {
		t.Error("removing a missing identifier should fail")
	}
	if got := h.Constraints(); len(got) != 1 || got[0].ID != bc.ID {
		t.Errorf("Constraints() = %v", got)
	}
}

func TestInstallHook(t *testing.T) {
	boom := errors.New("boom")
	h := New(WithInstallHook(func(c constraint.Constraint) error {
		if c.First == "b" {
			return boom
		}
		return nil
	}))

	if err := h.InstallConstraint(spacing("a", "b")); !errors.Is(err, boom) {
		t.Errorf("err = %v, want hook error", err)
	}
	if _, ok := h.Constraint(constraint.ID("spacing", "a", "b")); ok {
		t.Error("rejected constraint should not be installed")
	}
}

func TestChildrenAndMeasurement(t *testing.T) {
	h := New(WithIntrinsicSize("title", constraint.Size{Width: 80, Height: 24}), WithBaseline("title"))

	h.AddChild("title")
	h.AddChild("title")
	h.AddChild("body")
	if got := h.Children(); len(got) != 2 {
		t.Errorf("Children() = %v, want no duplicates", got)
	}
	h.RemoveChild("title")
	if h.HasChild("title") || !h.HasChild("body") {
		t.Errorf("Children() = %v after removing title", h.Children())
	}

	if got := h.IntrinsicSize("title"); got.Height != 24 {
		t.Errorf("IntrinsicSize(title) = %v", got)
	}
	if got := h.IntrinsicSize("body"); got.Width >= 0 || got.Height >= 0 {
		t.Errorf("unknown element should report no intrinsic size, got %v", got)
	}
	h.SetIntrinsicSize("body", constraint.Size{Width: 10, Height: 10})
	if got := h.IntrinsicSize("body"); got.Width != 10 {
		t.Errorf("SetIntrinsicSize not applied: %v", got)
	}
	if !h.HasBaseline("title") || h.HasBaseline("body") {
		t.Error("baselines not reported as configured")
	}

	if _, ok := h.PresentationHidden("body"); ok {
		t.Error("no presentation request made yet")
	}
	h.RequestPresentationVisibility("body", true)
	if hidden, ok := h.PresentationHidden("body"); !ok || !hidden {
		t.Error("presentation request not recorded")
	}
}

func TestAdvanceCompletesInEndOrder(t *testing.T) {
	h := New()
	var order []stack.DriverHandle
	done := func(handle stack.DriverHandle, finished bool) {
		if !finished {
			t.Errorf("animation #%d reported unfinished", handle)
		}
		order = append(order, handle)
	}

	slow := h.BeginAnimation(stack.AnimationOptions{Duration: 300 * time.Millisecond}, done)
	delayed := h.BeginAnimation(stack.AnimationOptions{Duration: 100 * time.Millisecond, Delay: 100 * time.Millisecond}, done)
	fast := h.BeginAnimation(stack.AnimationOptions{Duration: 100 * time.Millisecond}, done)

	if n := h.Advance(150 * time.Millisecond); n != 1 {
		t.Fatalf("Advance(150ms) completed %d, want 1", n)
	}
	if n := h.Advance(time.Second); n != 2 {
		t.Fatalf("Advance(1s) completed %d, want 2", n)
	}

	want := []stack.DriverHandle{fast, delayed, slow}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("completion order = %v, want %v", order, want)
		}
	}
	if got := h.Now(); got != 1150*time.Millisecond {
		t.Errorf("Now() = %v, want 1.15s", got)
	}
}

func TestCompleteAndCompleteAll(t *testing.T) {
	h := New()
	results := map[stack.DriverHandle]bool{}
	done := func(handle stack.DriverHandle, finished bool) { results[handle] = finished }

	a := h.BeginAnimation(stack.AnimationOptions{Duration: time.Second}, done)
	b := h.BeginAnimation(stack.AnimationOptions{Duration: time.Second}, done)
	c := h.BeginAnimation(stack.AnimationOptions{Duration: time.Second}, done)

	if !h.Complete(b, false) {
		t.Fatal("Complete on a running handle should report true")
	}
	if h.Complete(b, true) {
		t.Error("a handle reports only once")
	}
	if got := h.PendingAnimations(); len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("PendingAnimations() = %v", got)
	}
	if n := h.CompleteAll(true); n != 2 {
		t.Errorf("CompleteAll() = %d, want 2", n)
	}
	if results[b] || !results[a] || !results[c] {
		t.Errorf("results = %v", results)
	}
}

func TestEventLog(t *testing.T) {
	h := New()
	h.AddChild("a")
	_ = h.InstallConstraint(spacing("a", "b"))
	handle := h.BeginAnimation(stack.AnimationOptions{Duration: time.Second}, nil)
	h.Advance(time.Second)

	want := []EventKind{EventAddChild, EventInstall, EventBeginAnimation, EventEndAnimation}
	events := h.Events()
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(events), len(want), events)
	}
	for i, k := range want {
		if events[i].Kind != k {
			t.Errorf("events[%d] = %s, want %s", i, events[i].Kind, k)
		}
	}
	if end := events[3]; end.At != time.Second || end.Subject != "#1" || handle != 1 {
		t.Errorf("end event = %+v", end)
	}

	h.ResetEvents()
	if len(h.Events()) != 0 {
		t.Error("ResetEvents should clear the log")
	}
}
