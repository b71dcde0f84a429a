package visibility

import (
	"context"
	"fmt"
	"testing"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/errors"
)

type presentation struct {
	id     constraint.ElementID
	hidden bool
}

type recordingPresenter struct {
	requests []presentation
}

func (p *recordingPresenter) RequestPresentationVisibility(id constraint.ElementID, hidden bool) {
	p.requests = append(p.requests, presentation{id, hidden})
}

func (p *recordingPresenter) last(id constraint.ElementID) (bool, bool) {
	for i := len(p.requests) - 1; i >= 0; i-- {
		if p.requests[i].id == id {
			return p.requests[i].hidden, true
		}
	}
	return false, false
}

type completions struct {
	calls []bool
}

func (c *completions) record(finished bool) {
	c.calls = append(c.calls, finished)
}

func newTestCoordinator(ids ...constraint.ElementID) (*Coordinator, *recordingPresenter) {
	p := &recordingPresenter{}
	c := New(p)
	for _, id := range ids {
		c.Track(id, false)
	}
	return c, p
}

// animate runs body inside a committed transaction, as a container would.
func animate(c *Coordinator, done func(bool), body func(ctx context.Context)) *Transaction {
	tx := c.Begin(done)
	body(WithTransaction(context.Background(), tx))
	c.Commit(tx)
	return tx
}

func TestSetHiddenImmediate(t *testing.T) {
	c, p := newTestCoordinator("a")

	changed, err := c.SetHidden(context.Background(), "a", true)
	if err != nil {
		t.Fatalf("SetHidden: %v", err)
	}
	if !changed {
		t.Error("hiding a visible item should change layout")
	}
	if tiers, _ := c.Tiers("a"); tiers != uniform(true) {
		t.Errorf("tiers = %+v, want all hidden", tiers)
	}
	if st, _ := c.State("a"); st != (Settled{Hidden: true}) {
		t.Errorf("state = %v, want settled(hidden)", st)
	}
	if hidden, ok := p.last("a"); !ok || !hidden {
		t.Error("presentation should be requested hidden")
	}

	changed, err = c.SetHidden(context.Background(), "a", true)
	if err != nil || changed {
		t.Errorf("repeated SetHidden = (%v, %v), want (false, nil)", changed, err)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestSetHiddenUnknownItem(t *testing.T) {
	c, _ := newTestCoordinator("a")
	_, err := c.SetHidden(context.Background(), "missing", true)
	if !errors.Is(err, errors.ErrCodeUnknownItem) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeUnknownItem)
	}
}

func TestAnimatedHideFinished(t *testing.T) {
	c, p := newTestCoordinator("item-4")
	var done completions

	tx := animate(c, done.record, func(ctx context.Context) {
		changed, err := c.SetHidden(ctx, "item-4", true)
		if err != nil || changed {
			t.Errorf("SetHidden in transaction = (%v, %v), want (false, nil)", changed, err)
		}
	})

	tiers, _ := c.Tiers("item-4")
	if tiers.Layout {
		t.Error("layout should stay visible until the driver reports")
	}
	if !tiers.Logical {
		t.Error("logical value should follow the request")
	}
	if hidden, _ := p.last("item-4"); hidden {
		t.Error("presentation should be requested visible at start")
	}
	st, _ := c.State("item-4")
	tr, ok := st.(Transitioning)
	if !ok || tr.From || !tr.To || tr.Token == "" {
		t.Fatalf("state = %v, want transitioning(visible->hidden)", st)
	}

	if !c.Report(tx, true) {
		t.Error("Report should change layout")
	}
	if c.Pending() != 1 || len(done.calls) != 0 {
		t.Fatal("completion must be queued, not run inside Report")
	}
	if n := c.Step(); n != 1 {
		t.Errorf("Step() = %d, want 1", n)
	}
	if len(done.calls) != 1 || !done.calls[0] {
		t.Errorf("completions = %v, want [true]", done.calls)
	}
	if tiers, _ := c.Tiers("item-4"); tiers != uniform(true) {
		t.Errorf("tiers = %+v, want all hidden", tiers)
	}
	if hidden, _ := p.last("item-4"); !hidden {
		t.Error("presentation should end hidden")
	}

	// Late duplicate reports are ignored.
	if c.Report(tx, false) {
		t.Error("second Report should be ignored")
	}
	if c.Step() != 0 {
		t.Error("second Report must not queue a completion")
	}
}

func TestAnimatedHideInterrupted(t *testing.T) {
	c, _ := newTestCoordinator("a")
	var done completions

	tx := animate(c, done.record, func(ctx context.Context) {
		c.SetHidden(ctx, "a", true)
	})
	c.Report(tx, false)
	c.Step()

	if len(done.calls) != 1 || done.calls[0] {
		t.Errorf("completions = %v, want [false]", done.calls)
	}
	if tiers, _ := c.Tiers("a"); tiers != uniform(true) {
		t.Errorf("tiers = %+v, want last requested value", tiers)
	}
}

func TestSupersede(t *testing.T) {
	c, _ := newTestCoordinator("item-2")
	var order []string

	txA := animate(c, func(f bool) { order = append(order, fmt.Sprintf("A:%v", f)) }, func(ctx context.Context) {
		c.SetHidden(ctx, "item-2", true)
	})
	txB := animate(c, func(f bool) { order = append(order, fmt.Sprintf("B:%v", f)) }, func(ctx context.Context) {
		c.SetHidden(ctx, "item-2", false)
	})

	if !txA.Done() {
		t.Error("superseded transaction should be complete")
	}
	st, _ := c.State("item-2")
	if tr, ok := st.(Transitioning); !ok || tr.To {
		t.Fatalf("state = %v, want transitioning to visible", st)
	}

	c.Step()
	if len(order) != 1 || order[0] != "A:false" {
		t.Fatalf("after supersede order = %v, want [A:false]", order)
	}

	// A's driver still reports; it must not fire again.
	c.Report(txA, true)
	c.Report(txB, true)
	c.Step()

	want := []string{"A:false", "B:true"}
	if len(order) != len(want) || order[1] != want[1] {
		t.Errorf("order = %v, want %v", order, want)
	}
	if tiers, _ := c.Tiers("item-2"); tiers.Layout {
		t.Error("final layout should be visible")
	}
}

func TestSupersedeStartsFromPresentation(t *testing.T) {
	c, _ := newTestCoordinator("a")
	c.SetHidden(context.Background(), "a", true)

	animate(c, nil, func(ctx context.Context) { c.SetHidden(ctx, "a", false) })
	animate(c, nil, func(ctx context.Context) { c.SetHidden(ctx, "a", true) })

	st, _ := c.State("a")
	tr, ok := st.(Transitioning)
	if !ok {
		t.Fatalf("state = %v, want transitioning", st)
	}
	// The first animation made the item visible on screen.
	if tr.From {
		t.Errorf("From = %v, want visible (current presentation)", tr.From)
	}
}

func TestSameTargetIsNoop(t *testing.T) {
	c, _ := newTestCoordinator("a")
	var done completions

	tx := animate(c, done.record, func(ctx context.Context) {
		c.SetHidden(ctx, "a", true)
		c.SetHidden(ctx, "a", true)
	})
	if tx.Tokens() != 1 {
		t.Errorf("Tokens() = %d, want 1", tx.Tokens())
	}

	tx2 := animate(c, done.record, func(ctx context.Context) {
		c.SetHidden(ctx, "a", true)
	})
	if tx2.Tokens() != 0 {
		t.Errorf("same-target request created %d tokens", tx2.Tokens())
	}
	if tx.Done() {
		t.Error("same-target request must not cancel the running token")
	}
}

func TestTransactionWithoutTokens(t *testing.T) {
	c, _ := newTestCoordinator("a")
	var done completions

	tx := animate(c, done.record, func(ctx context.Context) {})
	if tx.Done() {
		t.Fatal("an empty transaction completes when the driver reports")
	}
	c.Report(tx, true)
	c.Step()
	if len(done.calls) != 1 || !done.calls[0] {
		t.Errorf("completions = %v, want [true]", done.calls)
	}
}

func TestTransactionAllTokensMustFinish(t *testing.T) {
	c, _ := newTestCoordinator("a", "b")
	var done completions

	tx := animate(c, done.record, func(ctx context.Context) {
		c.SetHidden(ctx, "a", true)
		c.SetHidden(ctx, "b", true)
	})
	// b is changed outside the animation, cancelling its token.
	c.SetHidden(context.Background(), "b", false)
	if tx.Done() {
		t.Fatal("transaction still has an unresolved token")
	}
	c.Report(tx, true)
	c.Step()

	if len(done.calls) != 1 || done.calls[0] {
		t.Errorf("completions = %v, want [false]", done.calls)
	}
	if tiers, _ := c.Tiers("a"); !tiers.Layout {
		t.Error("a should be hidden after the report")
	}
	if tiers, _ := c.Tiers("b"); tiers != uniform(false) {
		t.Errorf("b tiers = %+v, want visible", tiers)
	}
}

func TestImmediateCancelsToken(t *testing.T) {
	c, _ := newTestCoordinator("a")
	var done completions

	animate(c, done.record, func(ctx context.Context) { c.SetHidden(ctx, "a", true) })
	changed, _ := c.SetHidden(context.Background(), "a", true)
	if !changed {
		t.Error("immediate hide should collapse the layout")
	}
	if len(done.calls) != 0 {
		t.Fatal("completion ran inside SetHidden")
	}
	c.Step()
	if len(done.calls) != 1 || done.calls[0] {
		t.Errorf("completions = %v, want [false]", done.calls)
	}
}

func TestDetachCancels(t *testing.T) {
	c, _ := newTestCoordinator("a")
	var done completions

	animate(c, done.record, func(ctx context.Context) { c.SetHidden(ctx, "a", true) })
	tiers, ok := c.Detach("a")
	if !ok {
		t.Fatal("Detach should find the item")
	}
	if !tiers.Layout || !tiers.Logical {
		t.Errorf("tiers = %+v, want layout equal to the last request", tiers)
	}
	if c.Tracked("a") {
		t.Error("item still tracked after Detach")
	}
	c.Step()
	if len(done.calls) != 1 || done.calls[0] {
		t.Errorf("completions = %v, want [false]", done.calls)
	}
}

func TestDetachCompletesSharedTransactionAtOnce(t *testing.T) {
	c, p := newTestCoordinator("a", "b")
	var done completions

	tx := animate(c, done.record, func(ctx context.Context) {
		c.SetHidden(ctx, "a", true)
		c.SetHidden(ctx, "b", true)
	})
	c.Detach("b")
	c.Step()
	if len(done.calls) != 1 || done.calls[0] {
		t.Fatalf("completions = %v, want [false] right after Detach", done.calls)
	}
	if !tx.Done() {
		t.Error("transaction should be done")
	}

	if !c.Report(tx, true) {
		t.Error("Report should still settle the remaining item")
	}
	if tiers, _ := c.Tiers("a"); !tiers.Layout {
		t.Errorf("a tiers = %+v, want hidden after the driver reports", tiers)
	}
	if hidden, _ := p.last("a"); !hidden {
		t.Error("a should be presented hidden")
	}
	c.Step()
	if len(done.calls) != 1 {
		t.Errorf("completion fired %d times", len(done.calls))
	}
	if c.Report(tx, true) {
		t.Error("second Report should be ignored")
	}
}

func TestObserverSeesTransitions(t *testing.T) {
	var seen []string
	c := New(&recordingPresenter{}, WithObserver(func(id constraint.ElementID, from, to State) {
		seen = append(seen, from.String()+" -> "+to.String())
	}))
	c.Track("a", false)

	tx := animate(c, nil, func(ctx context.Context) { c.SetHidden(ctx, "a", true) })
	c.Report(tx, true)

	want := []string{
		"settled(visible) -> transitioning(visible->hidden)",
		"transitioning(visible->hidden) -> settled(hidden)",
	}
	if len(seen) != len(want) {
		t.Fatalf("transitions = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("transition[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestStepDeliversNestedCompletions(t *testing.T) {
	c, _ := newTestCoordinator("a", "b")
	var order []string

	var inner *Transaction
	outer := animate(c, func(bool) {
		order = append(order, "outer")
		inner = animate(c, func(bool) { order = append(order, "inner") }, func(ctx context.Context) {})
		c.Report(inner, true)
	}, func(ctx context.Context) {})
	c.Report(outer, true)

	if n := c.Step(); n != 2 {
		t.Errorf("Step() = %d, want 2", n)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v", order)
	}
}

func TestTransactionFrom(t *testing.T) {
	if _, ok := TransactionFrom(context.Background()); ok {
		t.Error("background context carries no transaction")
	}
	c := New(&recordingPresenter{})
	tx := c.Begin(nil)
	got, ok := TransactionFrom(WithTransaction(context.Background(), tx))
	if !ok || got != tx {
		t.Error("TransactionFrom should return the stored transaction")
	}
	if tx.ID() == "" {
		t.Error("transaction should have an identifier")
	}
}
