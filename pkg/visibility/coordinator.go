package visibility

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/errors"
)

// Presenter receives presentation visibility requests.
type Presenter interface {
	RequestPresentationVisibility(id constraint.ElementID, hidden bool)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers a function called on every state change.
func WithObserver(fn func(id constraint.ElementID, from, to State)) Option {
	return func(c *Coordinator) { c.observe = fn }
}

type record struct {
	tiers Tiers
	state State
	token *Token
}

type completion struct {
	fn       func(bool)
	finished bool
}

// Coordinator runs the visibility state machine of a set of items.
// It is not safe for concurrent use; all calls happen on the goroutine that
// owns the stack.
type Coordinator struct {
	presenter Presenter
	items     map[constraint.ElementID]*record
	queue     []completion

	logger  *log.Logger
	observe func(id constraint.ElementID, from, to State)
}

// New creates a coordinator that sends presentation requests to p.
func New(p Presenter, opts ...Option) *Coordinator {
	c := &Coordinator{
		presenter: p,
		items:     make(map[constraint.ElementID]*record),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =============================================================================
// Items
// =============================================================================

// Track starts managing id, settled at hidden.
func (c *Coordinator) Track(id constraint.ElementID, hidden bool) {
	if _, ok := c.items[id]; ok {
		return
	}
	c.items[id] = &record{tiers: uniform(hidden), state: Settled{Hidden: hidden}}
	c.presenter.RequestPresentationVisibility(id, hidden)
}

// Tracked reports whether id is managed.
func (c *Coordinator) Tracked(id constraint.ElementID) bool {
	_, ok := c.items[id]
	return ok
}

// Tiers returns the visibility values of id.
func (c *Coordinator) Tiers(id constraint.ElementID) (Tiers, bool) {
	r, ok := c.items[id]
	if !ok {
		return Tiers{}, false
	}
	return r.tiers, true
}

// State returns the state of id.
func (c *Coordinator) State(id constraint.ElementID) (State, bool) {
	r, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return r.state, true
}

// Detach stops managing id. An in-flight token is cancelled: the item ends
// at the last requested value and the completion of the token's transaction
// is queued with finished=false at once, even while other items of the
// transaction are still animating. Those settle when the driver reports.
// Callers deliver the completion by calling Step right away.
// Detach returns the item's final tiers.
func (c *Coordinator) Detach(id constraint.ElementID) (Tiers, bool) {
	r, ok := c.items[id]
	if !ok {
		return Tiers{}, false
	}
	if tok := r.token; tok != nil {
		c.settle(id, r, tok.To)
		c.resolve(tok, false)
		c.abort(tok.tx)
	}
	delete(c.items, id)
	c.logger.Debug("item detached", "item", id, "hidden", r.tiers.Layout)
	return r.tiers, true
}

// =============================================================================
// Transactions
// =============================================================================

// Begin opens a transaction. completion, if not nil, runs once from Step
// after the transaction completes.
func (c *Coordinator) Begin(completion func(finished bool)) *Transaction {
	return &Transaction{
		id:         uuid.NewString(),
		completion: completion,
		finished:   true,
		open:       true,
	}
}

// Commit closes the body of tx. No more tokens can join it.
func (c *Coordinator) Commit(tx *Transaction) {
	if !tx.open {
		return
	}
	tx.open = false
	c.maybeComplete(tx)
}

// Report applies the driver's outcome to tx. Every unresolved token settles
// at its target value, also when a detach already completed tx. It reports
// whether any layout value changed. Only the first report counts.
func (c *Coordinator) Report(tx *Transaction, finished bool) bool {
	if tx.reported {
		return false
	}
	tx.open = false
	tx.reported = true

	changed := false
	for _, tok := range tx.tokens {
		if tok.resolved {
			continue
		}
		r := c.items[tok.Item]
		if r.tiers.Layout != tok.To {
			changed = true
		}
		c.settle(tok.Item, r, tok.To)
		c.resolve(tok, finished)
	}
	if !finished {
		tx.finished = false
	}
	c.maybeComplete(tx)
	c.logger.Debug("animation reported", "transaction", tx.id, "finished", finished, "tokens", len(tx.tokens))
	return changed
}

// =============================================================================
// Visibility changes
// =============================================================================

// SetHidden requests hidden for id. A transaction on ctx makes the change
// animated; otherwise it is applied at once and any in-flight token is
// cancelled. It reports whether the layout value changed, in which case the
// caller re-synthesizes.
func (c *Coordinator) SetHidden(ctx context.Context, id constraint.ElementID, hidden bool) (bool, error) {
	r, ok := c.items[id]
	if !ok {
		return false, errors.New(errors.ErrCodeUnknownItem, "item %q is not managed", id)
	}

	if tx, ok := TransactionFrom(ctx); ok && tx.open {
		c.animate(tx, id, r, hidden)
		return false, nil
	}

	if _, settled := r.state.(Settled); settled && r.tiers == uniform(hidden) {
		return false, nil
	}
	prev := r.tiers.Layout
	if tok := r.token; tok != nil {
		r.token = nil
		c.resolve(tok, false)
	}
	r.tiers = uniform(hidden)
	c.transition(id, r, Settled{Hidden: hidden})
	c.presenter.RequestPresentationVisibility(id, hidden)
	return prev != hidden, nil
}

func (c *Coordinator) animate(tx *Transaction, id constraint.ElementID, r *record, hidden bool) {
	if r.token != nil && r.token.To == hidden {
		return
	}
	if r.token == nil && r.tiers == uniform(hidden) {
		return
	}

	from := r.tiers.Presentation
	if old := r.token; old != nil {
		r.token = nil
		c.resolve(old, false)
	}

	tok := newToken(id, from, hidden, tx)
	tx.tokens = append(tx.tokens, tok)
	tx.pending++

	r.token = tok
	r.tiers.Logical = hidden
	r.tiers.Presentation = false
	c.transition(id, r, Transitioning{From: from, To: hidden, Token: tok.ID})
	c.presenter.RequestPresentationVisibility(id, false)
}

// settle ends the transition of r at hidden.
func (c *Coordinator) settle(id constraint.ElementID, r *record, hidden bool) {
	r.token = nil
	r.tiers.Layout = hidden
	r.tiers.Presentation = hidden
	c.transition(id, r, Settled{Hidden: hidden})
	c.presenter.RequestPresentationVisibility(id, hidden)
}

func (c *Coordinator) transition(id constraint.ElementID, r *record, next State) {
	prev := r.state
	r.state = next
	c.logger.Debug("visibility transition", "item", id, "from", prev, "to", next)
	if c.observe != nil {
		c.observe(id, prev, next)
	}
}

// resolve marks tok resolved and completes its transaction when possible.
func (c *Coordinator) resolve(tok *Token, finished bool) {
	if tok.resolved {
		return
	}
	tok.resolved = true
	tx := tok.tx
	tx.pending--
	if !finished {
		tx.finished = false
	}
	c.maybeComplete(tx)
}

// abort completes tx with finished=false without waiting for its
// remaining tokens.
func (c *Coordinator) abort(tx *Transaction) {
	if tx.done {
		return
	}
	tx.finished = false
	tx.done = true
	if tx.completion != nil {
		c.queue = append(c.queue, completion{fn: tx.completion, finished: false})
	}
}

func (c *Coordinator) maybeComplete(tx *Transaction) {
	if tx.done || tx.open || tx.pending > 0 {
		return
	}
	if len(tx.tokens) == 0 && !tx.reported {
		return
	}
	tx.done = true
	if tx.completion != nil {
		c.queue = append(c.queue, completion{fn: tx.completion, finished: tx.finished})
	}
}

// =============================================================================
// Delivery
// =============================================================================

// Pending returns the number of queued completions.
func (c *Coordinator) Pending() int {
	return len(c.queue)
}

// Step delivers queued completions in the order they were queued and
// returns how many ran. Completions queued by a running callback are
// delivered in the same call.
func (c *Coordinator) Step() int {
	n := 0
	for len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = c.queue[1:]
		next.fn(next.finished)
		n++
	}
	return n
}
