package stack

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/observability"
	"github.com/matzehuels/stackview/pkg/reconcile"
	"github.com/matzehuels/stackview/pkg/visibility"
)

// ItemState is a snapshot of one arranged item. Item.Hidden holds the layout
// value; Tiers holds all three visibility values.
type ItemState struct {
	Item
	Tiers visibility.Tiers
	State visibility.State
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the container's logger. Synthesis passes and visibility
// transitions are logged at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithConfig sets the initial configuration. An invalid configuration makes
// New fail.
func WithConfig(cfg Config) Option {
	return func(c *Container) { c.cfg = cfg }
}

// Container arranges items in a Host.
//
// A Container is not safe for concurrent use: all calls, including the
// host's animation callbacks, must happen on one goroutine.
type Container struct {
	id   constraint.ElementID
	host Host
	cfg  Config

	items    []Item
	registry *Registry
	coord    *visibility.Coordinator
	rec      *reconcile.Reconciler
	current  []constraint.Constraint

	logger *log.Logger
}

// New creates an empty container identified by id.
func New(id constraint.ElementID, host Host, opts ...Option) (*Container, error) {
	if err := errors.ValidateElementID(string(id)); err != nil {
		return nil, err
	}
	c := &Container{
		id:     id,
		host:   host,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	c.registry = NewRegistry(WithSpacerHooks(
		func(s Spacer) { host.AddChild(s.ID) },
		func(s Spacer) { host.RemoveChild(s.ID) },
	))
	c.coord = visibility.New(host,
		visibility.WithLogger(c.logger),
		visibility.WithObserver(func(item constraint.ElementID, from, to visibility.State) {
			observability.Stack().OnTransition(context.Background(), string(item), stateName(from), to.String())
		}),
	)
	c.rec = reconcile.New(host)
	return c, nil
}

func stateName(s visibility.State) string {
	if s == nil {
		return ""
	}
	return s.String()
}

// ID returns the container's element identifier.
func (c *Container) ID() constraint.ElementID { return c.id }

// =============================================================================
// Configuration
// =============================================================================

// Configuration returns the configuration in effect.
func (c *Container) Configuration() Config { return c.cfg }

// SetConfiguration validates and applies cfg. On error the previous
// configuration stays in effect.
func (c *Container) SetConfiguration(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg == c.cfg {
		return nil
	}
	prev := c.cfg
	c.cfg = cfg
	if err := c.update(context.Background()); err != nil {
		c.cfg = prev
		return err
	}
	return nil
}

// =============================================================================
// Items
// =============================================================================

// Len returns the number of arranged items.
func (c *Container) Len() int { return len(c.items) }

// AddItem appends an item.
func (c *Container) AddItem(id constraint.ElementID, opts ...ItemOption) error {
	return c.InsertItem(len(c.items), id, opts...)
}

// InsertItem inserts the element id at index. The element is measured
// through the host and added as a child.
func (c *Container) InsertItem(index int, id constraint.ElementID, opts ...ItemOption) error {
	if err := errors.ValidateElementID(string(id)); err != nil {
		return err
	}
	if constraint.IsGenerated(string(id)) || id == c.id {
		return errors.New(errors.ErrCodeInvalidIdentifier, "element id %q is reserved", id)
	}
	if c.indexOf(id) >= 0 {
		return errors.New(errors.ErrCodeDuplicateItem, "item %q is already arranged", id)
	}
	if index < 0 || index > len(c.items) {
		return errors.New(errors.ErrCodeUnknownItem, "insert index %d out of range [0, %d]", index, len(c.items))
	}

	it := newItem(id, opts)
	it.Size = c.host.IntrinsicSize(id)
	it.HasBaseline = c.host.HasBaseline(id)

	c.host.AddChild(id)
	c.coord.Track(id, it.Hidden)
	c.items = slices.Insert(c.items, index, it)

	if err := c.update(context.Background()); err != nil {
		c.items = slices.Delete(c.items, index, index+1)
		c.coord.Detach(id)
		c.host.RemoveChild(id)
		return err
	}
	c.logger.Debug("item inserted", "container", c.id, "item", id, "index", index)
	return nil
}

// RemoveItem removes the item at index. An in-flight visibility animation
// of the item is cancelled and its completion runs before RemoveItem
// returns.
func (c *Container) RemoveItem(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	it := c.items[index]
	c.items = slices.Delete(c.items, index, index+1)

	if err := c.update(context.Background()); err != nil {
		c.items = slices.Insert(c.items, index, it)
		return err
	}

	c.coord.Detach(it.ID)
	c.host.RemoveChild(it.ID)
	c.coord.Step()
	c.logger.Debug("item removed", "container", c.id, "item", it.ID, "index", index)
	return nil
}

// IndexOf returns the index of id, or -1.
func (c *Container) IndexOf(id constraint.ElementID) int { return c.indexOf(id) }

func (c *Container) indexOf(id constraint.ElementID) int {
	return slices.IndexFunc(c.items, func(it Item) bool { return it.ID == id })
}

func (c *Container) checkIndex(index int) error {
	if index < 0 || index >= len(c.items) {
		return errors.New(errors.ErrCodeUnknownItem, "item index %d out of range [0, %d)", index, len(c.items))
	}
	return nil
}

// Items returns snapshots of the arranged items in order.
func (c *Container) Items() []ItemState {
	out := make([]ItemState, len(c.items))
	for i, it := range c.items {
		tiers, _ := c.coord.Tiers(it.ID)
		state, _ := c.coord.State(it.ID)
		it.Hidden = tiers.Layout
		out[i] = ItemState{Item: it, Tiers: tiers, State: state}
	}
	return out
}

// Spacers returns the live spacers sorted by identifier.
func (c *Container) Spacers() []Spacer { return c.registry.Spacers() }

// CurrentConstraints returns the installed generation.
func (c *Container) CurrentConstraints() []constraint.Constraint {
	return slices.Clone(c.current)
}

// Invalidate re-measures every item and re-synthesizes.
func (c *Container) Invalidate() error {
	for i := range c.items {
		c.items[i].Size = c.host.IntrinsicSize(c.items[i].ID)
		c.items[i].HasBaseline = c.host.HasBaseline(c.items[i].ID)
	}
	return c.update(context.Background())
}

// =============================================================================
// Visibility
// =============================================================================

// SetHidden changes the visibility of the item at index. Called with the
// context passed to an Animate body, the change is animated; otherwise it
// applies immediately.
func (c *Container) SetHidden(ctx context.Context, index int, hidden bool) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	changed, err := c.coord.SetHidden(ctx, c.items[index].ID, hidden)
	if err != nil || !changed {
		return err
	}
	return c.update(ctx)
}

// Animate runs body inside an animation. Visibility changes body makes
// through its context are deferred until the host's driver reports.
// completion, if not nil, runs exactly once from a later Step; finished is
// false if any change was cancelled, superseded or interrupted. Hiding and
// then showing the same item within one body supersedes the first change,
// so finished is false even though the item ends where it started.
//
// If body fails, its changes settle at their requested values, completion
// is queued with finished=false and no animation is started.
func (c *Container) Animate(ctx context.Context, opts AnimationOptions, body func(ctx context.Context) error, completion func(finished bool)) error {
	tx := c.coord.Begin(completion)
	err := body(visibility.WithTransaction(ctx, tx))
	c.coord.Commit(tx)

	if err != nil {
		if c.coord.Report(tx, false) {
			if uerr := c.update(ctx); uerr != nil {
				c.logger.Error("synthesis failed", "container", c.id, "err", uerr)
			}
		}
		return err
	}

	handle := c.host.BeginAnimation(opts, func(h DriverHandle, finished bool) {
		c.logger.Debug("animation ended", "container", c.id, "handle", h, "finished", finished)
		if c.coord.Report(tx, finished) {
			if err := c.update(context.Background()); err != nil {
				c.logger.Error("synthesis failed", "container", c.id, "err", err)
			}
		}
		c.coord.Step()
	})
	c.logger.Debug("animation started", "container", c.id, "handle", handle,
		"duration", opts.Duration, "delay", opts.Delay, "changes", tx.Tokens())
	return nil
}

// Step delivers queued completions and returns how many ran. The container
// steps after every driver callback; hosts may also call it once per frame.
func (c *Container) Step() int { return c.coord.Step() }

// Detach tears the container down: in-flight animations are cancelled with
// their completions run immediately, and every item, spacer and generated
// constraint is removed from the host. The container is empty afterwards
// and can be reused.
func (c *Container) Detach() error {
	items := c.items
	c.items = nil
	if err := c.update(context.Background()); err != nil {
		c.items = items
		return err
	}
	for _, it := range items {
		c.coord.Detach(it.ID)
		c.host.RemoveChild(it.ID)
	}
	c.coord.Step()
	c.logger.Debug("container detached", "container", c.id, "items", len(items))
	return nil
}

// =============================================================================
// Synthesis
// =============================================================================

// update runs a synthesis pass and installs the result. On failure the host
// keeps the previous generation, the spacers created by the pass are
// removed again and no existing spacer is released.
func (c *Container) update(ctx context.Context) error {
	start := time.Now()
	items := make([]Item, len(c.items))
	for i, it := range c.items {
		tiers, _ := c.coord.Tiers(it.ID)
		it.Hidden = tiers.Layout
		items[i] = it
	}

	c.registry.Begin()
	next := Synthesize(c.id, c.cfg, items, c.registry)
	observability.Stack().OnSynthesis(ctx, string(c.id), len(items), len(next), time.Since(start))

	diff, err := c.rec.Apply(next)
	observability.Stack().OnReconcile(ctx, string(c.id), len(diff.Added), len(diff.Removed), len(diff.Replaced), err)
	if err != nil {
		discarded := c.registry.Discard()
		c.logger.Error("reconcile failed", "container", c.id, "err", err, "discarded", len(discarded))
		return err
	}

	released := c.registry.ReleaseUnused()
	c.current = next
	c.logger.Debug("synthesized", "container", c.id, "items", len(items), "constraints", len(next),
		"diff", diff.String(), "spacers", c.registry.Len(), "released", len(released),
		"elapsed", time.Since(start))
	return nil
}
