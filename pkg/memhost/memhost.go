// Package memhost provides an in-memory stack.Host.
//
// Host keeps children, installed constraints and presentation visibility in
// maps, and drives animations manually: nothing completes until the test or
// tool calls [Host.Complete], [Host.CompleteAll] or [Host.Advance].
// Every call is appended to an event log.
package memhost

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/stack"
)

// =============================================================================
// Events
// =============================================================================

// EventKind classifies a host event.
type EventKind string

const (
	EventAddChild       EventKind = "add-child"
	EventRemoveChild    EventKind = "remove-child"
	EventInstall        EventKind = "install"
	EventRemove         EventKind = "remove"
	EventPresentation   EventKind = "presentation"
	EventBeginAnimation EventKind = "begin-animation"
	EventEndAnimation   EventKind = "end-animation"
)

// Event is one recorded host call.
type Event struct {
	At      time.Duration `json:"at"`
	Kind    EventKind     `json:"kind"`
	Subject string        `json:"subject"`
	Detail  string        `json:"detail,omitempty"`
}

func (e Event) String() string {
	s := fmt.Sprintf("%7.2fs %-15s %s", e.At.Seconds(), e.Kind, e.Subject)
	if e.Detail != "" {
		s += " " + e.Detail
	}
	return s
}

// =============================================================================
// Host
// =============================================================================

type animation struct {
	handle     stack.DriverHandle
	opts       stack.AnimationOptions
	started    time.Duration
	onComplete func(stack.DriverHandle, bool)
}

func (a *animation) ends() time.Duration {
	return a.started + a.opts.Delay + a.opts.Duration
}

// Host is an in-memory view tree. The zero value is not usable; use New.
type Host struct {
	now time.Duration

	children     []constraint.ElementID
	constraints  map[string]constraint.Constraint
	order        []string
	presentation map[constraint.ElementID]bool
	sizes        map[constraint.ElementID]constraint.Size
	baselines    map[constraint.ElementID]bool

	animations []*animation
	nextHandle stack.DriverHandle

	installHook func(constraint.Constraint) error
	events      []Event
}

// Option configures a Host.
type Option func(*Host)

// WithIntrinsicSize reports size as the intrinsic size of id.
func WithIntrinsicSize(id constraint.ElementID, size constraint.Size) Option {
	return func(h *Host) { h.sizes[id] = size }
}

// WithBaseline marks id as having a measurable baseline.
func WithBaseline(id constraint.ElementID) Option {
	return func(h *Host) { h.baselines[id] = true }
}

// WithInstallHook runs fn before every InstallConstraint; a non-nil error
// fails the call.
func WithInstallHook(fn func(constraint.Constraint) error) Option {
	return func(h *Host) { h.installHook = fn }
}

// New creates an empty host at time zero.
func New(opts ...Option) *Host {
	h := &Host{
		constraints:  make(map[string]constraint.Constraint),
		presentation: make(map[constraint.ElementID]bool),
		sizes:        make(map[constraint.ElementID]constraint.Size),
		baselines:    make(map[constraint.ElementID]bool),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) record(kind EventKind, subject, detail string) {
	h.events = append(h.events, Event{At: h.now, Kind: kind, Subject: subject, Detail: detail})
}

// AddChild implements stack.Host.
func (h *Host) AddChild(id constraint.ElementID) {
	if slices.Contains(h.children, id) {
		return
	}
	h.children = append(h.children, id)
	h.record(EventAddChild, string(id), "")
}

// RemoveChild implements stack.Host.
func (h *Host) RemoveChild(id constraint.ElementID) {
	i := slices.Index(h.children, id)
	if i < 0 {
		return
	}
	h.children = slices.Delete(h.children, i, i+1)
	h.record(EventRemoveChild, string(id), "")
}

// InstallConstraint implements stack.Host. Installing an identifier twice
// is an error.
func (h *Host) InstallConstraint(c constraint.Constraint) error {
	if h.installHook != nil {
		if err := h.installHook(c); err != nil {
			return err
		}
	}
	if _, ok := h.constraints[c.ID]; ok {
		return fmt.Errorf("constraint %s already installed", c.ID)
	}
	h.constraints[c.ID] = c
	h.order = append(h.order, c.ID)
	h.record(EventInstall, c.ID, c.String())
	return nil
}

// RemoveConstraint implements stack.Host.
func (h *Host) RemoveConstraint(id string) error {
	if _, ok := h.constraints[id]; !ok {
		return fmt.Errorf("constraint %s not installed", id)
	}
	delete(h.constraints, id)
	h.order = slices.DeleteFunc(h.order, func(s string) bool { return s == id })
	h.record(EventRemove, id, "")
	return nil
}

// RequestPresentationVisibility implements stack.Host.
func (h *Host) RequestPresentationVisibility(id constraint.ElementID, hidden bool) {
	h.presentation[id] = hidden
	detail := "visible"
	if hidden {
		detail = "hidden"
	}
	h.record(EventPresentation, string(id), detail)
}

// IntrinsicSize implements stack.Host. Unknown elements report no intrinsic
// size.
func (h *Host) IntrinsicSize(id constraint.ElementID) constraint.Size {
	if s, ok := h.sizes[id]; ok {
		return s
	}
	return constraint.Size{Width: -1, Height: -1}
}

// HasBaseline implements stack.Host.
func (h *Host) HasBaseline(id constraint.ElementID) bool {
	return h.baselines[id]
}

// SetIntrinsicSize changes the size reported for id.
func (h *Host) SetIntrinsicSize(id constraint.ElementID, size constraint.Size) {
	h.sizes[id] = size
}

// BeginAnimation implements stack.Host. The animation stays pending until
// it is completed or the clock passes its end.
func (h *Host) BeginAnimation(opts stack.AnimationOptions, onComplete func(stack.DriverHandle, bool)) stack.DriverHandle {
	h.nextHandle++
	a := &animation{handle: h.nextHandle, opts: opts, started: h.now, onComplete: onComplete}
	h.animations = append(h.animations, a)
	h.record(EventBeginAnimation, fmt.Sprintf("#%d", a.handle),
		fmt.Sprintf("duration=%s delay=%s", opts.Duration, opts.Delay))
	return a.handle
}

// =============================================================================
// Animation driver
// =============================================================================

// Now returns the simulated clock.
func (h *Host) Now() time.Duration { return h.now }

// PendingAnimations returns the handles of running animations in start
// order.
func (h *Host) PendingAnimations() []stack.DriverHandle {
	out := make([]stack.DriverHandle, len(h.animations))
	for i, a := range h.animations {
		out[i] = a.handle
	}
	return out
}

// Complete reports the end of animation handle. It returns false if the
// handle is not running.
func (h *Host) Complete(handle stack.DriverHandle, finished bool) bool {
	i := slices.IndexFunc(h.animations, func(a *animation) bool { return a.handle == handle })
	if i < 0 {
		return false
	}
	a := h.animations[i]
	h.animations = slices.Delete(h.animations, i, i+1)
	h.record(EventEndAnimation, fmt.Sprintf("#%d", a.handle), fmt.Sprintf("finished=%t", finished))
	if a.onComplete != nil {
		a.onComplete(a.handle, finished)
	}
	return true
}

// CompleteAll reports every running animation in start order and returns
// how many were reported.
func (h *Host) CompleteAll(finished bool) int {
	n := 0
	for len(h.animations) > 0 {
		h.Complete(h.animations[0].handle, finished)
		n++
	}
	return n
}

// Advance moves the clock forward by d, finishing every animation whose
// delay and duration have elapsed, in order of their end time.
func (h *Host) Advance(d time.Duration) int {
	target := h.now + d
	n := 0
	for {
		var next *animation
		for _, a := range h.animations {
			if a.ends() <= target && (next == nil || a.ends() < next.ends()) {
				next = a
			}
		}
		if next == nil {
			break
		}
		if next.ends() > h.now {
			h.now = next.ends()
		}
		h.Complete(next.handle, true)
		n++
	}
	h.now = target
	return n
}

// =============================================================================
// Inspection
// =============================================================================

// Children returns the child elements in insertion order.
func (h *Host) Children() []constraint.ElementID {
	return slices.Clone(h.children)
}

// HasChild reports whether id is a child.
func (h *Host) HasChild(id constraint.ElementID) bool {
	return slices.Contains(h.children, id)
}

// Constraints returns the installed constraints in installation order.
func (h *Host) Constraints() []constraint.Constraint {
	out := make([]constraint.Constraint, len(h.order))
	for i, id := range h.order {
		out[i] = h.constraints[id]
	}
	return out
}

// Constraint returns the installed constraint with identifier id.
func (h *Host) Constraint(id string) (constraint.Constraint, bool) {
	c, ok := h.constraints[id]
	return c, ok
}

// ConstraintsWithPrefix returns the installed constraints whose identifier
// starts with prefix, in installation order.
func (h *Host) ConstraintsWithPrefix(prefix string) []constraint.Constraint {
	var out []constraint.Constraint
	for _, id := range h.order {
		if strings.HasPrefix(id, prefix) {
			out = append(out, h.constraints[id])
		}
	}
	return out
}

// PresentationHidden returns the last presentation request for id.
func (h *Host) PresentationHidden(id constraint.ElementID) (hidden, ok bool) {
	hidden, ok = h.presentation[id]
	return hidden, ok
}

// Events returns the event log.
func (h *Host) Events() []Event {
	return slices.Clone(h.events)
}

// ResetEvents clears the event log.
func (h *Host) ResetEvents() {
	h.events = nil
}
