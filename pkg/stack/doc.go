// Package stack implements a one-dimensional stack layout container that
// expresses its layout as an identified constraint graph.
//
// # Overview
//
// A [Container] arranges an ordered list of externally owned elements along
// an [Axis]. Its [Config] selects the transverse [Alignment], the
// [Distribution] of space along the axis, and the spacing between items.
// Instead of computing frames, every change runs a synthesis pass:
//
//  1. [Synthesize] turns the configuration and the items into constraints
//     and auxiliary spacers (see [Registry]).
//  2. The reconcile package installs the difference into the host's
//     constraint store, leaving caller-authored constraints alone.
//  3. The host's solver turns constraints into geometry.
//
// # Visibility
//
// Hiding an item outside an animation takes effect immediately. Inside
// [Container.Animate] the change is deferred: the item keeps its space until
// the host's animation driver reports completion, and the animation's
// completion callback runs exactly once, with finished=false when the change
// was superseded, interrupted or the item was removed. See the visibility
// package for the state machine.
//
// # Host
//
// Everything outside constraint generation is reached through [Host]: child
// management, the constraint store, presentation visibility, intrinsic sizes
// and the animation driver. The memhost package provides an in-memory Host.
//
// # Example
//
//	c := stack.New("stack", host)
//	_ = c.SetConfiguration(stack.Config{Axis: stack.Vertical, Spacing: 8})
//	_ = c.AddItem("title")
//	_ = c.AddItem("body")
//
//	_ = c.Animate(ctx, stack.AnimationOptions{Duration: time.Second},
//	    func(ctx context.Context) error { return c.SetHidden(ctx, 1, true) },
//	    func(finished bool) { log.Info("hidden", "finished", finished) })
package stack
