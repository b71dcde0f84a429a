package stack

import (
	"time"

	"github.com/matzehuels/stackview/pkg/constraint"
)

// DriverHandle identifies one animation started through Host.BeginAnimation.
type DriverHandle uint64

// AnimationOptions parameterizes an animation run by the host's driver.
type AnimationOptions struct {
	Duration time.Duration
	Delay    time.Duration
}

// Host is the view tree the container arranges its items in.
//
// Host calls happen on the caller's goroutine. BeginAnimation must not call
// onComplete before it returns; the driver reports exactly once per handle,
// with finished=false when the animation was interrupted.
type Host interface {
	AddChild(id constraint.ElementID)
	RemoveChild(id constraint.ElementID)

	InstallConstraint(c constraint.Constraint) error
	RemoveConstraint(id string) error

	RequestPresentationVisibility(id constraint.ElementID, hidden bool)
	IntrinsicSize(id constraint.ElementID) constraint.Size
	HasBaseline(id constraint.ElementID) bool

	BeginAnimation(opts AnimationOptions, onComplete func(h DriverHandle, finished bool)) DriverHandle
}
