package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/memhost"
	"github.com/matzehuels/stackview/pkg/stack"
	"github.com/matzehuels/stackview/pkg/stackfile"
)

// Completion is a delivered animation completion.
type Completion struct {
	// Step is the index of the animate step that registered it.
	Step     int  `json:"step"`
	Finished bool `json:"finished"`
	// DeliveredAt is the index of the step during which it ran.
	DeliveredAt int `json:"delivered_at"`
}

// Simulation is the outcome of replaying a document's steps.
type Simulation struct {
	Events      []memhost.Event `json:"events"`
	Completions []Completion    `json:"completions"`
	Final       *Snapshot       `json:"final"`
}

// Simulate builds the document's container and runs its steps in order
// against the in-memory host. The first failing step aborts the run.
func Simulate(ctx context.Context, doc *stackfile.Document, logger *log.Logger) (*Simulation, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c, host, err := Build(doc, logger)
	if err != nil {
		return nil, err
	}

	sim := &Simulation{}
	r := &replay{ctx: ctx, c: c, host: host, sim: sim, logger: logger}
	for i, s := range doc.Steps {
		r.current = i
		if err := r.run(i, s); err != nil {
			return nil, fmt.Errorf("steps[%d] (%s): %w", i, s.Action, err)
		}
	}

	sim.Events = host.Events()
	sim.Final = Capture(c)
	return sim, nil
}

type replay struct {
	ctx     context.Context
	c       *stack.Container
	host    *memhost.Host
	sim     *Simulation
	logger  *log.Logger
	current int
}

func (r *replay) run(i int, s stackfile.Step) error {
	r.logger.Debug("step", "index", i, "action", s.Action, "clock", r.host.Now())

	switch s.Action {
	case stackfile.ActionHide, stackfile.ActionShow:
		hidden := s.Action == stackfile.ActionHide
		for _, id := range s.Items {
			if err := r.c.SetHidden(r.ctx, r.c.IndexOf(constraint.ElementID(id)), hidden); err != nil {
				return err
			}
		}

	case stackfile.ActionAnimate:
		opts := stack.AnimationOptions{Duration: s.Duration.Std(), Delay: s.Delay.Std()}
		return r.c.Animate(r.ctx, opts, func(ctx context.Context) error {
			for _, id := range s.Hide {
				if err := r.c.SetHidden(ctx, r.c.IndexOf(constraint.ElementID(id)), true); err != nil {
					return err
				}
			}
			for _, id := range s.Show {
				if err := r.c.SetHidden(ctx, r.c.IndexOf(constraint.ElementID(id)), false); err != nil {
					return err
				}
			}
			return nil
		}, func(finished bool) {
			r.sim.Completions = append(r.sim.Completions, Completion{Step: i, Finished: finished, DeliveredAt: r.current})
		})

	case stackfile.ActionAdvance:
		r.host.Advance(s.Duration.Std())

	case stackfile.ActionInterrupt:
		r.host.CompleteAll(false)

	case stackfile.ActionRemove:
		for _, id := range s.Items {
			if err := r.c.RemoveItem(r.c.IndexOf(constraint.ElementID(id))); err != nil {
				return err
			}
		}

	case stackfile.ActionStep:
		r.c.Step()

	case stackfile.ActionConfigure:
		return r.c.SetConfiguration(s.Apply(r.c.Configuration()))

	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}
