package stackfile

import (
	"time"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/errors"
	"github.com/matzehuels/stackview/pkg/stack"
)

// =============================================================================
// Document
// =============================================================================

// Document is a declarative stack description.
type Document struct {
	ID           string     `toml:"id" yaml:"id" json:"id" validate:"required,elementid"`
	Axis         string     `toml:"axis,omitempty" yaml:"axis,omitempty" json:"axis,omitempty" validate:"omitempty,axis"`
	Alignment    string     `toml:"alignment,omitempty" yaml:"alignment,omitempty" json:"alignment,omitempty" validate:"omitempty,alignment"`
	Distribution string     `toml:"distribution,omitempty" yaml:"distribution,omitempty" json:"distribution,omitempty" validate:"omitempty,distribution"`
	Spacing      float64    `toml:"spacing" yaml:"spacing" json:"spacing" validate:"gte=0"`
	Items        []ItemSpec `toml:"items" yaml:"items" json:"items" validate:"max=256,dive"`
	Steps        []Step     `toml:"steps,omitempty" yaml:"steps,omitempty" json:"steps,omitempty" validate:"dive"`
}

// ItemSpec describes one arranged item. Omitted sizes mean "no intrinsic
// size" along that dimension.
type ItemSpec struct {
	ID       string   `toml:"id" yaml:"id" json:"id" validate:"required,elementid"`
	Hidden   bool     `toml:"hidden,omitempty" yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Width    *float64 `toml:"width,omitempty" yaml:"width,omitempty" json:"width,omitempty" validate:"omitempty,gte=0"`
	Height   *float64 `toml:"height,omitempty" yaml:"height,omitempty" json:"height,omitempty" validate:"omitempty,gte=0"`
	Baseline bool     `toml:"baseline,omitempty" yaml:"baseline,omitempty" json:"baseline,omitempty"`

	Hugging               *float64 `toml:"hugging,omitempty" yaml:"hugging,omitempty" json:"hugging,omitempty" validate:"omitempty,gte=1,lte=1000"`
	CompressionResistance *float64 `toml:"compression_resistance,omitempty" yaml:"compression_resistance,omitempty" json:"compression_resistance,omitempty" validate:"omitempty,gte=1,lte=1000"`
}

// Size returns the intrinsic size of the item.
func (it ItemSpec) Size() constraint.Size {
	s := constraint.Size{Width: -1, Height: -1}
	if it.Width != nil {
		s.Width = *it.Width
	}
	if it.Height != nil {
		s.Height = *it.Height
	}
	return s
}

// Options returns the insertion options of the item.
func (it ItemSpec) Options() []stack.ItemOption {
	opts := []stack.ItemOption{stack.WithHidden(it.Hidden)}
	if it.Hugging != nil {
		p := constraint.Priority(*it.Hugging)
		opts = append(opts, stack.WithHugging(p, p))
	}
	if it.CompressionResistance != nil {
		p := constraint.Priority(*it.CompressionResistance)
		opts = append(opts, stack.WithCompressionResistance(p, p))
	}
	return opts
}

// Config parses the document's configuration. Empty fields take the zero
// configuration's values.
func (d *Document) Config() (stack.Config, error) {
	var cfg stack.Config
	var ok bool
	if d.Axis != "" {
		if cfg.Axis, ok = stack.ParseAxis(d.Axis); !ok {
			return cfg, errors.New(errors.ErrCodeInvalidConfiguration, "unknown axis %q", d.Axis)
		}
	}
	if d.Alignment != "" {
		if cfg.Alignment, ok = stack.ParseAlignment(d.Alignment); !ok {
			return cfg, errors.New(errors.ErrCodeInvalidConfiguration, "unknown alignment %q", d.Alignment)
		}
	}
	if d.Distribution != "" {
		if cfg.Distribution, ok = stack.ParseDistribution(d.Distribution); !ok {
			return cfg, errors.New(errors.ErrCodeInvalidConfiguration, "unknown distribution %q", d.Distribution)
		}
	}
	cfg.Spacing = d.Spacing
	return cfg, cfg.Validate()
}

// StackItems returns the synthesizer view of the items, using the sizes
// declared in the document.
func (d *Document) StackItems() []stack.Item {
	items := make([]stack.Item, len(d.Items))
	for i, spec := range d.Items {
		it := stack.Item{ID: constraint.ElementID(spec.ID)}
		for _, opt := range spec.Options() {
			opt(&it)
		}
		it.Size = spec.Size()
		it.HasBaseline = spec.Baseline
		items[i] = it
	}
	return items
}

// =============================================================================
// Steps
// =============================================================================

// Step actions.
const (
	ActionHide      = "hide"
	ActionShow      = "show"
	ActionAnimate   = "animate"
	ActionAdvance   = "advance"
	ActionInterrupt = "interrupt"
	ActionRemove    = "remove"
	ActionStep      = "step"
	ActionConfigure = "configure"
)

// Step is one scripted action run by the simulator.
//
//   - hide, show: change Items immediately
//   - animate: hide Hide and show Show inside one animation of Duration
//     after Delay
//   - advance: move the animation clock by Duration
//   - interrupt: report every running animation as not finished
//   - remove: remove Items
//   - step: deliver queued completions
//   - configure: change the configuration fields that are set
type Step struct {
	Action   string   `toml:"action" yaml:"action" json:"action" validate:"required,oneof=hide show animate advance interrupt remove step configure"`
	Items    []string `toml:"items,omitempty" yaml:"items,omitempty" json:"items,omitempty" validate:"dive,elementid"`
	Hide     []string `toml:"hide,omitempty" yaml:"hide,omitempty" json:"hide,omitempty" validate:"dive,elementid"`
	Show     []string `toml:"show,omitempty" yaml:"show,omitempty" json:"show,omitempty" validate:"dive,elementid"`
	Duration Duration `toml:"duration,omitempty" yaml:"duration,omitempty" json:"duration,omitempty" validate:"gte=0"`
	Delay    Duration `toml:"delay,omitempty" yaml:"delay,omitempty" json:"delay,omitempty" validate:"gte=0"`

	Axis         string   `toml:"axis,omitempty" yaml:"axis,omitempty" json:"axis,omitempty" validate:"omitempty,axis"`
	Alignment    string   `toml:"alignment,omitempty" yaml:"alignment,omitempty" json:"alignment,omitempty" validate:"omitempty,alignment"`
	Distribution string   `toml:"distribution,omitempty" yaml:"distribution,omitempty" json:"distribution,omitempty" validate:"omitempty,distribution"`
	Spacing      *float64 `toml:"spacing,omitempty" yaml:"spacing,omitempty" json:"spacing,omitempty" validate:"omitempty,gte=0"`
}

// Apply returns cfg with the configure fields of s applied.
func (s Step) Apply(cfg stack.Config) stack.Config {
	if a, ok := stack.ParseAxis(s.Axis); ok {
		cfg.Axis = a
	}
	if a, ok := stack.ParseAlignment(s.Alignment); ok {
		cfg.Alignment = a
	}
	if d, ok := stack.ParseDistribution(s.Distribution); ok {
		cfg.Distribution = d
	}
	if s.Spacing != nil {
		cfg.Spacing = *s.Spacing
	}
	return cfg
}

// Duration is a time.Duration written as a string such as "250ms".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
