package stack

import "github.com/matzehuels/stackview/pkg/constraint"

// Default content priorities of an arranged item.
const (
	DefaultHugging               = constraint.DefaultLow
	DefaultCompressionResistance = constraint.DefaultHigh
)

// Priorities is a pair of content priorities, one per axis. They are kept
// for the host's solver and take no part in synthesis.
type Priorities struct {
	Horizontal constraint.Priority `json:"horizontal"`
	Vertical   constraint.Priority `json:"vertical"`
}

// Item is the synthesizer's view of one arranged element.
type Item struct {
	// ID is a non-owning handle of the externally owned element.
	ID constraint.ElementID

	// Hidden is the layout-hidden flag: hidden items take no space along the
	// stacking axis. During an animated transition it lags the caller's
	// logical value.
	Hidden bool

	// Size is the intrinsic content size reported by the host.
	Size constraint.Size

	// HasBaseline reports whether the element has a measurable baseline.
	HasBaseline bool

	// Hugging and CompressionResistance are the element's content
	// priorities, reported through Container.Items for the host's solver.
	Hugging               Priorities
	CompressionResistance Priorities
}

// ItemOption configures an item on insertion.
type ItemOption func(*Item)

// WithHidden inserts the item already hidden.
func WithHidden(hidden bool) ItemOption {
	return func(it *Item) { it.Hidden = hidden }
}

// WithHugging sets the content hugging priorities.
func WithHugging(horizontal, vertical constraint.Priority) ItemOption {
	return func(it *Item) { it.Hugging = Priorities{Horizontal: horizontal, Vertical: vertical} }
}

// WithCompressionResistance sets the compression resistance priorities.
func WithCompressionResistance(horizontal, vertical constraint.Priority) ItemOption {
	return func(it *Item) {
		it.CompressionResistance = Priorities{Horizontal: horizontal, Vertical: vertical}
	}
}

func newItem(id constraint.ElementID, opts []ItemOption) Item {
	it := Item{
		ID:                    id,
		Hugging:               Priorities{Horizontal: DefaultHugging, Vertical: DefaultHugging},
		CompressionResistance: Priorities{Horizontal: DefaultCompressionResistance, Vertical: DefaultCompressionResistance},
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// activeItems returns the items that are not layout-hidden, in order.
func activeItems(items []Item) []Item {
	active := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.Hidden {
			active = append(active, it)
		}
	}
	return active
}
