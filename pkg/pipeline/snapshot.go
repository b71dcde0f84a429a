package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/stackview/pkg/constraint"
	"github.com/matzehuels/stackview/pkg/stack"
)

// Snapshot is the exported state of a synthesized container.
type Snapshot struct {
	Container   constraint.ElementID    `json:"container"`
	Config      ConfigView              `json:"config"`
	Items       []ItemView              `json:"items"`
	Spacers     []SpacerView            `json:"spacers,omitempty"`
	Constraints []constraint.Constraint `json:"constraints"`
}

// ConfigView is the readable form of stack.Config.
type ConfigView struct {
	Axis         string  `json:"axis"`
	Alignment    string  `json:"alignment"`
	Distribution string  `json:"distribution"`
	Spacing      float64 `json:"spacing"`
}

// ItemView is the readable form of stack.ItemState.
type ItemView struct {
	ID           constraint.ElementID `json:"id"`
	Hidden       bool                 `json:"hidden"`
	Presentation bool                 `json:"presentation_hidden"`
	Logical      bool                 `json:"logical_hidden"`
	State        string               `json:"state"`
	Size         constraint.Size      `json:"size"`
	HasBaseline  bool                 `json:"baseline,omitempty"`
}

// SpacerView is the readable form of stack.Spacer.
type SpacerView struct {
	ID     constraint.ElementID `json:"id"`
	Role   string               `json:"role"`
	Before constraint.ElementID `json:"before"`
	After  constraint.ElementID `json:"after"`
}

// Capture snapshots c.
func Capture(c *stack.Container) *Snapshot {
	cfg := c.Configuration()
	snap := &Snapshot{
		Container: c.ID(),
		Config: ConfigView{
			Axis:         cfg.Axis.String(),
			Alignment:    cfg.Alignment.String(),
			Distribution: cfg.Distribution.String(),
			Spacing:      cfg.Spacing,
		},
		Constraints: c.CurrentConstraints(),
	}
	for _, it := range c.Items() {
		v := ItemView{
			ID:           it.ID,
			Hidden:       it.Hidden,
			Presentation: it.Tiers.Presentation,
			Logical:      it.Tiers.Logical,
			Size:         it.Size,
			HasBaseline:  it.HasBaseline,
		}
		if it.State != nil {
			v.State = it.State.String()
		}
		snap.Items = append(snap.Items, v)
	}
	for _, s := range c.Spacers() {
		snap.Spacers = append(snap.Spacers, SpacerView{ID: s.ID, Role: s.Role.String(), Before: s.Before, After: s.After})
	}
	return snap
}

// HiddenItems lists the layout-hidden items.
func (s *Snapshot) HiddenItems() []constraint.ElementID {
	var out []constraint.ElementID
	for _, it := range s.Items {
		if it.Hidden {
			out = append(out, it.ID)
		}
	}
	return out
}

// MarshalSnapshot encodes s as indented JSON.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// UnmarshalSnapshot decodes a snapshot written by MarshalSnapshot.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
