package visibility

import "fmt"

// State is the visibility state of one item: either [Settled] or
// [Transitioning].
type State interface {
	fmt.Stringer
	isState()
}

// Settled is the resting state.
type Settled struct {
	Hidden bool
}

// Transitioning is an animated change from From to To, owned by the token
// with identifier Token.
type Transitioning struct {
	From  bool
	To    bool
	Token string
}

func (Settled) isState()       {}
func (Transitioning) isState() {}

func (s Settled) String() string {
	return "settled(" + word(s.Hidden) + ")"
}

func (s Transitioning) String() string {
	return "transitioning(" + word(s.From) + "->" + word(s.To) + ")"
}

func word(hidden bool) string {
	if hidden {
		return "hidden"
	}
	return "visible"
}

// Tiers are the three visibility values of an item. Each is true when the
// item is hidden at that tier.
type Tiers struct {
	Logical      bool `json:"logical"`
	Layout       bool `json:"layout"`
	Presentation bool `json:"presentation"`
}

func uniform(hidden bool) Tiers {
	return Tiers{Logical: hidden, Layout: hidden, Presentation: hidden}
}
