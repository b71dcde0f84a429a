package stack

import "github.com/matzehuels/stackview/pkg/constraint"

// Constraint roles. Each generated identifier is constraint.ID(role, participants...).
const (
	roleSpacing            = "spacing"
	roleDistributingEdgeL  = "distributing-edge-leading"
	roleDistributingEdgeT  = "distributing-edge-trailing"
	roleDistributing       = "distributing"
	roleSpacerPinSize      = "spacer-pin-size"
	roleSpacerPinCenter    = "spacer-pin-center"
	roleFillEqually        = "fill-equally"
	roleFillProportionally = "fill-proportionally"
	roleHiding             = "hiding"
	roleCanvasLeading      = "canvas-connection-leading"
	roleCanvasTrailing     = "canvas-connection-trailing"
	roleCanvasFitLeading   = "canvas-fit-leading"
	roleCanvasFitTrailing  = "canvas-fit-trailing"
	roleCanvasCentering    = "canvas-centering"
	roleAlignLeading       = "alignment-leading"
	roleAlignTrailing      = "alignment-trailing"
	roleAlignCenter        = "alignment-center"
	roleAlignBaseline      = "alignment-baseline"
	roleBoundLeading       = "canvas-bound-leading"
	roleBoundTrailing      = "canvas-bound-trailing"
)

// ProportionalPriority is the priority of fill-proportionally constraints.
// It sits just below Required so intrinsic ratios yield to hard limits.
const ProportionalPriority = constraint.Required - 1

// Synthesize produces the full constraint set for a stack container.
//
// The result is a pure function of its inputs: the same container, config
// and items yield identical constraints in identical order. Spacers for the
// EqualSpacing and EqualCentering distributions are requested from spacers;
// a nil source uses a fresh Registry.
//
// cfg must be valid (see Config.Validate). Items with Hidden set take no part
// in spacing, sizing or container edges; every item, hidden or not, is
// aligned on the transverse axis.
func Synthesize(container constraint.ElementID, cfg Config, items []Item, spacers SpacerSource) []constraint.Constraint {
	if spacers == nil {
		spacers = NewRegistry()
	}
	s := &synthesizer{
		container: container,
		cfg:       cfg,
		main:      cfg.Axis,
		cross:     cfg.Axis.Transverse(),
		items:     items,
		active:    activeItems(items),
	}
	s.stacking(spacers)
	s.sizing()
	s.hiding()
	s.edges()
	s.alignment()
	return s.out
}

type synthesizer struct {
	container constraint.ElementID
	cfg       Config
	main      Axis
	cross     Axis
	items     []Item
	active    []Item
	out       []constraint.Constraint
}

func (s *synthesizer) relate(id string, first constraint.ElementID, fa constraint.Attribute, rel constraint.Relation,
	second constraint.ElementID, sa constraint.Attribute, multiplier, constant float64, p constraint.Priority) {
	s.out = append(s.out, constraint.Constraint{
		ID:         id,
		First:      first,
		FirstAttr:  fa,
		Relation:   rel,
		Second:     second,
		SecondAttr: sa,
		Multiplier: multiplier,
		Constant:   constant,
		Priority:   p,
	})
}

func (s *synthesizer) fixed(id string, first constraint.ElementID, fa constraint.Attribute, constant float64) {
	s.out = append(s.out, constraint.Constraint{
		ID:         id,
		First:      first,
		FirstAttr:  fa,
		Relation:   constraint.Equal,
		Multiplier: 1,
		Constant:   constant,
		Priority:   constraint.Required,
	})
}

// stacking spaces adjacent active items, directly or through spacers.
func (s *synthesizer) stacking(spacers SpacerSource) {
	lead, trail := s.main.Leading(), s.main.Trailing()
	dist := s.cfg.Distribution

	var group []Spacer
	for i := 1; i < len(s.active); i++ {
		a, b := s.active[i-1].ID, s.active[i].ID

		if !dist.usesSpacers() {
			s.relate(constraint.ID(roleSpacing, a, b), b, lead, constraint.Equal, a, trail, 1, s.cfg.Spacing, constraint.Required)
			continue
		}

		role := spacerRoleFor(dist)
		sp := spacers.Spacer(a, b, role)
		from, to := trail, lead
		if role == SpacerCentering {
			from, to = s.main.Center(), s.main.Center()
		}
		s.relate(constraint.ID(roleDistributingEdgeL, a, b), sp.ID, lead, constraint.Equal, a, from, 1, 0, constraint.Required)
		s.relate(constraint.ID(roleDistributingEdgeT, a, b), sp.ID, trail, constraint.Equal, b, to, 1, 0, constraint.Required)
		s.relate(constraint.ID(roleSpacing, a, b), b, lead, constraint.GreaterOrEqual, a, trail, 1, s.cfg.Spacing, constraint.Required)
		s.fixed(constraint.ID(roleSpacerPinSize, a, b), sp.ID, s.cross.Dimension(), 0)
		s.relate(constraint.ID(roleSpacerPinCenter, a, b), sp.ID, s.cross.Center(), constraint.Equal,
			s.container, s.cross.Center(), 1, 0, constraint.Required)
		group = append(group, sp)
	}

	// One equal-size group anchored on the first spacer.
	dim := s.main.Dimension()
	for k := 1; k < len(group); k++ {
		sp := group[k]
		s.relate(constraint.ID(roleDistributing, sp.Before, sp.After), sp.ID, dim, constraint.Equal,
			group[0].ID, dim, 1, 0, constraint.Required)
	}
}

// sizing emits the axis-dimension constraints of the fill distributions.
func (s *synthesizer) sizing() {
	if len(s.active) < 2 {
		return
	}
	dim := s.main.Dimension()

	switch s.cfg.Distribution {
	case DistributeFillEqually:
		first := s.active[0].ID
		for _, it := range s.active[1:] {
			s.relate(constraint.ID(roleFillEqually, first, it.ID), it.ID, dim, constraint.Equal,
				first, dim, 1, 0, constraint.Required)
		}

	case DistributeFillProportionally:
		ref := -1
		for i, it := range s.active {
			if it.Size.Along(dim) > 0 {
				ref = i
				break
			}
		}
		if ref < 0 {
			return
		}
		refItem := s.active[ref]
		refSize := refItem.Size.Along(dim)
		for i, it := range s.active {
			size := it.Size.Along(dim)
			if i == ref || size <= 0 {
				continue
			}
			s.relate(constraint.ID(roleFillProportionally, refItem.ID, it.ID), it.ID, dim, constraint.Equal,
				refItem.ID, dim, size/refSize, 0, ProportionalPriority)
		}
	}
}

// hiding collapses layout-hidden items along the stacking axis.
func (s *synthesizer) hiding() {
	for _, it := range s.items {
		if it.Hidden {
			s.fixed(constraint.ID(roleHiding, it.ID), it.ID, s.main.Dimension(), 0)
		}
	}
}

// edges ties the first and last active items to the container.
func (s *synthesizer) edges() {
	if len(s.active) == 0 {
		return
	}
	lead, trail := s.main.Leading(), s.main.Trailing()
	first, last := s.active[0].ID, s.active[len(s.active)-1].ID

	if !s.cfg.Distribution.usesSpacers() {
		s.relate(constraint.ID(roleCanvasLeading, first), first, lead, constraint.Equal, s.container, lead, 1, 0, constraint.Required)
		s.relate(constraint.ID(roleCanvasTrailing, last), last, trail, constraint.Equal, s.container, trail, 1, 0, constraint.Required)
		return
	}

	// Spacer distributions keep the content inside the container and prefer
	// it flush with both edges.
	s.relate(constraint.ID(roleCanvasLeading, first), first, lead, constraint.GreaterOrEqual, s.container, lead, 1, 0, constraint.Required)
	s.relate(constraint.ID(roleCanvasTrailing, last), last, trail, constraint.LessOrEqual, s.container, trail, 1, 0, constraint.Required)
	s.relate(constraint.ID(roleCanvasFitLeading, first), first, lead, constraint.Equal, s.container, lead, 1, 0, constraint.DefaultHigh)
	s.relate(constraint.ID(roleCanvasFitTrailing, last), last, trail, constraint.Equal, s.container, trail, 1, 0, constraint.DefaultHigh)
	if len(s.active) == 1 {
		center := s.main.Center()
		s.relate(constraint.ID(roleCanvasCentering, first), first, center, constraint.Equal, s.container, center, 1, 0, constraint.DefaultHigh)
	}
}

// alignment positions every item on the transverse axis.
func (s *synthesizer) alignment() {
	lead, trail, center := s.cross.Leading(), s.cross.Trailing(), s.cross.Center()
	ref, baseline := s.baselineReference()

	for _, it := range s.items {
		id := it.ID
		switch s.cfg.Alignment {
		case AlignFill:
			s.relate(constraint.ID(roleAlignLeading, id), id, lead, constraint.Equal, s.container, lead, 1, 0, constraint.Required)
			s.relate(constraint.ID(roleAlignTrailing, id), id, trail, constraint.Equal, s.container, trail, 1, 0, constraint.Required)

		case AlignLeading:
			s.relate(constraint.ID(roleAlignLeading, id), id, lead, constraint.Equal, s.container, lead, 1, 0, constraint.Required)
			s.boundTrailing(id)

		case AlignTrailing:
			s.relate(constraint.ID(roleAlignTrailing, id), id, trail, constraint.Equal, s.container, trail, 1, 0, constraint.Required)
			s.boundLeading(id)

		case AlignCenter:
			s.relate(constraint.ID(roleAlignCenter, id), id, center, constraint.Equal, s.container, center, 1, 0, constraint.Required)
			s.boundLeading(id)
			s.boundTrailing(id)

		case AlignFirstBaseline, AlignLastBaseline:
			if ref != "" && id != ref {
				s.relate(constraint.ID(roleAlignBaseline, ref, id), id, baseline, constraint.Equal, ref, baseline, 1, 0, constraint.Required)
			}
			s.boundLeading(id)
			s.boundTrailing(id)
		}
	}
}

func (s *synthesizer) boundLeading(id constraint.ElementID) {
	lead := s.cross.Leading()
	s.relate(constraint.ID(roleBoundLeading, id), id, lead, constraint.GreaterOrEqual, s.container, lead, 1, 0, constraint.Required)
}

func (s *synthesizer) boundTrailing(id constraint.ElementID) {
	trail := s.cross.Trailing()
	s.relate(constraint.ID(roleBoundTrailing, id), id, trail, constraint.LessOrEqual, s.container, trail, 1, 0, constraint.Required)
}

// baselineReference picks the item every other baseline is tied to: the
// first (or last) active item with a measurable baseline, else the first (or
// last) active item. It returns an empty ID when no item is active.
func (s *synthesizer) baselineReference() (constraint.ElementID, constraint.Attribute) {
	if !s.cfg.Alignment.IsBaseline() || len(s.active) == 0 {
		return "", constraint.NotAnAttribute
	}

	candidates := s.active
	attr := constraint.FirstBaseline
	if s.cfg.Alignment == AlignLastBaseline {
		attr = constraint.LastBaseline
		candidates = make([]Item, len(s.active))
		for i, it := range s.active {
			candidates[len(s.active)-1-i] = it
		}
	}

	for _, it := range candidates {
		if it.HasBaseline {
			return it.ID, attr
		}
	}
	return candidates[0].ID, attr
}
