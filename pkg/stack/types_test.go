package stack

import (
	"testing"

	"github.com/matzehuels/stackview/pkg/constraint"
)

func TestAxisAttributes(t *testing.T) {
	tests := []struct {
		axis                              Axis
		lead, trail, center, dim          constraint.Attribute
		transverse                        Axis
	}{
		{Horizontal, constraint.Leading, constraint.Trailing, constraint.CenterX, constraint.Width, Vertical},
		{Vertical, constraint.Top, constraint.Bottom, constraint.CenterY, constraint.Height, Horizontal},
	}
	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			if got := tt.axis.Leading(); got != tt.lead {
				t.Errorf("Leading() = %v, want %v", got, tt.lead)
			}
			if got := tt.axis.Trailing(); got != tt.trail {
				t.Errorf("Trailing() = %v, want %v", got, tt.trail)
			}
			if got := tt.axis.Center(); got != tt.center {
				t.Errorf("Center() = %v, want %v", got, tt.center)
			}
			if got := tt.axis.Dimension(); got != tt.dim {
				t.Errorf("Dimension() = %v, want %v", got, tt.dim)
			}
			if got := tt.axis.Transverse(); got != tt.transverse {
				t.Errorf("Transverse() = %v, want %v", got, tt.transverse)
			}
		})
	}
}

func TestParseAxis(t *testing.T) {
	tests := []struct {
		in   string
		want Axis
		ok   bool
	}{
		{"horizontal", Horizontal, true},
		{"Vertical", Vertical, true},
		{"v", Vertical, true},
		{"diagonal", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAxis(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAxis(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		in   string
		want Alignment
		ok   bool
	}{
		{"fill", AlignFill, true},
		{"firstBaseline", AlignFirstBaseline, true},
		{"first-baseline", AlignFirstBaseline, true},
		{"LAST_BASELINE", AlignLastBaseline, true},
		{"top", AlignLeading, true},
		{"bottom", AlignTrailing, true},
		{"center", AlignCenter, true},
		{"middle", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAlignment(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAlignment(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDistribution(t *testing.T) {
	for d := DistributeFill; d <= DistributeEqualCentering; d++ {
		got, ok := ParseDistribution(d.String())
		if !ok || got != d {
			t.Errorf("ParseDistribution(%q) = (%v, %v)", d.String(), got, ok)
		}
	}
	if got, ok := ParseDistribution("equal-spacing"); !ok || got != DistributeEqualSpacing {
		t.Errorf("ParseDistribution(equal-spacing) = (%v, %v)", got, ok)
	}
	if _, ok := ParseDistribution("random"); ok {
		t.Error("ParseDistribution(random) should fail")
	}
}

func TestEnumStrings(t *testing.T) {
	if s := Axis(5).String(); s != "Axis(5)" {
		t.Errorf("unknown axis = %q", s)
	}
	if s := AlignTop.String(); s != "leading" {
		t.Errorf("AlignTop = %q", s)
	}
	if s := Distribution(9).String(); s != "Distribution(9)" {
		t.Errorf("unknown distribution = %q", s)
	}
	if !AlignLastBaseline.IsBaseline() || AlignCenter.IsBaseline() {
		t.Error("IsBaseline mismatch")
	}
}
