package layout

import (
	"math"

	"github.com/matzehuels/musicbox/pkg/errors"
	"github.com/matzehuels/musicbox/pkg/geom"
	"github.com/matzehuels/musicbox/pkg/notes"
)

// DefaultPitches is the tape pitch list of a common 30-note music box.
var DefaultPitches = notes.PitchList{
	40, 42, 44, 45, 46, 47, 48, 49, 50, 51, 52, 53, 54, 55, 56,
	57, 58, 59, 60, 61, 62, 63, 64, 66, 68, 69, 71, 73, 78, 80,
}

// Config holds every dimension the engine needs. All lengths are in mm.
type Config struct {
	Pitches notes.PitchList

	TapeHeight     float64
	InteriorTop    float64 // tape edge to first row
	InteriorBottom float64 // last row to tape edge
	InteriorLeft   float64 // end of lead-in to first note
	InteriorRight  float64 // last note to end of tape
	Gap            float64 // vertical space between strips on a page
	HoleDiameter   float64

	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	CutStrokeWidth float64
	Stretch        float64 // mm per beat
	LeadInWidth    float64
	LeadInHeight   float64
	Join           geom.JoinStyle
	Title          string
}

// DefaultConfig returns a configuration for an A4 landscape page and a
// 30-note music box.
func DefaultConfig() Config {
	return Config{
		Pitches:        DefaultPitches,
		TapeHeight:     68.6,
		InteriorTop:    6,
		InteriorBottom: 5,
		InteriorLeft:   20,
		InteriorRight:  20,
		Gap:            10,
		HoleDiameter:   2.4,
		PageWidth:      297,
		PageHeight:     210,
		MarginTop:      10,
		MarginBottom:   10,
		MarginLeft:     10,
		MarginRight:    10,
		CutStrokeWidth: 0.08,
		Stretch:        16,
		LeadInWidth:    15,
		LeadInHeight:   35,
		Join:           geom.JoinStyle{Kind: geom.ZigZag, Width: 5, Teeth: 5},
	}
}

// HoleRadius returns the nominal hole radius.
func (c Config) HoleRadius() float64 { return c.HoleDiameter / 2 }

// RowSpacing returns the vertical distance between adjacent rows. A single
// row has no spacing.
func (c Config) RowSpacing() float64 {
	if len(c.Pitches) < 2 {
		return 0
	}
	return (c.TapeHeight - c.InteriorTop - c.InteriorBottom) / float64(len(c.Pitches)-1)
}

// Validate reports an ErrCodeInvalidConfig error when the configuration
// cannot be laid out, for example when a page is too small to hold a strip.
func (c Config) Validate() error {
	if len(c.Pitches) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "pitch list cannot be empty")
	}
	type field struct {
		name  string
		value float64
	}
	positive := []field{
		{"tape height", c.TapeHeight},
		{"hole diameter", c.HoleDiameter},
		{"page width", c.PageWidth},
		{"page height", c.PageHeight},
		{"stretch", c.Stretch},
	}
	nonNegative := []field{
		{"interior top", c.InteriorTop},
		{"interior bottom", c.InteriorBottom},
		{"interior left", c.InteriorLeft},
		{"interior right", c.InteriorRight},
		{"gap", c.Gap},
		{"margin top", c.MarginTop},
		{"margin bottom", c.MarginBottom},
		{"margin left", c.MarginLeft},
		{"margin right", c.MarginRight},
		{"cut stroke width", c.CutStrokeWidth},
		{"lead-in width", c.LeadInWidth},
		{"lead-in height", c.LeadInHeight},
		{"join width", c.Join.Width},
	}
	for _, p := range append(positive, nonNegative...) {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite, got %g", p.name, p.value)
		}
	}
	for _, p := range positive {
		if p.value <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %g", p.name, p.value)
		}
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s cannot be negative, got %g", p.name, p.value)
		}
	}

	if c.InteriorTop+c.InteriorBottom > c.TapeHeight {
		return errors.New(errors.ErrCodeInvalidConfig, "interior margins exceed tape height %g", c.TapeHeight)
	}
	if c.LeadInHeight > c.TapeHeight {
		return errors.New(errors.ErrCodeInvalidConfig, "lead-in height %g exceeds tape height %g", c.LeadInHeight, c.TapeHeight)
	}
	if c.CutStrokeWidth >= c.HoleDiameter {
		return errors.New(errors.ErrCodeInvalidConfig, "cut stroke width %g leaves no hole of diameter %g", c.CutStrokeWidth, c.HoleDiameter)
	}
	if c.Join.Kind == geom.ZigZag && c.Join.Teeth < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "zig-zag join needs at least one tooth")
	}
	if c.PageHeight-c.MarginTop-c.MarginBottom < c.TapeHeight {
		return errors.New(errors.ErrCodeInvalidConfig, "page height %g cannot hold a strip of height %g", c.PageHeight, c.TapeHeight)
	}

	b := c.budgets()
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"first", b.first},
		{"middle", b.middle},
		{"last", b.last},
		{"only", b.only},
	} {
		if !(w.value > 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "page width %g leaves no room for the %s strip", c.PageWidth, w.name)
		}
	}
	return errors.ValidateTitle(c.Title)
}

// budgets is the musical width each kind of strip can hold.
type budgets struct {
	first, middle, last, only float64
}

func (c Config) budgets() budgets {
	r := c.HoleRadius()
	join := c.Join.EffectiveWidth()
	inner := c.PageWidth - c.MarginLeft - c.MarginRight
	return budgets{
		first:  inner - c.LeadInWidth - c.InteriorLeft - r - join,
		middle: inner - join,
		last:   inner - c.InteriorRight - r,
		only:   inner - c.LeadInWidth - c.InteriorLeft - c.InteriorRight - 2*r,
	}
}
