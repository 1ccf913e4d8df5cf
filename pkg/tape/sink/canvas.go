package sink

import (
	"image/color"

	"github.com/matzehuels/musicbox/pkg/geom"
	"github.com/matzehuels/musicbox/pkg/tape/layout"
)

// Canvas receives the drawing operations for a layout, page by page.
type Canvas interface {
	BeginPage(index int)
	// DrawPolygon draws a closed cut outline.
	DrawPolygon(outline geom.Polygon)
	// DrawCircle draws a cut hole of the given (already compensated) radius.
	DrawCircle(center geom.Point, radius float64)
	// DrawText engraves a label with its baseline starting at pos.
	DrawText(pos geom.Point, text string, size float64)
	EndPage() error
}

// Draw replays l onto c. It stops at the first page that fails to finish.
func Draw(l *layout.Layout, c Canvas) error {
	r := l.CutHoleRadius()
	for i, page := range l.Pages {
		c.BeginPage(i)
		for _, s := range page.Strips {
			c.DrawPolygon(s.Outline)
			for _, h := range s.Holes {
				c.DrawCircle(h, r)
			}
			for _, t := range s.Texts {
				c.DrawText(t.Position, t.Content, t.FontSize)
			}
		}
		if err := c.EndPage(); err != nil {
			return err
		}
	}
	return nil
}

// Option configures any renderer.
type Option func(*style)

type style struct {
	cut     color.NRGBA
	engrave color.NRGBA
	font    []byte
	scale   float64
}

var (
	// DefaultCutColor is pure red, the cut color most laser software expects.
	DefaultCutColor = color.NRGBA{R: 255, A: 255}
	// DefaultEngraveColor is black.
	DefaultEngraveColor = color.NRGBA{A: 255}
)

// DefaultScale is the PNG resolution in pixels per millimeter.
const DefaultScale = 4.0

func newStyle(opts []Option) style {
	s := style{cut: DefaultCutColor, engrave: DefaultEngraveColor, scale: DefaultScale}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithCutColor sets the stroke color of outlines and holes.
func WithCutColor(c color.NRGBA) Option { return func(s *style) { s.cut = c } }

// WithEngraveColor sets the fill color of labels.
func WithEngraveColor(c color.NRGBA) Option { return func(s *style) { s.engrave = c } }

// WithFont sets the TTF font for PDF and PNG labels.
func WithFont(ttf []byte) Option { return func(s *style) { s.font = ttf } }

// WithScale sets the PNG resolution in pixels per millimeter.
func WithScale(pxPerMM float64) Option {
	return func(s *style) {
		if pxPerMM > 0 {
			s.scale = pxPerMM
		}
	}
}
