package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/matzehuels/musicbox/pkg/fonts"
	"github.com/matzehuels/musicbox/pkg/geom"
	"github.com/matzehuels/musicbox/pkg/tape/layout"
)

type pngCanvas struct {
	style  style
	layout *layout.Layout
	font   *truetype.Font
	dc     *gg.Context
	pages  [][]byte
}

// RenderPNG renders one PNG preview per page on a white background.
func RenderPNG(l *layout.Layout, opts ...Option) ([][]byte, error) {
	s := newStyle(opts)
	f, err := fonts.Parse(s.font)
	if err != nil {
		return nil, err
	}
	c := &pngCanvas{style: s, layout: l, font: f}
	if err := Draw(l, c); err != nil {
		return nil, err
	}
	return c.pages, nil
}

func (c *pngCanvas) BeginPage(int) {
	s := c.style.scale
	c.dc = gg.NewContext(int(math.Ceil(c.layout.PageWidth*s)), int(math.Ceil(c.layout.PageHeight*s)))
	c.dc.SetRGB(1, 1, 1)
	c.dc.Clear()
	c.dc.Scale(s, s)
	c.dc.SetLineJoin(gg.LineJoinRound)
}

func (c *pngCanvas) DrawPolygon(outline geom.Polygon) {
	if len(outline) == 0 {
		return
	}
	dc := c.dc
	trace := func() {
		dc.MoveTo(outline[0].X, outline[0].Y)
		for _, p := range outline[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
	}
	trace()
	dc.Clip()
	trace()
	dc.SetColor(c.style.cut)
	dc.SetLineWidth(c.layout.OutlineStrokeWidth())
	dc.Stroke()
	dc.ResetClip()
}

func (c *pngCanvas) DrawCircle(center geom.Point, radius float64) {
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.SetColor(c.style.cut)
	c.dc.SetLineWidth(c.layout.CutStrokeWidth)
	c.dc.Stroke()
}

func (c *pngCanvas) DrawText(pos geom.Point, text string, size float64) {
	// Glyphs are not scaled by the context transform; size them in pixels.
	c.dc.SetFontFace(fonts.Face(c.font, size*c.style.scale))
	c.dc.SetColor(c.style.engrave)
	c.dc.DrawString(text, pos.X, pos.Y)
}

func (c *pngCanvas) EndPage() error {
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	c.pages = append(c.pages, buf.Bytes())
	return nil
}
