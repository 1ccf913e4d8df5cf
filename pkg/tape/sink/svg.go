package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/musicbox/pkg/fonts"
	"github.com/matzehuels/musicbox/pkg/geom"
	"github.com/matzehuels/musicbox/pkg/tape/layout"
)

type svgCanvas struct {
	style  style
	layout *layout.Layout
	buf    bytes.Buffer
	clips  int
	inClip bool
	pages  [][]byte
}

// RenderSVG renders one SVG document per page. Sizes are in mm so the files
// import at scale into laser cutter software.
func RenderSVG(l *layout.Layout, opts ...Option) ([][]byte, error) {
	c := &svgCanvas{style: newStyle(opts), layout: l}
	if err := Draw(l, c); err != nil {
		return nil, err
	}
	return c.pages, nil
}

func (c *svgCanvas) BeginPage(int) {
	c.buf.Reset()
	w, h := c.layout.PageWidth, c.layout.PageHeight
	c.buf.WriteString(`<?xml version="1.0" encoding="UTF-8" ?>` + "\n")
	fmt.Fprintf(&c.buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="%.2fmm" height="%.2fmm" viewBox="0 0 %.2f %.2f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&c.buf, `<g fill="none" stroke-width="%.3f" stroke="%s">`+"\n",
		c.layout.CutStrokeWidth, cssColor(c.style.cut))
}

// DrawPolygon opens a group clipped to outline. Holes drawn after it stay in
// the group, so a hole straddling a join is cut only inside this strip.
func (c *svgCanvas) DrawPolygon(outline geom.Polygon) {
	c.endClip()
	id := fmt.Sprintf("strip_%d_border", c.clips)
	c.clips++
	points := svgPoints(outline)
	fmt.Fprintf(&c.buf, `<defs><clipPath id="%s"><polygon points="%s"/></clipPath></defs>`+"\n", id, points)
	fmt.Fprintf(&c.buf, `<g clip-path="url(#%s)">`+"\n"+`<polygon points="%s" stroke-width="%.3f"/>`+"\n",
		id, points, c.layout.OutlineStrokeWidth())
	c.inClip = true
}

func (c *svgCanvas) endClip() {
	if c.inClip {
		c.buf.WriteString("</g>\n")
		c.inClip = false
	}
}

func (c *svgCanvas) DrawCircle(center geom.Point, radius float64) {
	fmt.Fprintf(&c.buf, `<circle cx="%.3f" cy="%.3f" r="%.3f"/>`+"\n", center.X, center.Y, radius)
}

func (c *svgCanvas) DrawText(pos geom.Point, text string, size float64) {
	c.endClip()
	fmt.Fprintf(&c.buf, `<text x="%.3f" y="%.3f" font-size="%.3f" font-family="%s" fill="%s" stroke="none">`,
		pos.X, pos.Y, size, fonts.FontFamily, cssColor(c.style.engrave))
	_ = xml.EscapeText(&c.buf, []byte(text))
	c.buf.WriteString("</text>\n")
}

func (c *svgCanvas) EndPage() error {
	c.endClip()
	c.buf.WriteString("</g>\n</svg>\n")
	c.pages = append(c.pages, bytes.Clone(c.buf.Bytes()))
	return nil
}

func svgPoints(p geom.Polygon) string {
	var sb strings.Builder
	for i, pt := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.3f,%.3f", pt.X, pt.Y)
	}
	return sb.String()
}
