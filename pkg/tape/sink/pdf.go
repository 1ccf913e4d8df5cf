package sink

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/musicbox/pkg/fonts"
	"github.com/matzehuels/musicbox/pkg/geom"
	"github.com/matzehuels/musicbox/pkg/tape/layout"
)

const pdfFontFamily = "label"

type pdfCanvas struct {
	style  style
	layout *layout.Layout
	pdf    *gofpdf.Fpdf
}

// RenderPDF renders the whole layout as one PDF document with one page per
// layout page. Units are mm and the page size matches the layout.
func RenderPDF(l *layout.Layout, opts ...Option) ([]byte, error) {
	s := newStyle(opts)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetCreator("musicbox", true)
	if l.Title != "" {
		pdf.SetTitle(l.Title, true)
	}

	ttf := s.font
	if len(ttf) == 0 {
		ttf = fonts.Regular()
	}
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", ttf)

	c := &pdfCanvas{style: s, layout: l, pdf: pdf}
	if err := Draw(l, c); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *pdfCanvas) BeginPage(int) {
	c.pdf.AddPage()
	cut := c.style.cut
	c.pdf.SetDrawColor(int(cut.R), int(cut.G), int(cut.B))
	c.pdf.SetAlpha(float64(cut.A)/255, "Normal")
	c.pdf.SetLineWidth(c.layout.CutStrokeWidth)
	c.pdf.SetLineJoinStyle("miter")
}

func (c *pdfCanvas) DrawPolygon(outline geom.Polygon) {
	points := make([]gofpdf.PointType, len(outline))
	for i, p := range outline {
		points[i] = gofpdf.PointType{X: p.X, Y: p.Y}
	}
	c.pdf.ClipPolygon(points, false)
	c.pdf.SetLineWidth(c.layout.OutlineStrokeWidth())
	c.pdf.Polygon(points, "D")
	c.pdf.ClipEnd()
	c.pdf.SetLineWidth(c.layout.CutStrokeWidth)
}

func (c *pdfCanvas) DrawCircle(center geom.Point, radius float64) {
	c.pdf.Circle(center.X, center.Y, radius, "D")
}

func (c *pdfCanvas) DrawText(pos geom.Point, text string, size float64) {
	e := c.style.engrave
	c.pdf.SetFont(pdfFontFamily, "", 0)
	c.pdf.SetFontUnitSize(size)
	c.pdf.SetTextColor(int(e.R), int(e.G), int(e.B))
	c.pdf.Text(pos.X, pos.Y, text)
}

func (c *pdfCanvas) EndPage() error {
	return c.pdf.Error()
}
