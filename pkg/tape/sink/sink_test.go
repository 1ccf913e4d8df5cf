package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/musicbox/pkg/geom"
	"github.com/matzehuels/musicbox/pkg/notes"
	"github.com/matzehuels/musicbox/pkg/tape/layout"
)

func testLayout(t *testing.T, beats int) *layout.Layout {
	t.Helper()
	cfg := layout.DefaultConfig()
	cfg.Title = "Test <Song> & Co"
	var ns []notes.Note
	for i := 0; i <= beats; i++ {
		ns = append(ns, notes.Note{Time: uint64(i) * 96, Pitch: cfg.Pitches[i%len(cfg.Pitches)]})
	}
	l, err := layout.Build(ns, 96, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return l
}

// recorder counts canvas calls.
type recorder struct {
	pages, polygons, circles, texts int
	radius                          float64
	open                            bool
}

func (r *recorder) BeginPage(int) { r.pages++; r.open = true }
func (r *recorder) DrawPolygon(geom.Polygon) {
	r.polygons++
}
func (r *recorder) DrawCircle(_ geom.Point, radius float64) {
	r.circles++
	r.radius = radius
}
func (r *recorder) DrawText(geom.Point, string, float64) { r.texts++ }
func (r *recorder) EndPage() error                      { r.open = false; return nil }

func TestDraw(t *testing.T) {
	l := testLayout(t, 100)
	var r recorder
	if err := Draw(l, &r); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if r.pages != len(l.Pages) {
		t.Errorf("pages = %d, want %d", r.pages, len(l.Pages))
	}
	if r.polygons != l.StripCount || r.texts != l.StripCount {
		t.Errorf("polygons = %d, texts = %d, want %d", r.polygons, r.texts, l.StripCount)
	}
	if r.circles != l.HoleCount() {
		t.Errorf("circles = %d, want %d", r.circles, l.HoleCount())
	}
	if r.radius != l.CutHoleRadius() {
		t.Errorf("radius = %v, want %v", r.radius, l.CutHoleRadius())
	}
	if r.open {
		t.Error("last page was not ended")
	}
}

func TestRenderSVG(t *testing.T) {
	l := testLayout(t, 100)
	pages, err := RenderSVG(l, WithCutColor(color.NRGBA{R: 255, A: 255}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if len(pages) != len(l.Pages) {
		t.Fatalf("len(pages) = %d, want %d", len(pages), len(l.Pages))
	}

	first := string(pages[0])
	for _, want := range []string{
		`width="297.00mm" height="210.00mm" viewBox="0 0 297.00 210.00"`,
		`stroke="rgba(255,0,0,1.00)"`,
		`<clipPath id="strip_0_border">`,
		`clip-path="url(#strip_0_border)"`,
		`stroke-width="0.160"`,
		`r="1.160"`,
		`Test &lt;Song&gt; &amp; Co (1 of`,
	} {
		if !strings.Contains(first, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if got := strings.Count(first, "<circle"); got != len(l.Pages[0].Strips[0].Holes)+len(l.Pages[0].Strips[1].Holes) {
		t.Errorf("page 1 has %d circles", got)
	}

	for i, s := range l.Pages[0].Strips {
		open := fmt.Sprintf(`clip-path="url(#strip_%d_border)">`, i)
		start := strings.Index(first, open)
		if start < 0 {
			t.Fatalf("strip %d has no clip group", i)
		}
		group := first[start:]
		group = group[:strings.Index(group, "</g>")]
		if got := strings.Count(group, "<circle"); got != len(s.Holes) {
			t.Errorf("strip %d clip group has %d circles, want %d", i, got, len(s.Holes))
		}
	}
	dec := xml.NewDecoder(strings.NewReader(first))
	for {
		if _, err := dec.Token(); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("page 1 is not well-formed XML: %v", err)
		}
	}

	// Clip ids keep counting across pages.
	if !strings.Contains(string(pages[1]), `id="strip_2_border"`) {
		t.Error("second page should continue strip numbering")
	}
}

func TestRenderPDF(t *testing.T) {
	l := testLayout(t, 100)
	data, err := RenderPDF(l)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(8, len(data))])
	}
}

func TestRenderPNG(t *testing.T) {
	l := testLayout(t, 10)
	pages, err := RenderPNG(l, WithScale(2))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("len(pages) = %d, want 1", len(pages))
	}
	img, err := png.Decode(bytes.NewReader(pages[0]))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 594 || b.Dy() != 420 {
		t.Errorf("size = %dx%d, want 594x420", b.Dx(), b.Dy())
	}
}

func TestRenderJSON(t *testing.T) {
	l := testLayout(t, 100)
	data, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var back layout.Layout
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if back.StripCount != l.StripCount || len(back.Pages) != len(l.Pages) {
		t.Errorf("decoded %d strips on %d pages, want %d on %d", back.StripCount, len(back.Pages), l.StripCount, len(l.Pages))
	}
	if back.HoleCount() != l.HoleCount() {
		t.Errorf("HoleCount() = %d, want %d", back.HoleCount(), l.HoleCount())
	}

	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	if raw["cut_color"] != "rgba(255,0,0,1.00)" {
		t.Errorf("cut_color = %v", raw["cut_color"])
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"red", color.NRGBA{R: 255, A: 255}, false},
		{" Black ", color.NRGBA{A: 255}, false},
		{"#0f0", color.NRGBA{G: 255, A: 255}, false},
		{"#336699", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}, false},
		{"rgb(1, 2, 3)", color.NRGBA{R: 1, G: 2, B: 3, A: 255}, false},
		{"rgba(10,20,30,0.5)", color.NRGBA{R: 10, G: 20, B: 30, A: 128}, false},

		{"notacolor", color.NRGBA{}, true},
		{"#12345", color.NRGBA{}, true},
		{"#gggggg", color.NRGBA{}, true},
		{"rgb(1,2)", color.NRGBA{}, true},
		{"rgb(1,2,300)", color.NRGBA{}, true},
		{"rgba(1,2,3,2)", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
