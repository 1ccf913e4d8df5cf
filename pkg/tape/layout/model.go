package layout

import "github.com/matzehuels/musicbox/pkg/geom"

// Text is a label to engrave.
type Text struct {
	Position geom.Point `json:"position"`
	Content  string     `json:"text"`
	FontSize float64    `json:"font_size"`
}

// Strip is one separately cut piece of tape. Outline is a closed polygon;
// Holes are hole centers in ascending musical time.
type Strip struct {
	Index   int          `json:"index"`
	Texts   []Text       `json:"texts"`
	Outline geom.Polygon `json:"outline"`
	Holes   []geom.Point `json:"holes"`
}

// Page is the set of strips cut from one sheet, top to bottom.
type Page struct {
	Strips []Strip `json:"strips"`
}

// Layout is the complete cut plan for a song. It is never modified after
// [Build] returns and is the only thing renderers see.
type Layout struct {
	PageWidth      float64 `json:"page_width"`
	PageHeight     float64 `json:"page_height"`
	TapeHeight     float64 `json:"tape_height"`
	HoleRadius     float64 `json:"hole_radius"`
	CutStrokeWidth float64 `json:"cut_stroke_width"`
	StripCount     int     `json:"strip_count"`
	StripsPerPage  int     `json:"strips_per_page"`
	Title          string  `json:"title,omitempty"`
	Pages          []Page  `json:"pages"`
}

// CutHoleRadius is the radius to cut so that, after losing half a stroke
// width of material all around, the hole has the nominal radius.
func (l *Layout) CutHoleRadius() float64 {
	return l.HoleRadius - l.CutStrokeWidth/2
}

// OutlineStrokeWidth is the stroke width to cut outlines with. Renderers clip
// the stroke to the outline, so only the inner half is cut.
func (l *Layout) OutlineStrokeWidth() float64 {
	return 2 * l.CutStrokeWidth
}

// HoleCount returns the total number of holes across all pages. Holes that
// straddle a join are counted once per strip.
func (l *Layout) HoleCount() int {
	n := 0
	for _, p := range l.Pages {
		for _, s := range p.Strips {
			n += len(s.Holes)
		}
	}
	return n
}
