package layout

import (
	"math"

	"github.com/matzehuels/musicbox/pkg/errors"
)

// MaxStrips bounds the number of strips a single layout may produce.
const MaxStrips = 10000

// Plan is the result of packing a song of a given duration into strips and
// pages. It is computed once per layout and shared by every strip.
type Plan struct {
	Division   int
	TotalWidth float64 // musical width of the song, first to last note

	FirstWidth  float64
	MiddleWidth float64
	LastWidth   float64
	OnlyWidth   float64

	StripCount    int
	StripsPerPage int
	PageCount     int

	cfg Config
}

// NewPlan packs a song whose last note is at tick duration. The config must
// already be valid.
func NewPlan(cfg Config, division int, duration uint64) (Plan, error) {
	if division <= 0 {
		return Plan{}, errors.New(errors.ErrCodeUnsupportedDivision,
			"timecode division %d is not supported", division)
	}
	b := cfg.budgets()
	p := Plan{
		Division:    division,
		FirstWidth:  b.first,
		MiddleWidth: b.middle,
		LastWidth:   b.last,
		OnlyWidth:   b.only,
		cfg:         cfg,
	}
	p.TotalWidth = p.TimeToWidth(duration)

	if p.TotalWidth <= b.only {
		p.StripCount = 1
	} else {
		rest := (p.TotalWidth - b.first - b.last) / b.middle
		// A song that just misses the only-strip budget can still fit the
		// first and last strips together; rest is negative then.
		rest = math.Ceil(rest)
		if rest > MaxStrips-2 {
			return Plan{}, errors.New(errors.ErrCodeInvalidConfig,
				"song needs more than %d strips at stretch %g", MaxStrips, cfg.Stretch)
		}
		p.StripCount = 2 + max(0, int(rest))
	}

	usable := cfg.PageHeight - cfg.MarginTop - cfg.MarginBottom - cfg.TapeHeight
	p.StripsPerPage = 1 + int(math.Floor(usable/(cfg.Gap+cfg.TapeHeight)))
	p.PageCount = (p.StripCount + p.StripsPerPage - 1) / p.StripsPerPage
	return p, nil
}

// TimeToWidth converts a tick count to mm along the tape.
func (p Plan) TimeToWidth(t uint64) float64 {
	return float64(t) * p.cfg.Stretch / float64(p.Division)
}

// Offset returns the shift from musical width to strip-local x for a strip.
// Holes of strip k sit at TimeToWidth(t)+Offset(k) from the strip's left edge.
func (p Plan) Offset(strip int) float64 {
	if strip == 0 {
		return p.cfg.LeadInWidth + p.cfg.InteriorLeft + p.cfg.HoleRadius()
	}
	return -(p.FirstWidth + float64(strip-1)*p.MiddleWidth)
}

// PageOf returns the page holding a strip and its position on that page.
func (p Plan) PageOf(strip int) (page, pos int) {
	return strip / p.StripsPerPage, strip % p.StripsPerPage
}

// Strips returns the half-open range of strip indices on a page.
func (p Plan) Strips(page int) (start, end int) {
	start = page * p.StripsPerPage
	return start, min(start+p.StripsPerPage, p.StripCount)
}

// Span returns the range of musical widths whose holes land on a strip. Spans
// of neighbouring strips overlap by the hole diameter plus the join width,
// so a hole cut across a join appears on both strips.
func (p Plan) Span(strip int) (lo, hi float64) {
	r := p.cfg.HoleRadius()
	off := p.Offset(strip)
	right := p.cfg.PageWidth - p.cfg.MarginRight - p.cfg.MarginLeft
	lo = -off - r
	if strip == 0 {
		lo = 0
	}
	return lo, right - off + r
}

// IsFirst reports whether strip carries the lead-in.
func (p Plan) IsFirst(strip int) bool { return strip == 0 }

// IsLast reports whether strip is the square-ended tail of the tape.
func (p Plan) IsLast(strip int) bool { return strip == p.StripCount-1 }
