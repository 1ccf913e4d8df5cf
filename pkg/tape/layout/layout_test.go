package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/musicbox/pkg/errors"
	"github.com/matzehuels/musicbox/pkg/geom"
	"github.com/matzehuels/musicbox/pkg/notes"
)

const eps = 1e-6

func near(a, b float64) bool { return math.Abs(a-b) < eps }

// scale plays one note every step ticks from 0 to end, cycling through pitches.
func scale(end, step uint64, pitches notes.PitchList) []notes.Note {
	var ns []notes.Note
	for t, i := uint64(0), 0; t <= end; t, i = t+step, i+1 {
		ns = append(ns, notes.Note{Time: t, Pitch: pitches[i%len(pitches)]})
	}
	return ns
}

func allStrips(l *Layout) []Strip {
	var out []Strip
	for _, p := range l.Pages {
		out = append(out, p.Strips...)
	}
	return out
}

func TestConcreteScenario(t *testing.T) {
	pitches := notes.PitchList{40, 42, 44, 45, 46, 60}
	for p := uint8(61); len(pitches) < 29; p++ {
		pitches = append(pitches, p)
	}
	cfg := DefaultConfig()
	cfg.Pitches = pitches

	src := notes.Source{Division: 96, Tracks: []notes.Track{{Events: []notes.Event{
		{Delta: 96, Kind: notes.NoteOn, Key: 128 - 60, Velocity: 64},
	}}}}
	l, err := FromSource(src, 0, cfg)
	if err != nil {
		t.Fatalf("FromSource: %v", err)
	}

	if len(l.Pages) != 1 || len(l.Pages[0].Strips) != 1 {
		t.Fatalf("got %d pages, want 1 page with 1 strip", len(l.Pages))
	}
	holes := l.Pages[0].Strips[0].Holes
	if len(holes) != 1 {
		t.Fatalf("len(holes) = %d, want 1", len(holes))
	}
	if got := cfg.RowSpacing(); !near(got, (68.6-6-5)/28) {
		t.Errorf("RowSpacing() = %v, want %v", got, (68.6-6-5)/28)
	}
	if got := holes[0].Y - cfg.MarginTop; !near(got, 16.285714285714) {
		t.Errorf("hole y within strip = %.9f, want 16.285714", got)
	}
}

func TestSingleNote(t *testing.T) {
	cfg := DefaultConfig()
	ns := []notes.Note{{Time: 0, Pitch: 52}}

	l, err := Build(ns, 480, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if l.StripCount != 1 || len(l.Pages) != 1 || len(l.Pages[0].Strips) != 1 {
		t.Fatalf("StripCount = %d, pages = %d, want 1, 1", l.StripCount, len(l.Pages))
	}
	s := l.Pages[0].Strips[0]
	if len(s.Holes) != 1 {
		t.Fatalf("len(holes) = %d, want 1", len(s.Holes))
	}

	wantX := cfg.MarginLeft + cfg.HoleRadius() + cfg.InteriorLeft + cfg.LeadInWidth
	row, _ := cfg.Pitches.Row(52)
	wantY := cfg.MarginTop + float64(row)*cfg.RowSpacing() + cfg.InteriorTop
	if !near(s.Holes[0].X, wantX) || !near(s.Holes[0].Y, wantY) {
		t.Errorf("hole = %v, want (%v,%v)", s.Holes[0], wantX, wantY)
	}

	right := wantX + cfg.InteriorRight + cfg.HoleRadius()
	wantOutline := geom.Polygon{
		{X: 10, Y: 10},
		{X: 10, Y: 10 + 68.6 - 35},
		{X: 25, Y: 78.6},
		{X: right, Y: 78.6},
		{X: right, Y: 10},
	}
	if len(s.Outline) != len(wantOutline) {
		t.Fatalf("outline = %v, want %v", s.Outline, wantOutline)
	}
	for i := range wantOutline {
		if !near(s.Outline[i].X, wantOutline[i].X) || !near(s.Outline[i].Y, wantOutline[i].Y) {
			t.Errorf("outline[%d] = %v, want %v", i, s.Outline[i], wantOutline[i])
		}
	}
	if len(s.Texts) != 0 {
		t.Errorf("texts = %v, want none without a title", s.Texts)
	}
}

func TestKerfCompensation(t *testing.T) {
	for _, cut := range []float64{0, 0.08, 0.2, 1} {
		cfg := DefaultConfig()
		cfg.CutStrokeWidth = cut
		l, err := Build([]notes.Note{{Pitch: 40}}, 96, cfg)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if got, want := l.CutHoleRadius(), cfg.HoleDiameter/2-cut/2; !near(got, want) {
			t.Errorf("cut %v: CutHoleRadius() = %v, want %v", cut, got, want)
		}
		if got := l.OutlineStrokeWidth(); !near(got, 2*cut) {
			t.Errorf("cut %v: OutlineStrokeWidth() = %v, want %v", cut, got, 2*cut)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		notes    []notes.Note
		division int
		code     errors.Code
	}{
		{"zero division", []notes.Note{{Pitch: 40}}, 0, errors.ErrCodeUnsupportedDivision},
		{"no notes", nil, 96, errors.ErrCodeEmptyTrack},
		{"pitch not in list", []notes.Note{{Pitch: 40}, {Time: 96, Pitch: 41}}, 96, errors.ErrCodeInvalidNote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Build(tt.notes, tt.division, cfg)
			if l != nil {
				t.Error("Build() returned a partial layout")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want code %v", err, tt.code)
			}
		})
	}

	_, err := Build([]notes.Note{{Pitch: 40}, {Time: 96, Pitch: 41}}, 96, cfg)
	if p, ok := errors.InvalidPitch(err); !ok || p != 41 {
		t.Errorf("InvalidPitch() = %v, %v, want 41, true", p, ok)
	}
}

func TestInvalidNoteOnLaterPage(t *testing.T) {
	cfg := DefaultConfig()
	ns := scale(7200, 96, cfg.Pitches)
	ns[len(ns)-1].Pitch = 99

	for _, opts := range [][]Option{nil, {WithParallelPages()}} {
		_, err := Build(ns, 96, cfg, opts...)
		if p, ok := errors.InvalidPitch(err); !ok || p != 99 {
			t.Errorf("InvalidPitch() = %v, %v, want 99, true", p, ok)
		}
	}
}

func TestPagePacking(t *testing.T) {
	cfg := DefaultConfig()
	// 7200 ticks at 96 ticks/beat and 16 mm/beat is 1200 mm of music.
	ns := scale(7200, 96, cfg.Pitches)

	l, err := Build(ns, 96, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if l.StripCount != 5 {
		t.Errorf("StripCount = %d, want 5", l.StripCount)
	}
	if l.StripsPerPage != 2 {
		t.Errorf("StripsPerPage = %d, want 2", l.StripsPerPage)
	}
	if len(l.Pages) != 3 {
		t.Fatalf("len(Pages) = %d, want 3", len(l.Pages))
	}

	for i, s := range allStrips(l) {
		if s.Index != i {
			t.Errorf("strip %d has Index %d", i, s.Index)
		}
		page, pos := i/l.StripsPerPage, i%l.StripsPerPage
		if got := l.Pages[page].Strips[pos].Index; got != i {
			t.Errorf("page %d pos %d holds strip %d, want %d", page, pos, got, i)
		}
		top := cfg.MarginTop + float64(pos)*(cfg.TapeHeight+cfg.Gap)
		if !near(s.Outline[0].Y, top) {
			t.Errorf("strip %d outline starts at y=%v, want %v", i, s.Outline[0].Y, top)
		}
	}
	if got := len(l.Pages[2].Strips); got != 1 {
		t.Errorf("last page has %d strips, want 1", got)
	}
}

func TestPlanPacking(t *testing.T) {
	cfg := DefaultConfig()
	b := cfg.budgets()

	tests := []struct {
		name   string
		width  float64
		strips int
	}{
		{"empty", 0, 1},
		{"fits only strip", b.only, 1},
		{"just past only strip", b.only + 1, 2},
		{"nearly first and last", b.first + b.last - 1, 2},
		{"one middle", b.first + b.last + 1, 3},
		{"nearly two middles", b.first + b.last + 2*b.middle - 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// One tick at division 1 is exactly Stretch mm.
			cfg := cfg
			cfg.Stretch = tt.width
			if tt.width == 0 {
				cfg.Stretch = 1
			}
			duration := uint64(1)
			if tt.width == 0 {
				duration = 0
			}
			p, err := NewPlan(cfg, 1, duration)
			if err != nil {
				t.Fatalf("NewPlan: %v", err)
			}
			if p.StripCount != tt.strips {
				t.Errorf("StripCount = %d, want %d (width %v)", p.StripCount, tt.strips, p.TotalWidth)
			}
			wantPages := (p.StripCount + p.StripsPerPage - 1) / p.StripsPerPage
			if p.PageCount != wantPages {
				t.Errorf("PageCount = %d, want %d", p.PageCount, wantPages)
			}
		})
	}
}

func TestPlanStripLimit(t *testing.T) {
	cfg := DefaultConfig()
	b := cfg.budgets()

	// One tick at division 1 is exactly Stretch mm.
	cfg.Stretch = b.first + b.last + (MaxStrips-2.5)*b.middle
	p, err := NewPlan(cfg, 1, 1)
	if err != nil {
		t.Fatalf("NewPlan at limit: %v", err)
	}
	if p.StripCount != MaxStrips {
		t.Errorf("StripCount = %d, want %d", p.StripCount, MaxStrips)
	}

	cfg.Stretch += b.middle
	if _, err := NewPlan(cfg, 1, 1); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("NewPlan past limit = %v, want INVALID_CONFIG", err)
	}

	cfg = DefaultConfig()
	cfg.Stretch = 1e6
	l, err := Build([]notes.Note{{Pitch: 40}, {Time: 96 * 2000, Pitch: 42}}, 96, cfg)
	if l != nil {
		t.Error("Build() returned a layout past the strip limit")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Build() error = %v, want INVALID_CONFIG", err)
	}
}

func TestBuildRejectsNonFinite(t *testing.T) {
	ns := []notes.Note{{Pitch: 40}, {Time: 96, Pitch: 42}}
	for _, v := range []float64{math.Inf(1), math.NaN()} {
		cfg := DefaultConfig()
		cfg.Stretch = v
		l, err := Build(ns, 96, cfg)
		if l != nil || !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("stretch %v: Build() = %v, %v, want nil, INVALID_CONFIG", v, l, err)
		}
	}
}

func TestPlanPageOf(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PageHeight = 400 // 1 + floor((400-20-68.6)/78.6) = 4 strips per page
	p, err := NewPlan(cfg, 96, 96*100)
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if p.StripsPerPage != 4 {
		t.Fatalf("StripsPerPage = %d, want 4", p.StripsPerPage)
	}
	for i := 0; i < p.StripCount; i++ {
		page, pos := p.PageOf(i)
		if page != i/4 || pos != i%4 {
			t.Errorf("PageOf(%d) = %d, %d, want %d, %d", i, page, pos, i/4, i%4)
		}
		start, end := p.Strips(page)
		if i < start || i >= end {
			t.Errorf("strip %d outside Strips(%d) = [%d,%d)", i, page, start, end)
		}
	}
	if _, end := p.Strips(p.PageCount - 1); end != p.StripCount {
		t.Errorf("last page ends at %d, want %d", end, p.StripCount)
	}
}

func TestTimeMonotonicity(t *testing.T) {
	cfg := DefaultConfig()
	ns := scale(9600, 48, cfg.Pitches)
	l, err := Build(ns, 96, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, s := range allStrips(l) {
		for i := 1; i < len(s.Holes); i++ {
			if s.Holes[i].X < s.Holes[i-1].X {
				t.Errorf("strip %d: hole %d x=%v before hole %d x=%v", s.Index, i, s.Holes[i].X, i-1, s.Holes[i-1].X)
			}
		}
	}
}

func TestStripCoverage(t *testing.T) {
	cfg := DefaultConfig()
	ns := scale(9600, 24, cfg.Pitches)
	l, err := Build(ns, 96, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p, err := NewPlan(cfg, 96, notes.Duration(ns))
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}

	if lo, _ := p.Span(0); lo > 0 {
		t.Errorf("first strip starts at %v, want 0", lo)
	}
	for k := 0; k+1 < p.StripCount; k++ {
		_, hi := p.Span(k)
		lo, _ := p.Span(k + 1)
		if lo > hi {
			t.Errorf("gap between strip %d (ends %v) and %d (starts %v)", k, hi, k+1, lo)
		}
		overlap := hi - lo
		if want := cfg.HoleDiameter + cfg.Join.EffectiveWidth(); !near(overlap, want) {
			t.Errorf("overlap %d/%d = %v, want %v", k, k+1, overlap, want)
		}
	}
	if _, hi := p.Span(p.StripCount - 1); hi < p.TotalWidth {
		t.Errorf("last strip ends at %v before the last note at %v", hi, p.TotalWidth)
	}

	strips := allStrips(l)
	covered := make([]bool, len(ns))
	for k, s := range strips {
		lo, hi := p.Span(k)
		want := 0
		for i, n := range ns {
			if w := p.TimeToWidth(n.Time); w >= lo && w <= hi {
				want++
				covered[i] = true
			}
		}
		if len(s.Holes) != want {
			t.Errorf("strip %d has %d holes, want %d", k, len(s.Holes), want)
		}
	}
	for i, ok := range covered {
		if !ok {
			t.Errorf("note %d (%v) is on no strip", i, ns[i])
		}
	}
}

func TestHolesInsideStrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "Greensleeves"
	ns := scale(9600, 40, cfg.Pitches)
	l, err := Build(ns, 96, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	r := cfg.HoleRadius()
	for _, s := range allStrips(l) {
		if len(s.Outline) < 3 {
			t.Fatalf("strip %d outline has %d points", s.Index, len(s.Outline))
		}
		min, max := s.Outline.Bounds()
		for _, h := range s.Holes {
			if h.Y < min.Y+cfg.InteriorTop-eps || h.Y > max.Y-cfg.InteriorBottom+eps {
				t.Errorf("strip %d: hole %v outside rows [%v,%v]", s.Index, h, min.Y+cfg.InteriorTop, max.Y-cfg.InteriorBottom)
			}
			if h.X < min.X-r || h.X > max.X+r {
				t.Errorf("strip %d: hole %v outside [%v,%v]", s.Index, h, min.X, max.X)
			}
		}
		for _, txt := range s.Texts {
			if !s.Outline.Contains(txt.Position) {
				t.Errorf("strip %d: label anchor %v outside outline", s.Index, txt.Position)
			}
		}
	}
}

func TestLabels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "Song"
	l, err := Build(scale(7200, 96, cfg.Pitches), 96, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	strips := allStrips(l)

	first := strips[0].Texts
	if len(first) != 1 || first[0].Content != "Song (1 of 5)" {
		t.Fatalf("first strip texts = %v", first)
	}
	if !near(first[0].Position.X, cfg.MarginLeft+cfg.LeadInWidth) || !near(first[0].FontSize, 3) {
		t.Errorf("first label = %+v", first[0])
	}
	second := strips[1].Texts[0]
	if second.Content != "Song (2 of 5)" || !near(second.Position.X, cfg.MarginLeft+cfg.Join.Width+1) {
		t.Errorf("second label = %+v", second)
	}
	if !near(second.Position.Y, cfg.MarginTop+cfg.TapeHeight+cfg.Gap+cfg.InteriorTop/2) {
		t.Errorf("second label y = %v", second.Position.Y)
	}
}

func TestJoinStyles(t *testing.T) {
	tests := []struct {
		kind geom.JoinKind
		// points in the outline of a middle strip
		points int
	}{
		{geom.ZigZag, 22},
		{geom.Diagonal, 4},
		{geom.Straight, 4},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Join.Kind = tt.kind
			l, err := Build(scale(7200, 96, cfg.Pitches), 96, cfg)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			middle := l.Pages[0].Strips[1]
			if len(middle.Outline) != tt.points {
				t.Errorf("len(outline) = %d, want %d", len(middle.Outline), tt.points)
			}
			// Teeth of the right edge reach the page margin.
			wantRight := cfg.PageWidth - cfg.MarginRight
			_, max := middle.Outline.Bounds()
			if !near(max.X, wantRight) {
				t.Errorf("right extent = %v, want %v", max.X, wantRight)
			}
		})
	}
}

func TestParallelPagesMatchesSequential(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "Parallel"
	ns := scale(20000, 32, cfg.Pitches)

	seq, err := Build(ns, 96, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	par, err := Build(ns, 96, cfg, WithParallelPages())
	if err != nil {
		t.Fatalf("Build(parallel): %v", err)
	}
	if !reflect.DeepEqual(seq, par) {
		t.Error("parallel layout differs from sequential layout")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no pitches", func(c *Config) { c.Pitches = nil }},
		{"zero tape", func(c *Config) { c.TapeHeight = 0 }},
		{"negative gap", func(c *Config) { c.Gap = -1 }},
		{"page too short", func(c *Config) { c.PageHeight = 80 }},
		{"page too narrow", func(c *Config) { c.PageWidth = 60 }},
		{"cut wider than hole", func(c *Config) { c.CutStrokeWidth = 3 }},
		{"no teeth", func(c *Config) { c.Join.Teeth = 0 }},
		{"lead-in too tall", func(c *Config) { c.LeadInHeight = 100 }},
		{"title with newline", func(c *Config) { c.Title = "a\nb" }},
		{"infinite stretch", func(c *Config) { c.Stretch = math.Inf(1) }},
		{"infinite page width", func(c *Config) { c.PageWidth = math.Inf(1) }},
		{"NaN margin", func(c *Config) { c.MarginTop = math.NaN() }},
		{"NaN stretch", func(c *Config) { c.Stretch = math.NaN() }},
		{"negative infinite join", func(c *Config) { c.Join.Width = math.Inf(-1) }},
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestRowSpacingSinglePitch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pitches = notes.PitchList{60}
	if got := cfg.RowSpacing(); got != 0 {
		t.Errorf("RowSpacing() = %v, want 0", got)
	}
	l, err := Build([]notes.Note{{Pitch: 60}, {Time: 10, Pitch: 60}}, 96, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, h := range l.Pages[0].Strips[0].Holes {
		if !near(h.Y, cfg.MarginTop+cfg.InteriorTop) {
			t.Errorf("hole y = %v, want %v", h.Y, cfg.MarginTop+cfg.InteriorTop)
		}
	}
}
