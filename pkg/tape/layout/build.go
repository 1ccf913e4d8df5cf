package layout

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/musicbox/pkg/errors"
	"github.com/matzehuels/musicbox/pkg/geom"
	"github.com/matzehuels/musicbox/pkg/notes"
)

// Option configures [Build].
type Option func(*builder)

// WithParallelPages builds pages concurrently. The result is identical to a
// sequential build.
func WithParallelPages() Option {
	return func(b *builder) { b.parallel = true }
}

type builder struct {
	cfg      Config
	plan     Plan
	notes    []notes.Note
	parallel bool
}

// FromSource normalizes one track of src and lays it out.
func FromSource(src notes.Source, track int, cfg Config, opts ...Option) (*Layout, error) {
	ns, err := notes.Normalize(src, track)
	if err != nil {
		return nil, err
	}
	return Build(ns, src.Division, cfg, opts...)
}

// Build lays out a normalized note sequence (see [notes.Normalize]). On error
// no layout is returned.
func Build(ns []notes.Note, division int, cfg Config, opts ...Option) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(ns) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyTrack, "no notes to lay out")
	}
	plan, err := NewPlan(cfg, division, notes.Duration(ns))
	if err != nil {
		return nil, err
	}

	b := &builder{cfg: cfg, plan: plan, notes: ns}
	for _, opt := range opts {
		opt(b)
	}

	pages := make([]Page, plan.PageCount)
	if b.parallel {
		err = b.buildParallel(pages)
	} else {
		for i := range pages {
			if pages[i], err = b.page(i); err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}

	return &Layout{
		PageWidth:      cfg.PageWidth,
		PageHeight:     cfg.PageHeight,
		TapeHeight:     cfg.TapeHeight,
		HoleRadius:     cfg.HoleRadius(),
		CutStrokeWidth: cfg.CutStrokeWidth,
		StripCount:     plan.StripCount,
		StripsPerPage:  plan.StripsPerPage,
		Title:          cfg.Title,
		Pages:          pages,
	}, nil
}

// buildParallel reports the error of the lowest failing page, the same error
// a sequential build would stop at.
func (b *builder) buildParallel(pages []Page) error {
	errs := make([]error, len(pages))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range pages {
		g.Go(func() error {
			pages[i], errs[i] = b.page(i)
			return errs[i]
		})
	}
	if g.Wait() == nil {
		return nil
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) page(index int) (Page, error) {
	start, end := b.plan.Strips(index)
	page := Page{Strips: make([]Strip, 0, end-start)}
	for i := start; i < end; i++ {
		s, err := b.strip(i)
		if err != nil {
			return Page{}, err
		}
		page.Strips = append(page.Strips, s)
	}
	return page, nil
}

func (b *builder) strip(index int) (Strip, error) {
	cfg, plan := b.cfg, b.plan
	_, pos := plan.PageOf(index)
	first, last := plan.IsFirst(index), plan.IsLast(index)
	offset := plan.Offset(index)
	r := cfg.HoleRadius()
	join := cfg.Join.EffectiveWidth()

	top := cfg.MarginTop + float64(pos)*(cfg.TapeHeight+cfg.Gap)
	bottom := top + cfg.TapeHeight
	left := cfg.MarginLeft
	right := cfg.PageWidth - cfg.MarginRight - join
	if last {
		right = left + plan.TimeToWidth(notes.Duration(b.notes)) + offset + cfg.InteriorRight + r
	}

	outline := make(geom.Polygon, 0, 4+2*cfg.Join.Teeth+2)
	if first {
		outline = append(outline,
			geom.Pt(left, top),
			geom.Pt(left, top+cfg.TapeHeight-cfg.LeadInHeight),
			geom.Pt(left+cfg.LeadInWidth, bottom))
	} else {
		outline = append(outline, cfg.Join.Edge(left, top, cfg.TapeHeight)...)
	}
	if last {
		outline = append(outline, geom.Pt(right, bottom), geom.Pt(right, top))
	} else {
		outline = append(outline, cfg.Join.Edge(right, top, cfg.TapeHeight).Reversed()...)
	}

	texts := []Text{}
	if cfg.Title != "" {
		x := left + join + 1
		if first {
			x = left + cfg.LeadInWidth
		}
		texts = append(texts, Text{
			Position: geom.Pt(x, top+cfg.InteriorTop/2),
			Content:  fmt.Sprintf("%s (%d of %d)", cfg.Title, index+1, plan.StripCount),
			FontSize: cfg.InteriorTop / 2,
		})
	}

	lo, hi := plan.Span(index)
	spacing := cfg.RowSpacing()
	holes := []geom.Point{}
	for _, n := range b.notes {
		row, ok := cfg.Pitches.Row(n.Pitch)
		if !ok {
			return Strip{}, errors.InvalidNote(n.Pitch)
		}
		w := plan.TimeToWidth(n.Time)
		if w < lo {
			continue
		}
		// Notes are time ordered, so nothing after this fits either.
		if w > hi {
			break
		}
		y := float64(row)*spacing + cfg.InteriorTop
		holes = append(holes, geom.Pt(left+w+offset, top+y))
	}

	return Strip{Index: index, Texts: texts, Outline: outline, Holes: holes}, nil
}
