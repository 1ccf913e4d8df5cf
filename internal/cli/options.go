package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/musicbox/pkg/notes"
	"github.com/matzehuels/musicbox/pkg/pipeline"
)

// optionFlags binds pipeline options to command flags. Flags write straight
// into opts; a --config file replaces opts and the explicitly set flags are
// then replayed on top of it.
type optionFlags struct {
	opts    pipeline.Options
	config  string
	notes   string
	formats string
}

func newOptionFlags() *optionFlags {
	return &optionFlags{opts: pipeline.DefaultOptions()}
}

// registerLayout adds the tape and page geometry flags. Names follow the
// historical lasermidi flags.
func (f *optionFlags) registerLayout(cmd *cobra.Command) {
	o := &f.opts
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "read options from a .toml, .yaml or .json file")
	fs.IntVarP(&o.Track, "track-num", "t", o.Track, "track number to process (0 is usually the conductor track)")
	fs.StringVarP(&f.notes, "notes", "n", "", "comma-separated tape pitches supported by your music box (default: 30-note box)")
	fs.Float64Var(&o.TapeHeight, "tape-height", o.TapeHeight, "height of the programming tape")
	fs.Float64Var(&o.InteriorTop, "space-above-top-row", o.InteriorTop, "space between the tape edge and the first row")
	fs.Float64Var(&o.InteriorBottom, "space-below-bottom-row", o.InteriorBottom, "space between the last row and the tape edge")
	fs.Float64Var(&o.InteriorLeft, "space-before-first-note", o.InteriorLeft, "space between the end of the lead-in and the first note")
	fs.Float64Var(&o.InteriorRight, "space-after-last-note", o.InteriorRight, "space between the last note and the end of the tape")
	fs.Float64Var(&o.Gap, "space-between-strips", o.Gap, "vertical space between strips on a page")
	fs.Float64Var(&o.HoleDiameter, "hole-diameter", o.HoleDiameter, "diameter of each hole")
	fs.Float64Var(&o.PageWidth, "page-width", o.PageWidth, "page width")
	fs.Float64Var(&o.PageHeight, "page-height", o.PageHeight, "page height")
	fs.Float64Var(&o.MarginLeft, "margin-left", o.MarginLeft, "left page margin")
	fs.Float64Var(&o.MarginRight, "margin-right", o.MarginRight, "right page margin")
	fs.Float64Var(&o.MarginTop, "margin-top", o.MarginTop, "top page margin")
	fs.Float64Var(&o.MarginBottom, "margin-bottom", o.MarginBottom, "bottom page margin")
	fs.Float64Var(&o.CutStrokeWidth, "cut-stroke-width", o.CutStrokeWidth, "width of cut lines; should equal the kerf")
	fs.Float64Var(&o.Stretch, "stretch", o.Stretch, "horizontal scale in mm per beat")
	fs.Float64Var(&o.LeadInWidth, "lead-in-width", o.LeadInWidth, "width of the lead-in diagonal")
	fs.Float64Var(&o.LeadInHeight, "lead-in-height", o.LeadInHeight, "height of the lead-in diagonal")
	fs.StringVar(&o.JoinStyle, "join-style", o.JoinStyle, "connecting edge: zigzag, diagonal or straight")
	fs.IntVar(&o.NumZigZags, "connecting-edge-num-teeth", o.NumZigZags, "number of zig-zags in connecting edges")
	fs.Float64Var(&o.JoinWidth, "connecting-edge-join-width", o.JoinWidth, "width of connecting edges")
	fs.StringVar(&o.Title, "title", o.Title, "song title engraved on every strip")
	fs.BoolVar(&o.Parallel, "parallel", o.Parallel, "build pages concurrently")
}

// registerRender adds the output styling flags.
func (f *optionFlags) registerRender(cmd *cobra.Command) {
	o := &f.opts
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg, pdf, png, json (default: from output extension)")
	fs.StringVar(&o.CutColor, "cut-color", o.CutColor, "color of lines to be cut (CSS name, #rrggbb or rgb())")
	fs.StringVar(&o.EngraveColor, "engrave-color", o.EngraveColor, "color of engraved text")
	fs.StringVar(&o.FontFile, "font-file", "", "TTF font for engraved text (pdf, png)")
	fs.Float64Var(&o.Scale, "scale", o.Scale, "png resolution in pixels per mm")
}

// resolve returns the effective options: config file values overridden by
// explicitly set flags.
func (f *optionFlags) resolve(cmd *cobra.Command) (pipeline.Options, error) {
	fs := cmd.Flags()
	if f.config != "" {
		changed := map[string]string{}
		fs.Visit(func(fl *pflag.Flag) { changed[fl.Name] = fl.Value.String() })

		base, err := pipeline.LoadConfig(f.config)
		if err != nil {
			return pipeline.Options{}, err
		}
		f.opts = base
		for name, v := range changed {
			if err := fs.Set(name, v); err != nil {
				return pipeline.Options{}, err
			}
		}
	}

	if f.notes != "" {
		pitches, err := notes.ParsePitchList(f.notes)
		if err != nil {
			return pipeline.Options{}, err
		}
		f.opts.Notes = make([]int, len(pitches))
		for i, p := range pitches {
			f.opts.Notes[i] = int(p)
		}
	}
	if fs.Lookup("format") != nil && f.formats != "" {
		f.opts.Formats = parseFormats(f.formats)
	}
	return f.opts, nil
}
