// Package pipeline runs the MIDI → layout → render pipeline shared by the CLI
// and the HTTP API.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{pipeline.FormatPDF}
//	result, err := runner.Execute(ctx, midiBytes, opts)
//	if err != nil {
//	    return err
//	}
//	pdf := result.Artifacts[pipeline.FormatPDF][0]
//
// Stages can also be run on their own: [Runner.GenerateLayout] turns MIDI
// bytes into a [layout.Layout], and [Runner.Render] turns a layout into
// artifacts. Both consult the runner's cache.
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/musicbox/pkg/cache"
	"github.com/matzehuels/musicbox/pkg/errors"
	"github.com/matzehuels/musicbox/pkg/geom"
	"github.com/matzehuels/musicbox/pkg/notes"
	"github.com/matzehuels/musicbox/pkg/tape/layout"
	"github.com/matzehuels/musicbox/pkg/tape/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTrack skips the conductor track of a format 1 file.
	DefaultTrack = 1

	DefaultCutColor     = "red"
	DefaultEngraveColor = "black"
	DefaultJoinStyle    = "zigzag"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// FormatFromPath infers the output format from a file extension. It returns
// "" for unknown extensions.
func FormatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ValidFormats[ext] {
		return ext
	}
	return ""
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. It is decoded from config files and API
// requests, so every field carries json, toml and yaml tags.
//
// Start from [DefaultOptions]: a zero Options gets the default layout, but a
// partially filled one is validated as given (see SetLayoutDefaults).
type Options struct {
	Track int `json:"track" toml:"track" yaml:"track"`

	// Layout options. Lengths are in mm.
	Notes          []int   `json:"notes,omitempty" toml:"notes" yaml:"notes"`
	TapeHeight     float64 `json:"tape_height" toml:"tape_height" yaml:"tape_height"`
	InteriorTop    float64 `json:"interior_top" toml:"interior_top" yaml:"interior_top"`
	InteriorBottom float64 `json:"interior_bottom" toml:"interior_bottom" yaml:"interior_bottom"`
	InteriorLeft   float64 `json:"interior_left" toml:"interior_left" yaml:"interior_left"`
	InteriorRight  float64 `json:"interior_right" toml:"interior_right" yaml:"interior_right"`
	Gap            float64 `json:"gap" toml:"gap" yaml:"gap"`
	HoleDiameter   float64 `json:"hole_diameter" toml:"hole_diameter" yaml:"hole_diameter"`
	PageWidth      float64 `json:"page_width" toml:"page_width" yaml:"page_width"`
	PageHeight     float64 `json:"page_height" toml:"page_height" yaml:"page_height"`
	MarginTop      float64 `json:"margin_top" toml:"margin_top" yaml:"margin_top"`
	MarginBottom   float64 `json:"margin_bottom" toml:"margin_bottom" yaml:"margin_bottom"`
	MarginLeft     float64 `json:"margin_left" toml:"margin_left" yaml:"margin_left"`
	MarginRight    float64 `json:"margin_right" toml:"margin_right" yaml:"margin_right"`
	CutStrokeWidth float64 `json:"cut_stroke_width" toml:"cut_stroke_width" yaml:"cut_stroke_width"`
	Stretch        float64 `json:"stretch" toml:"stretch" yaml:"stretch"`
	LeadInWidth    float64 `json:"lead_in_width" toml:"lead_in_width" yaml:"lead_in_width"`
	LeadInHeight   float64 `json:"lead_in_height" toml:"lead_in_height" yaml:"lead_in_height"`
	JoinStyle      string  `json:"join_style" toml:"join_style" yaml:"join_style"`
	JoinWidth      float64 `json:"join_width" toml:"join_width" yaml:"join_width"`
	NumZigZags     int     `json:"num_zigzags" toml:"num_zigzags" yaml:"num_zigzags"`
	Title          string  `json:"title,omitempty" toml:"title" yaml:"title"`
	Parallel       bool    `json:"parallel,omitempty" toml:"parallel" yaml:"parallel"`

	// Render options
	Formats      []string `json:"formats,omitempty" toml:"formats" yaml:"formats"`
	CutColor     string   `json:"cut_color,omitempty" toml:"cut_color" yaml:"cut_color"`
	EngraveColor string   `json:"engrave_color,omitempty" toml:"engrave_color" yaml:"engrave_color"`
	FontFile     string   `json:"font_file,omitempty" toml:"font_file" yaml:"font_file"`
	Scale        float64  `json:"scale,omitempty" toml:"scale" yaml:"scale"`

	// Runtime options (not serialized)
	Logger  *log.Logger `json:"-" toml:"-" yaml:"-"`
	Font    []byte      `json:"-" toml:"-" yaml:"-"` // TTF contents; overrides FontFile
	Refresh bool        `json:"-" toml:"-" yaml:"-"` // bypass cache reads
}

// DefaultOptions returns options matching [layout.DefaultConfig].
func DefaultOptions() Options {
	c := layout.DefaultConfig()
	pitches := make([]int, len(c.Pitches))
	for i, p := range c.Pitches {
		pitches[i] = int(p)
	}
	return Options{
		Track:          DefaultTrack,
		Notes:          pitches,
		TapeHeight:     c.TapeHeight,
		InteriorTop:    c.InteriorTop,
		InteriorBottom: c.InteriorBottom,
		InteriorLeft:   c.InteriorLeft,
		InteriorRight:  c.InteriorRight,
		Gap:            c.Gap,
		HoleDiameter:   c.HoleDiameter,
		PageWidth:      c.PageWidth,
		PageHeight:     c.PageHeight,
		MarginTop:      c.MarginTop,
		MarginBottom:   c.MarginBottom,
		MarginLeft:     c.MarginLeft,
		MarginRight:    c.MarginRight,
		CutStrokeWidth: c.CutStrokeWidth,
		Stretch:        c.Stretch,
		LeadInWidth:    c.LeadInWidth,
		LeadInHeight:   c.LeadInHeight,
		JoinStyle:      DefaultJoinStyle,
		JoinWidth:      c.Join.Width,
		NumZigZags:     c.Join.Teeth,
		CutColor:       DefaultCutColor,
		EngraveColor:   DefaultEngraveColor,
		Scale:          sink.DefaultScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Layout     *layout.Layout
	LayoutHash string

	// Artifacts maps format to rendered pages. PDF and JSON always have a
	// single element.
	Artifacts map[string][][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Strips     int
	Pages      int
	Holes      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all requested formats came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults fills the layout fields of an Options whose layout block
// is entirely unset. Once any dimension is given, zero values are kept so
// that validation can reject them.
func (o *Options) SetLayoutDefaults() {
	d := DefaultOptions()
	if len(o.Notes) == 0 {
		o.Notes = d.Notes
	}
	if o.JoinStyle == "" {
		o.JoinStyle = d.JoinStyle
	}
	if o.layoutUnset() {
		o.TapeHeight = d.TapeHeight
		o.InteriorTop = d.InteriorTop
		o.InteriorBottom = d.InteriorBottom
		o.InteriorLeft = d.InteriorLeft
		o.InteriorRight = d.InteriorRight
		o.Gap = d.Gap
		o.HoleDiameter = d.HoleDiameter
		o.PageWidth = d.PageWidth
		o.PageHeight = d.PageHeight
		o.MarginTop = d.MarginTop
		o.MarginBottom = d.MarginBottom
		o.MarginLeft = d.MarginLeft
		o.MarginRight = d.MarginRight
		o.CutStrokeWidth = d.CutStrokeWidth
		o.Stretch = d.Stretch
		o.LeadInWidth = d.LeadInWidth
		o.LeadInHeight = d.LeadInHeight
		o.JoinWidth = d.JoinWidth
		o.NumZigZags = d.NumZigZags
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (o *Options) layoutUnset() bool {
	for _, v := range []float64{
		o.TapeHeight, o.InteriorTop, o.InteriorBottom, o.InteriorLeft, o.InteriorRight,
		o.Gap, o.HoleDiameter, o.PageWidth, o.PageHeight,
		o.MarginTop, o.MarginBottom, o.MarginLeft, o.MarginRight,
		o.CutStrokeWidth, o.Stretch, o.LeadInWidth, o.LeadInHeight, o.JoinWidth,
	} {
		if v != 0 {
			return false
		}
	}
	return o.NumZigZags == 0
}

// ValidateForLayout sets defaults and checks that the options describe a
// valid layout configuration.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Track < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "track must be non-negative, got %d", o.Track)
	}
	_, err := o.LayoutConfig()
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.CutColor == "" {
		o.CutColor = DefaultCutColor
	}
	if o.EngraveColor == "" {
		o.EngraveColor = DefaultEngraveColor
	}
	setDefault(&o.Scale, sink.DefaultScale)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %g", o.Scale)
	}
	_, err := o.SinkOptions()
	return err
}

// LayoutConfig converts the layout options to a validated [layout.Config].
func (o *Options) LayoutConfig() (layout.Config, error) {
	pitches, err := notes.NewPitchList(o.Notes)
	if err != nil {
		return layout.Config{}, err
	}
	kind, err := geom.ParseJoinKind(o.JoinStyle)
	if err != nil {
		return layout.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "join style")
	}

	cfg := layout.Config{
		Pitches:        pitches,
		TapeHeight:     o.TapeHeight,
		InteriorTop:    o.InteriorTop,
		InteriorBottom: o.InteriorBottom,
		InteriorLeft:   o.InteriorLeft,
		InteriorRight:  o.InteriorRight,
		Gap:            o.Gap,
		HoleDiameter:   o.HoleDiameter,
		PageWidth:      o.PageWidth,
		PageHeight:     o.PageHeight,
		MarginTop:      o.MarginTop,
		MarginBottom:   o.MarginBottom,
		MarginLeft:     o.MarginLeft,
		MarginRight:    o.MarginRight,
		CutStrokeWidth: o.CutStrokeWidth,
		Stretch:        o.Stretch,
		LeadInWidth:    o.LeadInWidth,
		LeadInHeight:   o.LeadInHeight,
		Join:           geom.JoinStyle{Kind: kind, Width: o.JoinWidth, Teeth: o.NumZigZags},
		Title:          o.Title,
	}
	if err := cfg.Validate(); err != nil {
		return layout.Config{}, err
	}
	return cfg, nil
}

// SinkOptions converts the render options to renderer options, loading the
// font file if one is set.
func (o *Options) SinkOptions() ([]sink.Option, error) {
	cut, err := sink.ParseColor(o.CutColor)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cut color")
	}
	engrave, err := sink.ParseColor(o.EngraveColor)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "engrave color")
	}
	opts := []sink.Option{sink.WithCutColor(cut), sink.WithEngraveColor(engrave)}
	if o.Scale > 0 {
		opts = append(opts, sink.WithScale(o.Scale))
	}
	if font, err := o.fontData(); err != nil {
		return nil, err
	} else if font != nil {
		opts = append(opts, sink.WithFont(font))
	}
	return opts, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg, _ := o.LayoutConfig()
	return cache.LayoutKeyOpts{Track: o.Track, Config: cfg}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:       format,
		CutColor:     o.CutColor,
		EngraveColor: o.EngraveColor,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	if font, err := o.fontData(); err == nil && font != nil {
		k.FontHash = cache.Hash(font)
	}
	return k
}

func (o *Options) fontData() ([]byte, error) {
	if o.Font != nil || o.FontFile == "" {
		return o.Font, nil
	}
	data, err := loadFont(o.FontFile)
	if err != nil {
		return nil, err
	}
	o.Font = data
	return data, nil
}

func setDefault(v *float64, d float64) {
	if *v == 0 {
		*v = d
	}
}
