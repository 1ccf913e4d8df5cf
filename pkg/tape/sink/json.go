package sink

import (
	"encoding/json"

	"github.com/matzehuels/musicbox/pkg/tape/layout"
)

// jsonOutput adds the render settings a consumer needs to reproduce the cut
// without the options that produced it.
type jsonOutput struct {
	*layout.Layout
	CutHoleRadius float64 `json:"cut_hole_radius"`
	CutColor      string  `json:"cut_color"`
	EngraveColor  string  `json:"engrave_color"`
}

// RenderJSON exports the layout as a pretty-printed JSON document. The
// document decodes back into a [layout.Layout].
func RenderJSON(l *layout.Layout, opts ...Option) ([]byte, error) {
	s := newStyle(opts)
	return json.MarshalIndent(jsonOutput{
		Layout:        l,
		CutHoleRadius: l.CutHoleRadius(),
		CutColor:      cssColor(s.cut),
		EngraveColor:  cssColor(s.engrave),
	}, "", "  ")
}
