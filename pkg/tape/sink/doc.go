// Package sink renders a computed [layout.Layout] into output files.
//
// # Overview
//
// Every renderer implements [Canvas], a small drawing capability that
// receives one call per page, outline, hole and label. [Draw] walks a layout
// and drives a canvas; the layout engine itself never imports this package.
//
//   - SVG: one document per page, for laser cutters ([RenderSVG])
//   - PDF: one multi-page document ([RenderPDF])
//   - PNG: one raster preview per page ([RenderPNG])
//   - JSON: the layout itself ([RenderJSON])
//
// # Kerf
//
// Outlines are stroked at twice the cut width and clipped to the outline, so
// only the inner half of the stroke is cut and the strip keeps its nominal
// size. Holes are drawn at [layout.Layout.CutHoleRadius]; in SVG they share
their strip's clip group, so a hole that straddles a join is cut only up to
the strip edge.
//
// # Options
//
// All renderers share [Option]:
//
//	pages, err := sink.RenderSVG(l,
//	    sink.WithCutColor(red),
//	    sink.WithEngraveColor(black),
//	)
package sink
