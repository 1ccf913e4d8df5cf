// Package pkg provides the libraries behind musicbox, a layout engine for
// music-box punch tape.
//
// # Overview
//
// A crank music box plays a strip of paper with a hole for every note. Each
// row of the tape is one pitch of the box's comb; the horizontal position of
// a hole is the time the note sounds. musicbox turns one track of a Standard
// MIDI File into the cut files for such a tape, split into strips that fit a
// page and joined end to end after cutting.
//
// # Architecture
//
//	MIDI file
//	    ↓
//	[io]            decode SMF into tracks of note events
//	    ↓
//	[notes]         pair note-on/off, sort, re-base to the first note
//	    ↓
//	[tape/layout]   plan strips and pages, place holes and outlines
//	    ↓
//	[tape/sink]     SVG, PDF, PNG or JSON
//
// [pipeline] strings these together with option validation, config files and
// a content-addressed [cache]. The CLI and the HTTP API both go through it.
//
// # Quick Start
//
//	src, _ := io.ImportMIDI("song.mid")
//	l, _ := layout.FromSource(src, 1, layout.DefaultConfig())
//	pages, _ := sink.RenderSVG(l)
//
// # Main Packages
//
// [notes] - Note events, tape pitches (128 minus the MIDI key) and the
// normalization of a raw track into sorted, re-based notes.
//
// [geom] - Points, polygons and the connecting edges (zig-zag, diagonal,
// straight) that join strips.
//
// [tape/layout] - The layout engine. [layout.NewPlan] computes the strip
// count, per-strip offsets and pagination; [layout.Build] fills in outlines,
// holes and labels, optionally one goroutine per page.
//
// [tape/sink] - Renderers. Outlines are stroked at twice the cut width and
// clipped so the kerf falls outside the strip.
//
// [io] - SMF decoding and layout JSON import/export.
//
// [fonts] - The embedded label font and TTF loading.
//
// [errors] - Error codes shared by the CLI and the API.
//
// [cache] - File, Redis and null caches with TTLs and key derivation.
//
// [observability] - Hooks for pipeline, cache and server events.
//
// [buildinfo] - Version information injected at build time.
//
// [io]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/io
// [notes]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/notes
// [geom]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/geom
// [tape/layout]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/tape/layout
// [tape/sink]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/tape/sink
// [layout.NewPlan]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/tape/layout#NewPlan
// [layout.Build]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/tape/layout#Build
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/cache
// [fonts]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/fonts
// [errors]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/musicbox/pkg/buildinfo
package pkg
