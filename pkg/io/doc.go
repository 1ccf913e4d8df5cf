// Package io reads note sources and reads and writes computed layouts.
//
// # MIDI Import
//
// Use [ImportMIDI] to read a Standard MIDI File from a path, or [ReadMIDI] to
// read from any io.Reader:
//
//	src, err := io.ImportMIDI("song.mid")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ns, err := notes.Normalize(src, 1)
//
// Decoding is done by gitlab.com/gomidi/midi/v2/smf. Every track is kept,
// including the conductor track, so track indices match the file. A note-on
// with velocity 0 is a note-off by MIDI convention and is imported as one.
// Files with SMPTE timecode timing import with a non-positive division, which
// the layout engine rejects.
//
// # Layout JSON
//
// [WriteLayout] and [ExportLayout] serialize a [layout.Layout]; [ReadLayout]
// and [ImportLayout] read one back and check that it can be rendered. This
// is the format of `musicbox layout` output and of cached layouts.
//
// [layout.Layout]: github.com/matzehuels/musicbox/pkg/tape/layout.Layout
package io
