package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/musicbox/pkg/io"
	"github.com/matzehuels/musicbox/pkg/notes"
	"github.com/matzehuels/musicbox/pkg/observability"
)

// Parse decodes a Standard MIDI File.
func Parse(ctx context.Context, midi []byte) (notes.Source, error) {
	if err := ctx.Err(); err != nil {
		return notes.Source{}, err
	}
	start := time.Now()
	src, err := io.ParseMIDI(midi)
	observability.Pipeline().OnImportComplete(ctx, len(src.Tracks), time.Since(start), err)
	return src, err
}

// TrackInfo summarizes one track of a MIDI file.
type TrackInfo struct {
	Index   int             `json:"index"`
	Name    string          `json:"name,omitempty"`
	Notes   int             `json:"notes"`
	Pitches notes.PitchList `json:"pitches"`
}

// Tracks lists the tracks of src with their note counts and the tape
// pitches each one uses.
func Tracks(src notes.Source) []TrackInfo {
	infos := make([]TrackInfo, len(src.Tracks))
	for i, t := range src.Tracks {
		infos[i] = TrackInfo{
			Index:   i,
			Name:    t.Name,
			Notes:   t.NoteCount(),
			Pitches: notes.UsedPitches(t),
		}
	}
	return infos
}
