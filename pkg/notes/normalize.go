package notes

import (
	"cmp"
	"slices"

	"github.com/matzehuels/musicbox/pkg/errors"
)

// fold reduces xs into acc from left to right.
func fold[T, A any](xs []T, acc A, f func(A, T) A) A {
	for _, x := range xs {
		acc = f(acc, x)
	}
	return acc
}

// clock is the accumulator threaded through a track's events.
type clock struct {
	now   uint64
	notes []Note
}

// Normalize extracts the notes of one track from src. The result is sorted by
// time (ties by pitch) and the earliest note is at time 0.
//
// Errors carry the codes ErrCodeUnsupportedDivision when src uses timecode
// timing, ErrCodeTrackNotFound when track is out of range, and
// ErrCodeEmptyTrack when the track has no note-on events.
func Normalize(src Source, track int) ([]Note, error) {
	if src.Division <= 0 {
		return nil, errors.New(errors.ErrCodeUnsupportedDivision,
			"timecode division %d is not supported", src.Division)
	}
	if track < 0 || track >= len(src.Tracks) {
		return nil, errors.New(errors.ErrCodeTrackNotFound,
			"track %d not found (file has %d tracks)", track, len(src.Tracks))
	}

	collected := fold(src.Tracks[track].Events, clock{}, func(c clock, e Event) clock {
		c.now += uint64(e.Delta)
		if e.Kind == NoteOn {
			c.notes = append(c.notes, Note{Time: c.now, Pitch: TapePitch(e.Key)})
		}
		return c
	})
	if len(collected.notes) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyTrack, "track %d has no notes", track)
	}
	return Renormalize(collected.notes), nil
}

// Renormalize sorts ns and shifts it so the earliest note is at time 0. It
// returns a new slice and is idempotent.
func Renormalize(ns []Note) []Note {
	out := slices.Clone(ns)
	slices.SortStableFunc(out, func(a, b Note) int {
		if c := cmp.Compare(a.Time, b.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.Pitch, b.Pitch)
	})
	if len(out) == 0 {
		return out
	}
	start := out[0].Time
	for i := range out {
		out[i].Time -= start
	}
	return out
}

// Duration returns the time of the last note in a normalized sequence.
func Duration(ns []Note) uint64 {
	if len(ns) == 0 {
		return 0
	}
	return ns[len(ns)-1].Time
}
