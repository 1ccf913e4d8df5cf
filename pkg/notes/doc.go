// Package notes turns a decoded note-event container into the ordered note
// sequence consumed by the tape layout engine.
//
// # Input Model
//
// A [Source] holds the division (ticks per quarter note) and the tracks of a
// decoded file. Each [Track] is an ordered list of [Event] values carrying a
// delta time relative to the previous event. Only [NoteOn] events produce
// notes; [NoteOff] and [Meta] events still advance the clock.
//
// # Normalization
//
// [Normalize] folds a track's events into absolute-time notes, sorts them,
// and re-bases time so the first note starts at tick 0:
//
//	ns, err := notes.Normalize(src, 1)
//	if errors.Is(err, errors.ErrCodeEmptyTrack) {
//	    // pick a different track
//	}
//
// # Tape Pitch
//
// Notes carry a tape pitch, 128 minus the MIDI key, so that higher rows on
// the tape correspond to lower sounding notes. A [PitchList] maps tape
// pitches to row indices: the row of a pitch is the position of its first
// occurrence. The list does not need to be sorted.
package notes
