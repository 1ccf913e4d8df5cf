package notes

import "fmt"

// Kind distinguishes sounding events from everything else in a track.
type Kind uint8

const (
	// Meta covers every event that neither starts nor ends a note.
	Meta Kind = iota
	// NoteOn starts a note.
	NoteOn
	// NoteOff ends a note.
	NoteOff
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	default:
		return "meta"
	}
}

// Event is a single track event. Key and Velocity are only meaningful for
// NoteOn and NoteOff.
type Event struct {
	Delta    uint32
	Kind     Kind
	Key      uint8
	Velocity uint8
}

// Track is an ordered list of events.
type Track struct {
	Name   string
	Events []Event
}

// NoteCount returns the number of note-on events in the track.
func (t Track) NoteCount() int {
	return fold(t.Events, 0, func(n int, e Event) int {
		if e.Kind == NoteOn {
			n++
		}
		return n
	})
}

// Source is a decoded note container. A non-positive Division indicates
// timecode-based timing, which the layout engine cannot use.
type Source struct {
	Division int
	Tracks   []Track
}

// Note is a note-on at an absolute time.
type Note struct {
	Time  uint64 `json:"time"`
	Pitch uint8  `json:"pitch"`
}

func (n Note) String() string { return fmt.Sprintf("%d@%d", n.Pitch, n.Time) }

// TapePitch converts a MIDI key to a tape pitch.
func TapePitch(key uint8) uint8 { return 128 - key }
