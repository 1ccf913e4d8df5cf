package notes

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/musicbox/pkg/errors"
)

// PitchList assigns tape rows: the row of a pitch is the index of its first
// occurrence. Lookup is a linear scan and imposes no ordering on the list.
type PitchList []uint8

// Row returns the row index of pitch and whether it was found.
func (l PitchList) Row(pitch uint8) (int, bool) {
	for i, p := range l {
		if p == pitch {
			return i, true
		}
	}
	return 0, false
}

// Rows returns the number of rows on the tape.
func (l PitchList) Rows() int { return len(l) }

func (l PitchList) String() string {
	parts := make([]string, len(l))
	for i, p := range l {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, ",")
}

// MarshalJSON encodes the list as an array of numbers rather than the
// base64 string encoding/json uses for byte slices.
func (l PitchList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("null"), nil
	}
	return []byte("[" + l.String() + "]"), nil
}

// NewPitchList validates ints (as read from flags or config files) and
// converts them to a PitchList.
func NewPitchList(pitches []int) (PitchList, error) {
	if err := errors.ValidatePitchList(pitches); err != nil {
		return nil, err
	}
	l := make(PitchList, len(pitches))
	for i, p := range pitches {
		l[i] = uint8(p)
	}
	return l, nil
}

// ParsePitchList parses a comma-separated list such as "40,42,44".
func ParsePitchList(s string) (PitchList, error) {
	var pitches []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		p, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid pitch %q", field)
		}
		pitches = append(pitches, p)
	}
	return NewPitchList(pitches)
}

// UsedPitches returns the distinct tape pitches played by a track, sorted
// ascending. The result is a ready-made pitch list for that track.
func UsedPitches(t Track) PitchList {
	seen := fold(t.Events, map[uint8]bool{}, func(m map[uint8]bool, e Event) map[uint8]bool {
		if e.Kind == NoteOn {
			m[TapePitch(e.Key)] = true
		}
		return m
	})
	out := make(PitchList, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
