package notes

import (
	"slices"
	"testing"

	"github.com/matzehuels/musicbox/pkg/errors"
)

func on(delta uint32, key uint8) Event {
	return Event{Delta: delta, Kind: NoteOn, Key: key, Velocity: 100}
}

func off(delta uint32, key uint8) Event {
	return Event{Delta: delta, Kind: NoteOff, Key: key}
}

func meta(delta uint32) Event {
	return Event{Delta: delta, Kind: Meta}
}

func TestNormalize(t *testing.T) {
	src := Source{
		Division: 96,
		Tracks: []Track{
			{Name: "conductor", Events: []Event{meta(0), meta(10)}},
			{Name: "melody", Events: []Event{
				meta(48),
				on(48, 68),  // t=96
				off(96, 68), // t=192
				on(0, 64),   // t=192
				on(0, 60),   // t=192
				on(96, 72),  // t=288
			}},
		},
	}

	got, err := Normalize(src, 1)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := []Note{
		{Time: 0, Pitch: 60},
		{Time: 96, Pitch: 64},
		{Time: 96, Pitch: 68},
		{Time: 192, Pitch: 56},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
	if got[0].Time != 0 {
		t.Errorf("first time = %d, want 0", got[0].Time)
	}
	if d := Duration(got); d != 192 {
		t.Errorf("Duration() = %d, want 192", d)
	}
}

func TestNormalizeErrors(t *testing.T) {
	tracks := []Track{
		{Events: []Event{on(0, 60)}},
		{Events: []Event{meta(0), meta(96), off(10, 60)}},
	}

	tests := []struct {
		name  string
		src   Source
		track int
		code  errors.Code
	}{
		{"zero division", Source{Division: 0, Tracks: tracks}, 0, errors.ErrCodeUnsupportedDivision},
		{"timecode division", Source{Division: -25, Tracks: tracks}, 0, errors.ErrCodeUnsupportedDivision},
		{"track == count", Source{Division: 96, Tracks: tracks}, 2, errors.ErrCodeTrackNotFound},
		{"negative track", Source{Division: 96, Tracks: tracks}, -1, errors.ErrCodeTrackNotFound},
		{"meta only", Source{Division: 96, Tracks: tracks}, 1, errors.ErrCodeEmptyTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.src, tt.track)
			if got != nil {
				t.Errorf("Normalize() = %v, want nil", got)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Normalize() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestRenormalizeIdempotent(t *testing.T) {
	src := Source{Division: 480, Tracks: []Track{{Events: []Event{
		on(1000, 50), on(0, 52), on(240, 50), on(0, 40), on(480, 55),
	}}}}

	once, err := Normalize(src, 0)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	twice := Renormalize(once)
	if !slices.Equal(once, twice) {
		t.Errorf("Renormalize(normalized) = %v, want %v", twice, once)
	}
	for i := 1; i < len(once); i++ {
		if once[i].Time < once[i-1].Time {
			t.Fatalf("notes not sorted at %d: %v", i, once)
		}
	}
}

func TestRenormalizeDoesNotModifyInput(t *testing.T) {
	in := []Note{{Time: 50, Pitch: 1}, {Time: 10, Pitch: 2}}
	out := Renormalize(in)
	if in[0].Time != 50 || in[1].Time != 10 {
		t.Errorf("input modified: %v", in)
	}
	if out[0] != (Note{Time: 0, Pitch: 2}) || out[1] != (Note{Time: 40, Pitch: 1}) {
		t.Errorf("Renormalize() = %v", out)
	}
	if len(Renormalize(nil)) != 0 {
		t.Error("Renormalize(nil) should be empty")
	}
}

func TestNoteCount(t *testing.T) {
	tr := Track{Events: []Event{on(0, 60), off(10, 60), meta(0), on(0, 61)}}
	if got := tr.NoteCount(); got != 2 {
		t.Errorf("NoteCount() = %d, want 2", got)
	}
}
