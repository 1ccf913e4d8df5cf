package io

import (
	"bytes"
	"io"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/matzehuels/musicbox/pkg/errors"
	"github.com/matzehuels/musicbox/pkg/notes"
)

// ReadMIDI decodes a Standard MIDI File from r. ReadMIDI does not close r.
func ReadMIDI(r io.Reader) (notes.Source, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return notes.Source{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode midi")
	}

	src := notes.Source{
		Division: division(s.TimeFormat),
		Tracks:   make([]notes.Track, len(s.Tracks)),
	}
	for i, tr := range s.Tracks {
		src.Tracks[i] = convertTrack(tr)
	}
	return src, nil
}

// ParseMIDI decodes a Standard MIDI File held in memory.
func ParseMIDI(data []byte) (notes.Source, error) {
	return ReadMIDI(bytes.NewReader(data))
}

// ImportMIDI reads the Standard MIDI File at path.
func ImportMIDI(path string) (notes.Source, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return notes.Source{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return notes.Source{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadMIDI(f)
}

func division(tf smf.TimeFormat) int {
	switch t := tf.(type) {
	case smf.MetricTicks:
		return int(t)
	case smf.TimeCode:
		return -int(t.FramesPerSecond)
	}
	return 0
}

func convertTrack(tr smf.Track) notes.Track {
	out := notes.Track{Events: make([]notes.Event, 0, len(tr))}
	for _, ev := range tr {
		var ch, key, vel uint8
		var name string
		e := notes.Event{Delta: ev.Delta, Kind: notes.Meta}
		switch msg := ev.Message; {
		case msg.GetNoteStart(&ch, &key, &vel):
			e.Kind, e.Key, e.Velocity = notes.NoteOn, key, vel
		case msg.GetNoteEnd(&ch, &key):
			e.Kind, e.Key = notes.NoteOff, key
		case msg.GetMetaTrackName(&name):
			if out.Name == "" {
				out.Name = name
			}
		}
		out.Events = append(out.Events, e)
	}
	return out
}
