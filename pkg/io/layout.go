package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/musicbox/pkg/errors"
	"github.com/matzehuels/musicbox/pkg/tape/layout"
)

// WriteLayout encodes l as indented JSON.
func WriteLayout(w io.Writer, l *layout.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

// ExportLayout writes l as JSON to path.
func ExportLayout(l *layout.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(f, l); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadLayout decodes a layout from r and checks that it can be rendered.
//
// ReadLayout returns an ErrCodeInvalidInput error if:
//   - The JSON is malformed
//   - The page size is not positive
//   - A strip outline has fewer than 3 points
func ReadLayout(r io.Reader) (*layout.Layout, error) {
	var l layout.Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	if l.PageWidth <= 0 || l.PageHeight <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "layout has no page size")
	}
	for i, p := range l.Pages {
		for _, s := range p.Strips {
			if len(s.Outline) < 3 {
				return nil, errors.New(errors.ErrCodeInvalidInput,
					"page %d strip %d: outline has %d points", i+1, s.Index+1, len(s.Outline))
			}
		}
	}
	return &l, nil
}

// ImportLayout reads a layout JSON file.
func ImportLayout(path string) (*layout.Layout, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f)
}
