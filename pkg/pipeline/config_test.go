package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/musicbox/pkg/errors"
)

func TestDecodeConfig(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"toml", ".toml", `
track = 2
stretch = 12.5
join_style = "diagonal"
notes = [40, 42, 44]
title = "Lullaby"
`},
		{"yaml", ".yaml", `
track: 2
stretch: 12.5
join_style: diagonal
notes: [40, 42, 44]
title: Lullaby
`},
		{"json", ".json", `{"track": 2, "stretch": 12.5, "join_style": "diagonal", "notes": [40, 42, 44], "title": "Lullaby"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := DecodeConfig([]byte(tt.data), tt.ext)
			if err != nil {
				t.Fatalf("DecodeConfig: %v", err)
			}
			if opts.Track != 2 || opts.Stretch != 12.5 || opts.JoinStyle != "diagonal" || opts.Title != "Lullaby" {
				t.Errorf("decoded = %+v", opts)
			}
			if len(opts.Notes) != 3 {
				t.Errorf("Notes = %v, want 3 entries", opts.Notes)
			}
			// Unset keys keep their defaults.
			if opts.TapeHeight != 68.6 || opts.CutColor != DefaultCutColor {
				t.Errorf("defaults lost: tape=%g cut=%s", opts.TapeHeight, opts.CutColor)
			}
		})
	}
}

func TestDecodeConfigRejectsUnknownKeys(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml", ".json"} {
		var data string
		switch ext {
		case ".toml":
			data = "strech = 3.0\n"
		case ".yaml":
			data = "strech: 3\n"
		case ".json":
			data = `{"strech": 3}`
		}
		if _, err := DecodeConfig([]byte(data), ext); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("DecodeConfig(%s) error = %v, want INVALID_CONFIG", ext, err)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.toml")
	if err := os.WriteFile(path, []byte("gap = 4.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if opts.Gap != 4 {
		t.Errorf("Gap = %g, want 4", opts.Gap)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := DecodeConfig(nil, ".ini"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf(".ini error = %v, want INVALID_CONFIG", err)
	}
}

func TestExampleConfigs(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example configs")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			opts, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error: %v", err)
			}
			opts.SetLayoutDefaults()
			if err := opts.ValidateForLayout(); err != nil {
				t.Errorf("ValidateForLayout() error: %v", err)
			}
		})
	}
}
