// Package fonts provides the TrueType fonts used to engrave strip labels.
//
// The default font is Go Regular, compiled into the binary via
// golang.org/x/image, so rendering never depends on system fonts. A user
// supplied TTF file can replace it for PDF and PNG output; SVG output names
// the font family and leaves glyph lookup to the viewer or laser software.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family written into SVG labels.
const FontFamily = `'Go', 'Helvetica', 'Arial', sans-serif`

// Regular returns the TTF data of the default font.
func Regular() []byte {
	return goregular.TTF
}

var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// Parse parses TTF data. A nil or empty slice yields the default font, which
// is parsed once and cached.
func Parse(ttf []byte) (*truetype.Font, error) {
	if len(ttf) == 0 {
		regularOnce.Do(func() {
			regular, regularErr = truetype.Parse(goregular.TTF)
		})
		return regular, regularErr
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

// Load reads a TTF file and checks that it parses.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Face returns a face rendering f at the given pixel size.
func Face(f *truetype.Font, px float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: px, DPI: 72, Hinting: font.HintingFull})
}
