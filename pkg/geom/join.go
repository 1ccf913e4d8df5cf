package geom

import (
	"fmt"
	"strings"
)

// JoinKind selects the shape of the edge that joins two strips.
type JoinKind int

const (
	// ZigZag joins strips with interlocking triangular teeth.
	ZigZag JoinKind = iota
	// Diagonal joins strips with a single slanted cut.
	Diagonal
	// Straight butts strips together with a vertical cut.
	Straight
)

var joinKindNames = map[JoinKind]string{
	ZigZag:   "zigzag",
	Diagonal: "diagonal",
	Straight: "straight",
}

func (k JoinKind) String() string {
	if s, ok := joinKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("JoinKind(%d)", int(k))
}

// ParseJoinKind parses a join kind name. Matching is case-insensitive and
// accepts "zig-zag" as an alias for "zigzag".
func ParseJoinKind(s string) (JoinKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zigzag", "zig-zag":
		return ZigZag, nil
	case "diagonal":
		return Diagonal, nil
	case "straight":
		return Straight, nil
	}
	return 0, fmt.Errorf("unknown join style %q (must be zigzag, diagonal, or straight)", s)
}

// JoinStyle describes a connecting edge. Width is the horizontal extent of
// the join; Teeth is only used by [ZigZag].
type JoinStyle struct {
	Kind  JoinKind
	Width float64
	Teeth int
}

// EffectiveWidth returns the horizontal material the join consumes. Straight
// joins abut and need none.
func (j JoinStyle) EffectiveWidth() float64 {
	if j.Kind == Straight {
		return 0
	}
	return j.Width
}

// Edge returns the edge points for a strip of the given height whose edge
// starts at (x, y) and runs down to y+height.
func (j JoinStyle) Edge(x, y, height float64) Polygon {
	switch j.Kind {
	case Diagonal:
		return Polygon{{x, y}, {x + j.Width, y + height}}
	case Straight:
		return Polygon{{x, y}, {x, y + height}}
	default:
		return zigZag(x, y, height, j.Width, j.Teeth)
	}
}

// zigZag alternates between x and x+width, one tooth per height/teeth band,
// and ends at the bottom-left.
func zigZag(x, y, height, width float64, teeth int) Polygon {
	if teeth < 1 {
		teeth = 1
	}
	band := height / float64(teeth)
	points := make(Polygon, 0, 2*teeth+1)
	for i := 0; i < teeth; i++ {
		top := y + float64(i)*band
		middle := y + float64(2*i+1)*band/2
		points = append(points, Point{x, top}, Point{x + width, middle})
	}
	return append(points, Point{x, y + height})
}
