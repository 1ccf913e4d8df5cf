package geom

import "fmt"

// Point is a position in millimeters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) String() string { return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y) }

// Polygon is an ordered point sequence. The last point implicitly connects
// back to the first.
type Polygon []Point

// Reversed returns a copy of p with the point order reversed.
func (p Polygon) Reversed() Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

// Contains reports whether pt lies inside the closed polygon using the
// even-odd rule. Points exactly on an edge may report either way.
func (p Polygon) Contains(pt Point) bool {
	inside := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the top-left and bottom-right corners of the axis-aligned
// bounding box. An empty polygon yields two zero points.
func (p Polygon) Bounds() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min, max = p[0], p[0]
	for _, pt := range p[1:] {
		min.X, min.Y = minf(min.X, pt.X), minf(min.Y, pt.Y)
		max.X, max.Y = maxf(max.X, pt.X), maxf(max.Y, pt.Y)
	}
	return min, max
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
