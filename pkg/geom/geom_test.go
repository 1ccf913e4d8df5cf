package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestZigZagEdge(t *testing.T) {
	j := JoinStyle{Kind: ZigZag, Width: 5, Teeth: 5}
	edge := j.Edge(10, 20, 50)

	if len(edge) != 11 {
		t.Fatalf("len(edge) = %d, want 11", len(edge))
	}
	want := Polygon{
		{10, 20}, {15, 25},
		{10, 30}, {15, 35},
		{10, 40}, {15, 45},
		{10, 50}, {15, 55},
		{10, 60}, {15, 65},
		{10, 70},
	}
	for i := range want {
		if !near(edge[i].X, want[i].X) || !near(edge[i].Y, want[i].Y) {
			t.Errorf("edge[%d] = %v, want %v", i, edge[i], want[i])
		}
	}
}

func TestEdgeShapes(t *testing.T) {
	tests := []struct {
		name  string
		style JoinStyle
		want  Polygon
	}{
		{"diagonal", JoinStyle{Kind: Diagonal, Width: 5}, Polygon{{0, 0}, {5, 10}}},
		{"straight", JoinStyle{Kind: Straight, Width: 5}, Polygon{{0, 0}, {0, 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.style.Edge(0, 0, 10)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEffectiveWidth(t *testing.T) {
	tests := []struct {
		kind JoinKind
		want float64
	}{
		{ZigZag, 5},
		{Diagonal, 5},
		{Straight, 0},
	}
	for _, tt := range tests {
		j := JoinStyle{Kind: tt.kind, Width: 5, Teeth: 3}
		if got := j.EffectiveWidth(); got != tt.want {
			t.Errorf("%v.EffectiveWidth() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestParseJoinKind(t *testing.T) {
	tests := []struct {
		in      string
		want    JoinKind
		wantErr bool
	}{
		{"zigzag", ZigZag, false},
		{"Zig-Zag", ZigZag, false},
		{"diagonal", Diagonal, false},
		{" STRAIGHT ", Straight, false},
		{"wavy", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseJoinKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseJoinKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseJoinKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if ZigZag.String() != "zigzag" {
		t.Errorf("ZigZag.String() = %q", ZigZag.String())
	}
}

func TestPolygonContains(t *testing.T) {
	square := Polygon{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !square.Contains(Pt(5, 5)) {
		t.Error("center should be inside")
	}
	if square.Contains(Pt(15, 5)) {
		t.Error("point to the right should be outside")
	}

	min, max := square.Bounds()
	if min != Pt(0, 0) || max != Pt(10, 10) {
		t.Errorf("Bounds() = %v, %v", min, max)
	}
}

func TestReversed(t *testing.T) {
	p := Polygon{{1, 1}, {2, 2}, {3, 3}}
	r := p.Reversed()
	if r[0] != p[2] || r[2] != p[0] {
		t.Errorf("Reversed() = %v", r)
	}
	if p[0] != Pt(1, 1) {
		t.Error("Reversed must not modify the receiver")
	}
}
