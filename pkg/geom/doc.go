// Package geom provides the 2D primitives used to describe a cut layout.
//
// All coordinates are in millimeters in page space: the origin is the top-left
// corner of the page and y grows downward.
//
// # Connecting Edges
//
// Adjacent strips of a long tape are joined by a connecting edge. [JoinStyle]
// is a closed set of edge shapes ([ZigZag], [Diagonal], [Straight]); each
// produces its point sequence via [JoinStyle.Edge], anchored at the top of the
// edge and running downward. The right edge of a strip is the same sequence
// traversed in reverse, so two neighbouring strips interlock.
package geom
