// Package layout computes the cut and engrave geometry of a music-box
// programming tape.
//
// # Overview
//
// A song is a row of holes on a long paper tape. Long songs do not fit on a
// page, so the tape is split into strips that are cut separately and joined
// edge to edge afterwards. [Build] takes a normalized note sequence (see
// package notes) and a [Config] and returns a [Layout]: pages of strips, each
// with a closed outline, the hole centers and an optional label.
//
// # Packing
//
// [NewPlan] decides how many strips are needed and where each one starts on
// the musical timeline. The first strip loses width to the lead-in, the last
// strip is cut to the length of the song, and every strip but the last gives
// up the join width to its right-hand connecting edge. Strips are stacked
// top to bottom on a page, as many as fit, and strip i lands on page
// i/StripsPerPage.
//
// # Kerf
//
// Coordinates are nominal. Renderers are expected to draw holes at
// [Layout.CutHoleRadius], half a cut stroke smaller than the nominal radius,
// and to stroke outlines at twice the cut width clipped to the outline itself,
// so that the material left after cutting has the nominal size.
package layout
