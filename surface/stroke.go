// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "github.com/gogpu/gg"

// StrokeContains reports whether p is covered by the stroke of the open
// polyline pts drawn with the given width, butt caps and round joins.
//
// A point is on the stroke when it lies within width/2 of a segment and
// its projection falls inside the segment, or within width/2 of an
// interior vertex. Boundary points count as inside.
func StrokeContains(pts []gg.Point, width float64, p gg.Point) bool {
	if len(pts) < 2 || width <= 0 {
		return false
	}
	half := width / 2
	r2 := half * half

	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		ab := b.Sub(a)
		l2 := ab.LengthSquared()
		if l2 == 0 {
			continue
		}
		t := p.Sub(a).Dot(ab) / l2
		if t < 0 || t > 1 {
			continue
		}
		foot := a.Add(ab.Mul(t))
		if p.Sub(foot).LengthSquared() <= r2 {
			return true
		}
	}

	// Round joins.
	for i := 1; i+1 < len(pts); i++ {
		if p.Sub(pts[i]).LengthSquared() <= r2 {
			return true
		}
	}
	return false
}
