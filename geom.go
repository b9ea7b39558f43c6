// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"math"
	"strconv"

	"github.com/gogpu/gg"
)

// device converts a caller-unit value to whole device pixels.
func device(v, scale float64) float64 {
	return math.Round(v * scale)
}

// inBox reports whether p lies in the closed box [x, x+w] × [y, y+h].
func inBox(p gg.Point, x, y, w, h float64) bool {
	return p.X >= x && p.X <= x+w && p.Y >= y && p.Y <= y+h
}

// unrotate maps p into the unrotated frame of a box drawn rotated by angle
// around origin and shifted by offset, so that a plain inBox test at origin
// answers whether the rotated box contains p.
func unrotate(p, origin gg.Point, angle float64, offset gg.Point) gg.Point {
	if angle == 0 {
		return p.Sub(offset)
	}
	q := gg.Rotate(-angle).TransformPoint(p.Sub(origin))
	return origin.Add(q).Sub(offset)
}

// checkSize rejects negative and non-finite sizes. Zero is allowed and
// means the item is skipped or a default applies.
func checkSize(index int, field string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return &StyleError{Index: index, Field: field, Value: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return nil
}
