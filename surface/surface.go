// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// Surface is the raster capability a layer draws on.
//
// Coordinates are surface pixels after the current transform. Save and
// Restore bracket transform changes; Translate and Rotate compose onto the
// current transform. Rotate follows gg: positive angles turn clockwise on
// the y-down surface.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Resize reallocates the surface. Contents are discarded.
	Resize(width, height int) error

	// Clear makes every pixel transparent.
	Clear()

	// Save pushes the current transform.
	Save()

	// Restore pops the transform pushed by the matching Save.
	Restore()

	// Translate moves the origin by (x, y).
	Translate(x, y float64)

	// Rotate turns the coordinate system by angle radians.
	Rotate(angle float64)

	// FillRect fills the rectangle with c.
	FillRect(x, y, w, h float64, c color.Color)

	// StrokeRect outlines the rectangle with c.
	StrokeRect(x, y, w, h, lineWidth float64, c color.Color)

	// DrawImage draws img scaled into the w×h box at (x, y).
	DrawImage(img image.Image, x, y, w, h float64)

	// MeasureText returns the advance width of s at the given font size.
	MeasureText(s string, size float64) float64

	// DrawText draws s with its baseline starting at (x, y).
	DrawText(s string, x, y, size float64, c color.Color)

	// StrokePolyline strokes the open path through pts.
	StrokePolyline(pts []gg.Point, width float64, c color.Color)

	// InStroke reports whether p lies on the stroke of the open path
	// through pts with the given width. Both are in untransformed surface
	// pixels.
	InStroke(pts []gg.Point, width float64, p gg.Point) bool

	// Offscreen creates a new surface of the same kind, used to produce
	// reusable raster fragments.
	Offscreen(width, height int) (Surface, error)

	// Snapshot returns the current contents.
	Snapshot() image.Image
}
