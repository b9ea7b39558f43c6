// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"context"

	"github.com/gogpu/gg"

	"github.com/gogpu/gglayers/surface"
)

// PolylineItem is an open stroked path in caller units.
type PolylineItem struct {
	Points []gg.Point

	// Width is the stroke width. nil selects the layer default; a zero
	// width draws nothing.
	Width *float64

	// Color is a hex color. Empty selects the layer default.
	Color string
}

// StrokeWidth returns a pointer to w for PolylineItem.Width.
func StrokeWidth(w float64) *float64 {
	return &w
}

// PolylineStyle holds the defaults of a polyline layer.
type PolylineStyle struct {
	Width float64
	Color string
}

// DefaultPolylineStyle returns 1 unit black strokes.
func DefaultPolylineStyle() PolylineStyle {
	return PolylineStyle{
		Width: 1,
		Color: "#000000",
	}
}

// PolylineGeometry is the device-space path of a drawn polyline.
type PolylineGeometry struct {
	Points []gg.Point
	Width  float64
}

// PolylineLayer draws stroked polylines. Hit tests follow the stroke
// outline, not the bounding box.
type PolylineLayer = Layer[PolylineItem, PolylineGeometry]

// NewPolylineLayer creates an unconfigured polyline layer.
func NewPolylineLayer(opts ...Option) *PolylineLayer {
	o := buildOptions(opts)
	return newLayer[PolylineItem, PolylineGeometry]("polyline", &polylineKind{style: o.polyline}, o)
}

type polylineKind struct {
	style PolylineStyle
}

func (k *polylineKind) resolve(index int, it PolylineItem) (PolylineItem, error) {
	if it.Width == nil {
		if err := checkSize(-1, "width", k.style.Width); err != nil {
			return it, err
		}
		it.Width = StrokeWidth(k.style.Width)
	} else if err := checkSize(index, "width", *it.Width); err != nil {
		return it, err
	}
	var err error
	if it.Color, err = resolveColor(index, "color", it.Color, k.style.Color); err != nil {
		return it, err
	}
	return it, nil
}

// normalizePolyline snaps the vertices to whole pixels. The width is scaled
// but kept fractional.
func normalizePolyline(it PolylineItem, scale float64) PolylineGeometry {
	g := PolylineGeometry{
		Points: make([]gg.Point, len(it.Points)),
		Width:  1,
	}
	if it.Width != nil {
		g.Width = *it.Width
	}
	g.Width *= scale
	for i, p := range it.Points {
		g.Points[i] = gg.Pt(device(p.X, scale), device(p.Y, scale))
	}
	return g
}

func (k *polylineKind) draw(_ context.Context, e *env, it PolylineItem) (PolylineGeometry, Result, error) {
	g := normalizePolyline(it, e.scale)
	c, _ := parseColor(it.Color)
	if g.Width <= 0 || len(g.Points) < 2 || c == nil {
		return g, Result{}, nil
	}

	err := e.paint(func(s surface.Surface) error {
		s.StrokePolyline(g.Points, g.Width, c)
		return nil
	})
	if err != nil {
		return PolylineGeometry{}, Result{}, err
	}
	return g, Result{Drawn: true}, nil
}

func (*polylineKind) contains(s surface.Surface, g PolylineGeometry, p gg.Point) bool {
	return s.InStroke(g.Points, g.Width, p)
}
