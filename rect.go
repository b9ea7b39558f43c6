// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/gogpu/gg"

	"github.com/gogpu/gglayers/surface"
)

// RectItem is an axis-aligned rectangle in caller units.
type RectItem struct {
	X, Y          float64
	Width, Height float64

	// Fill and Border are hex colors or ColorNone. Empty selects the layer
	// default.
	Fill   string
	Border string
}

// RectStyle holds the defaults of a rect layer.
type RectStyle struct {
	Fill   string
	Border string
	// BorderWidth is in caller units. The border is drawn inside the box.
	BorderWidth float64
}

// DefaultRectStyle returns white cells with a 1 unit black border.
func DefaultRectStyle() RectStyle {
	return RectStyle{
		Fill:        "#ffffff",
		Border:      "#000000",
		BorderWidth: 1,
	}
}

// RectGeometry is the device-space box of a drawn rect.
type RectGeometry struct {
	X, Y          float64
	Width, Height float64
}

// RectLayer draws rects and grids. Identical rects share one cached
// raster fragment.
type RectLayer = Layer[RectItem, RectGeometry]

// NewRectLayer creates an unconfigured rect layer.
func NewRectLayer(opts ...Option) *RectLayer {
	o := buildOptions(opts)
	return newLayer[RectItem, RectGeometry]("rect", &rectKind{style: o.rect}, o)
}

type rectKind struct {
	style RectStyle
}

func (k *rectKind) resolve(index int, it RectItem) (RectItem, error) {
	if err := checkSize(index, "width", it.Width); err != nil {
		return it, err
	}
	if err := checkSize(index, "height", it.Height); err != nil {
		return it, err
	}
	var err error
	if it.Fill, err = resolveColor(index, "fill", it.Fill, k.style.Fill); err != nil {
		return it, err
	}
	if it.Border, err = resolveColor(index, "border", it.Border, k.style.Border); err != nil {
		return it, err
	}
	return it, nil
}

// resolveColor picks value or, when empty, def, validates it and returns it
// in canonical form.
func resolveColor(index int, field, value, def string) (string, error) {
	if value == "" {
		value, index = def, -1
	}
	if _, err := parseColor(value); err != nil {
		return "", &StyleError{Index: index, Field: field, Value: value}
	}
	return canonicalColor(value), nil
}

func canonicalColor(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeRect snaps the origin to whole pixels and rounds the size up so
// that adjacent cells never leave a gap.
func normalizeRect(it RectItem, scale float64) RectGeometry {
	return RectGeometry{
		X:      device(it.X, scale),
		Y:      device(it.Y, scale),
		Width:  math.Ceil(it.Width * scale),
		Height: math.Ceil(it.Height * scale),
	}
}

// rectSignature keys the fragment cache. Position is not part of it.
func rectSignature(g RectGeometry, it RectItem) string {
	return fmt.Sprintf("%g:%g:%s:%s", g.Width, g.Height, it.Fill, it.Border)
}

func (k *rectKind) draw(_ context.Context, e *env, it RectItem) (RectGeometry, Result, error) {
	g := normalizeRect(it, e.scale)
	if g.Width <= 0 || g.Height <= 0 {
		return g, Result{}, nil
	}

	key := rectSignature(g, it)
	var hit bool
	err := e.paint(func(s surface.Surface) error {
		frag, cached, err := e.frags.GetOrCreate(key, func() (image.Image, error) {
			Logger().Debug("gglayers: rect fragment miss", "key", key)
			return k.fragment(s, g, it, e.scale)
		})
		if err != nil {
			return err
		}
		hit = cached
		s.DrawImage(frag, g.X, g.Y, g.Width, g.Height)
		return nil
	})
	if err != nil {
		return RectGeometry{}, Result{}, err
	}
	return g, Result{Drawn: true, CacheHit: hit}, nil
}

// fragment rasterizes a rect of size g at the origin of a new offscreen
// surface. Item colors were validated by resolve.
func (k *rectKind) fragment(s surface.Surface, g RectGeometry, it RectItem, scale float64) (image.Image, error) {
	off, err := s.Offscreen(int(g.Width), int(g.Height))
	if err != nil {
		return nil, fmt.Errorf("gglayers: rect fragment: %w", err)
	}
	fill, _ := parseColor(it.Fill)
	border, _ := parseColor(it.Border)

	if fill != nil {
		off.FillRect(0, 0, g.Width, g.Height, fill)
	}
	if bw := k.style.BorderWidth * scale; border != nil && bw > 0 {
		strokeInside(off, g, bw, border)
	}
	return off.Snapshot(), nil
}

// strokeInside strokes the box border so that the whole line stays inside
// the box.
func strokeInside(s surface.Surface, g RectGeometry, bw float64, c color.Color) {
	bw = math.Min(bw, math.Min(g.Width, g.Height)/2)
	s.StrokeRect(bw/2, bw/2, g.Width-bw, g.Height-bw, bw, c)
}

func (*rectKind) contains(_ surface.Surface, g RectGeometry, p gg.Point) bool {
	return inBox(p, g.X, g.Y, g.Width, g.Height)
}
