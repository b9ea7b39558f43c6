// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"context"
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/gglayers/surface"
)

// MarkerItem is an icon drawn at a point, optionally rotated about it.
type MarkerItem struct {
	// X, Y is the marker origin and the rotation center.
	X, Y float64

	// Width and Height are the drawn icon size. Zero selects the layer
	// default, then the natural icon size.
	Width, Height float64

	// Rotation is clockwise, in radians.
	Rotation float64

	// AnchorX, AnchorY offset the icon from the origin before rotation.
	// (-Width/2, -Height) puts the bottom center of the icon on the origin.
	AnchorX, AnchorY float64

	// Icon is the source handed to the layer's Decoder. Empty selects the
	// layer default; markers without any icon are skipped.
	Icon string
}

// MarkerStyle holds the defaults of a marker layer.
type MarkerStyle struct {
	Icon          string
	Width, Height float64
}

// DefaultMarkerStyle returns a style without default icon, sizing markers
// by their icon.
func DefaultMarkerStyle() MarkerStyle {
	return MarkerStyle{}
}

// MarkerGeometry is the device-space placement of a drawn marker.
type MarkerGeometry struct {
	X, Y             float64
	Width, Height    float64
	AnchorX, AnchorY float64
	Rotation         float64
}

// MarkerLayer draws icons. Each icon source is decoded once and shared
// by every marker using it.
type MarkerLayer = Layer[MarkerItem, MarkerGeometry]

// NewMarkerLayer creates an unconfigured marker layer.
func NewMarkerLayer(opts ...Option) *MarkerLayer {
	o := buildOptions(opts)
	return newLayer[MarkerItem, MarkerGeometry]("marker", &markerKind{style: o.marker}, o)
}

type markerKind struct {
	style MarkerStyle
}

func (k *markerKind) resolve(index int, it MarkerItem) (MarkerItem, error) {
	if err := checkSize(index, "width", it.Width); err != nil {
		return it, err
	}
	if err := checkSize(index, "height", it.Height); err != nil {
		return it, err
	}
	if it.Icon == "" {
		it.Icon = k.style.Icon
	}
	if it.Width == 0 {
		it.Width = k.style.Width
	}
	if it.Height == 0 {
		it.Height = k.style.Height
	}
	return it, nil
}

// normalizeMarker rounds the placement to whole device pixels. A zero size
// falls back to the icon bounds.
func normalizeMarker(it MarkerItem, scale float64, icon image.Rectangle) MarkerGeometry {
	w, h := it.Width, it.Height
	if w == 0 {
		w = float64(icon.Dx())
	}
	if h == 0 {
		h = float64(icon.Dy())
	}
	return MarkerGeometry{
		X:        device(it.X, scale),
		Y:        device(it.Y, scale),
		Width:    device(w, scale),
		Height:   device(h, scale),
		AnchorX:  device(it.AnchorX, scale),
		AnchorY:  device(it.AnchorY, scale),
		Rotation: it.Rotation,
	}
}

func (k *markerKind) draw(ctx context.Context, e *env, it MarkerItem) (MarkerGeometry, Result, error) {
	if it.Icon == "" {
		return MarkerGeometry{}, Result{}, nil
	}
	if e.decoder == nil {
		return MarkerGeometry{}, Result{}, ErrNoDecoder
	}

	icon, hit, err := loadIcon(ctx, e, it.Icon)
	if err != nil {
		return MarkerGeometry{}, Result{}, fmt.Errorf("gglayers: icon %q: %w", abbreviate(it.Icon), err)
	}

	g := normalizeMarker(it, e.scale, icon.Bounds())
	if g.Width <= 0 || g.Height <= 0 {
		return g, Result{}, nil
	}

	err = e.paint(func(s surface.Surface) error {
		s.Save()
		defer s.Restore()
		s.Translate(g.X, g.Y)
		s.Rotate(g.Rotation)
		s.Translate(-g.X, -g.Y)
		s.DrawImage(icon, g.X+g.AnchorX, g.Y+g.AnchorY, g.Width, g.Height)
		return nil
	})
	if err != nil {
		return MarkerGeometry{}, Result{}, err
	}
	return g, Result{Drawn: true, CacheHit: hit}, nil
}

// loadIcon returns the decoded icon for src. Decoding holds neither the
// surface lock nor the cache lock; the icon is cached only if its pass is
// still current.
func loadIcon(ctx context.Context, e *env, src string) (image.Image, bool, error) {
	key := "icon:" + src
	if icon, ok := e.frags.Get(key); ok {
		return icon, true, nil
	}
	Logger().Debug("gglayers: marker icon miss", "icon", abbreviate(src))
	icon, err := e.decoder.Decode(ctx, src)
	if err != nil {
		return nil, false, err
	}
	if e.current.Load() == e.pass {
		e.frags.Set(key, icon)
	}
	return icon, false, nil
}

func (*markerKind) contains(_ surface.Surface, g MarkerGeometry, p gg.Point) bool {
	q := unrotate(p, gg.Pt(g.X, g.Y), g.Rotation, gg.Pt(g.AnchorX, g.AnchorY))
	return inBox(q, g.X, g.Y, g.Width, g.Height)
}

// abbreviate shortens data URIs for logs and errors.
func abbreviate(src string) string {
	const limit = 48
	if len(src) <= limit {
		return src
	}
	return src[:limit] + "..."
}
