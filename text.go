// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"context"
	"strconv"

	"github.com/gogpu/gg"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/gglayers/surface"
)

// TextItem is a single-line label. (X, Y) is on the baseline.
type TextItem struct {
	Text string
	X, Y float64

	// FontSize is in caller units. Zero selects the layer default.
	FontSize float64

	// Color is a hex color. Empty selects the layer default.
	Color string

	// Anchor, when set, positions the label from its measured size and
	// overrides AnchorX, AnchorY.
	Anchor Anchor

	// AnchorX, AnchorY offset the label from its point.
	AnchorX, AnchorY float64
}

// TextStyle holds the defaults of a text layer.
type TextStyle struct {
	FontSize float64
	Color    string
	Anchor   Anchor
}

// DefaultTextStyle returns 12 unit black labels.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		FontSize: 12,
		Color:    "#000000",
	}
}

// TextGeometry is the device-space placement of a drawn label.
type TextGeometry struct {
	X, Y     float64
	FontSize float64
	// Width is the measured advance of the label.
	Width            float64
	AnchorX, AnchorY float64
}

// TextLayer draws labels. Text is NFC normalized before it is measured.
type TextLayer = Layer[TextItem, TextGeometry]

// NewTextLayer creates an unconfigured text layer.
func NewTextLayer(opts ...Option) *TextLayer {
	o := buildOptions(opts)
	return newLayer[TextItem, TextGeometry]("text", &textKind{style: o.text}, o)
}

type textKind struct {
	style TextStyle
}

func (k *textKind) resolve(index int, it TextItem) (TextItem, error) {
	if err := checkSize(index, "font size", it.FontSize); err != nil {
		return it, err
	}
	if it.FontSize == 0 {
		it.FontSize = k.style.FontSize
	}
	if int(it.Anchor) >= len(anchorNames) {
		return it, &StyleError{Index: index, Field: "anchor", Value: strconv.Itoa(int(it.Anchor))}
	}
	if it.Anchor == AnchorNone {
		it.Anchor = k.style.Anchor
	}
	var err error
	if it.Color, err = resolveColor(index, "color", it.Color, k.style.Color); err != nil {
		return it, err
	}
	return it, nil
}

// normalizeText converts it to device pixels. measure returns the advance
// of a string at a font size.
func normalizeText(it TextItem, scale float64, measure func(s string, size float64) float64) (TextGeometry, string) {
	s := norm.NFC.String(it.Text)
	g := TextGeometry{
		X:        device(it.X, scale),
		Y:        device(it.Y, scale),
		FontSize: device(it.FontSize, scale),
	}
	if s == "" || g.FontSize <= 0 {
		return g, s
	}
	g.Width = device(measure(s, g.FontSize), 1)
	if it.Anchor != AnchorNone {
		g.AnchorX, g.AnchorY = it.Anchor.Offset(g.Width, g.FontSize)
	} else {
		g.AnchorX = device(it.AnchorX, scale)
		g.AnchorY = device(it.AnchorY, scale)
	}
	return g, s
}

func (k *textKind) draw(_ context.Context, e *env, it TextItem) (TextGeometry, Result, error) {
	c, _ := parseColor(it.Color)

	var (
		g     TextGeometry
		drawn bool
	)
	err := e.paint(func(s surface.Surface) error {
		var str string
		g, str = normalizeText(it, e.scale, s.MeasureText)
		if str == "" || g.FontSize <= 0 || c == nil {
			return nil
		}
		s.DrawText(str, g.X+g.AnchorX, g.Y+g.AnchorY, g.FontSize, c)
		drawn = true
		return nil
	})
	if err != nil {
		return TextGeometry{}, Result{}, err
	}
	return g, Result{Drawn: drawn}, nil
}

func (*textKind) contains(_ surface.Surface, g TextGeometry, p gg.Point) bool {
	x := g.X + g.AnchorX
	y := g.Y + g.AnchorY
	return inBox(p, x, y-g.FontSize, g.Width, g.FontSize)
}
