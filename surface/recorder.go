// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/gogpu/gg"
)

// Op identifies a recorded drawing call.
type Op uint8

// Recorded operations. Save, Restore, Translate and Rotate are folded into
// the Transform of the drawing commands and are not recorded themselves.
const (
	OpClear Op = iota
	OpFillRect
	OpStrokeRect
	OpDrawImage
	OpDrawText
	OpStrokePolyline
)

var opNames = [...]string{
	OpClear:          "Clear",
	OpFillRect:       "FillRect",
	OpStrokeRect:     "StrokeRect",
	OpDrawImage:      "DrawImage",
	OpDrawText:       "DrawText",
	OpStrokePolyline: "StrokePolyline",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", o)
}

// Command is one recorded drawing call.
type Command struct {
	Op Op

	// X, Y, W, H hold the rectangle, image box or text origin (W = size
	// for text), in the coordinates passed to the call.
	X, Y, W, H float64

	// LineWidth is set for strokes.
	LineWidth float64

	Color  color.Color
	Image  image.Image
	Text   string
	Points []gg.Point

	// Transform is the transform in effect when the call was made.
	Transform gg.Matrix
}

// AdvanceFunc measures text for a Recorder.
type AdvanceFunc func(s string, size float64) float64

// MonospaceAdvance measures every rune as 0.5 em wide.
func MonospaceAdvance(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.5
}

// Recorder is a Surface that records calls instead of rasterizing them.
// Snapshot returns a transparent image of the surface size.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	advance       AdvanceFunc

	transform gg.Matrix
	stack     []gg.Matrix
	commands  []Command

	// offscreen counts the fragments created through Offscreen, across
	// this recorder and every recorder it created.
	offscreen *int
}

// NewRecorder creates a Recorder. A nil advance selects MonospaceAdvance.
func NewRecorder(width, height int, advance AdvanceFunc) *Recorder {
	if advance == nil {
		advance = MonospaceAdvance
	}
	return &Recorder{
		width:     width,
		height:    height,
		advance:   advance,
		transform: gg.Identity(),
		offscreen: new(int),
	}
}

// Commands returns the recorded calls in order.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Count returns the number of recorded calls with the given op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// OffscreenCount returns the number of fragments created with Offscreen.
func (r *Recorder) OffscreenCount() int {
	return *r.offscreen
}

// Reset drops the recorded calls and the transform stack.
func (r *Recorder) Reset() {
	r.commands = nil
	r.stack = nil
	r.transform = gg.Identity()
}

// Transform returns the current transform.
func (r *Recorder) Transform() gg.Matrix {
	return r.transform
}

// Width implements Surface.
func (r *Recorder) Width() int { return r.width }

// Height implements Surface.
func (r *Recorder) Height() int { return r.height }

// Resize implements Surface.
func (r *Recorder) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("surface: invalid dimensions %dx%d", width, height)
	}
	r.width, r.height = width, height
	r.Reset()
	return nil
}

// Clear implements Surface.
func (r *Recorder) Clear() {
	r.record(Command{Op: OpClear})
}

// Save implements Surface.
func (r *Recorder) Save() {
	r.stack = append(r.stack, r.transform)
}

// Restore implements Surface. An unbalanced Restore is ignored.
func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.transform = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
}

// Translate implements Surface.
func (r *Recorder) Translate(x, y float64) {
	r.transform = r.transform.Multiply(gg.Translate(x, y))
}

// Rotate implements Surface.
func (r *Recorder) Rotate(angle float64) {
	r.transform = r.transform.Multiply(gg.Rotate(angle))
}

// FillRect implements Surface.
func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.record(Command{Op: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

// StrokeRect implements Surface.
func (r *Recorder) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	r.record(Command{Op: OpStrokeRect, X: x, Y: y, W: w, H: h, LineWidth: lineWidth, Color: c})
}

// DrawImage implements Surface.
func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	r.record(Command{Op: OpDrawImage, X: x, Y: y, W: w, H: h, Image: img})
}

// MeasureText implements Surface.
func (r *Recorder) MeasureText(s string, size float64) float64 {
	return r.advance(s, size)
}

// DrawText implements Surface.
func (r *Recorder) DrawText(s string, x, y, size float64, c color.Color) {
	r.record(Command{Op: OpDrawText, X: x, Y: y, W: size, Text: s, Color: c})
}

// StrokePolyline implements Surface.
func (r *Recorder) StrokePolyline(pts []gg.Point, width float64, c color.Color) {
	r.record(Command{
		Op:        OpStrokePolyline,
		Points:    append([]gg.Point(nil), pts...),
		LineWidth: width,
		Color:     c,
	})
}

// InStroke implements Surface.
func (r *Recorder) InStroke(pts []gg.Point, width float64, p gg.Point) bool {
	return StrokeContains(pts, width, p)
}

// Offscreen implements Surface. The fragment shares the text measure and
// the offscreen counter of r.
func (r *Recorder) Offscreen(width, height int) (Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface: invalid dimensions %dx%d", width, height)
	}
	*r.offscreen++
	frag := NewRecorder(width, height, r.advance)
	frag.offscreen = r.offscreen
	return frag, nil
}

// Snapshot implements Surface.
func (r *Recorder) Snapshot() image.Image {
	return image.NewRGBA(image.Rect(0, 0, r.width, r.height))
}

func (r *Recorder) record(c Command) {
	c.Transform = r.transform
	r.commands = append(r.commands, c)
}
