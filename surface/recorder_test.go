// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

// Verify implementations satisfy Surface.
var (
	_ Surface = (*Context)(nil)
	_ Surface = (*Recorder)(nil)
)

func TestRecorderTransformStack(t *testing.T) {
	r := NewRecorder(100, 100, nil)

	r.Save()
	r.Translate(10, 20)
	r.Rotate(math.Pi / 2)
	r.Translate(-10, -20)
	r.FillRect(10, 20, 5, 5, color.Black)
	r.Restore()
	r.FillRect(0, 0, 1, 1, color.Black)

	cmds := r.Commands()
	if len(cmds) != 2 {
		t.Fatalf("recorded %d commands, want 2", len(cmds))
	}

	// The rotation is about (10, 20): that point stays in place.
	p := cmds[0].Transform.TransformPoint(gg.Pt(10, 20))
	if math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y-20) > 1e-9 {
		t.Errorf("pivot maps to %v, want (10, 20)", p)
	}
	// Clockwise on a y-down surface: +x turns into +y.
	q := cmds[0].Transform.TransformPoint(gg.Pt(11, 20))
	if math.Abs(q.X-10) > 1e-9 || math.Abs(q.Y-21) > 1e-9 {
		t.Errorf("(11, 20) maps to %v, want (10, 21)", q)
	}

	if !cmds[1].Transform.IsIdentity() {
		t.Errorf("transform after Restore = %+v, want identity", cmds[1].Transform)
	}
}

func TestRecorderUnbalancedRestore(t *testing.T) {
	r := NewRecorder(10, 10, nil)
	r.Translate(3, 4)
	r.Restore()
	if got := r.Transform().TransformPoint(gg.Pt(0, 0)); got.X != 3 || got.Y != 4 {
		t.Errorf("transform changed by unbalanced Restore: origin maps to %v", got)
	}
}

func TestRecorderCountsAndOffscreen(t *testing.T) {
	r := NewRecorder(50, 50, nil)
	r.Clear()
	r.StrokePolyline([]gg.Point{gg.Pt(0, 0), gg.Pt(10, 10)}, 2, color.Black)
	r.DrawText("hi", 1, 2, 10, color.Black)

	if r.Count(OpStrokePolyline) != 1 || r.Count(OpDrawText) != 1 || r.Count(OpClear) != 1 {
		t.Errorf("unexpected counts: %v", r.Commands())
	}

	frag, err := r.Offscreen(4, 4)
	if err != nil {
		t.Fatalf("Offscreen() error = %v", err)
	}
	if _, err := frag.Offscreen(2, 2); err != nil {
		t.Fatalf("nested Offscreen() error = %v", err)
	}
	if got := r.OffscreenCount(); got != 2 {
		t.Errorf("OffscreenCount() = %d, want 2", got)
	}
	if _, err := r.Offscreen(0, 4); err == nil {
		t.Error("Offscreen(0, 4) succeeded, want error")
	}

	if b := frag.Snapshot().Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("Snapshot bounds = %v, want 4x4", b)
	}
}

func TestRecorderMeasure(t *testing.T) {
	r := NewRecorder(10, 10, nil)
	if got := r.MeasureText("AB", 20); got != 20 {
		t.Errorf("MeasureText(AB, 20) = %v, want 20", got)
	}

	fixed := NewRecorder(10, 10, func(string, float64) float64 { return 7 })
	if got := fixed.MeasureText("anything", 12); got != 7 {
		t.Errorf("custom MeasureText = %v, want 7", got)
	}
}

func TestRecorderResize(t *testing.T) {
	r := NewRecorder(10, 10, nil)
	r.Clear()
	if err := r.Resize(20, 30); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if r.Width() != 20 || r.Height() != 30 {
		t.Errorf("size = %dx%d, want 20x30", r.Width(), r.Height())
	}
	if len(r.Commands()) != 0 {
		t.Error("Resize kept recorded commands")
	}
	if err := r.Resize(-1, 3); err == nil {
		t.Error("Resize(-1, 3) succeeded, want error")
	}
}

func TestOpString(t *testing.T) {
	if got := OpDrawImage.String(); got != "DrawImage" {
		t.Errorf("OpDrawImage.String() = %q", got)
	}
	if got := Op(200).String(); got != "Op(200)" {
		t.Errorf("Op(200).String() = %q", got)
	}
}
