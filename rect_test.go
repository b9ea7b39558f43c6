// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"testing"

	"github.com/gogpu/gglayers/scheduler"
	"github.com/gogpu/gglayers/surface"
)

func TestRectFragmentCache(t *testing.T) {
	host := scheduler.NewManualHost()
	rec := newRecorder()
	l := NewRectLayer(WithIdleHost(host))

	items := []RectItem{
		{X: 0, Y: 0, Width: 10, Height: 10, Fill: "#FF0000"},
		{X: 20, Y: 0, Width: 10, Height: 10, Fill: "#ff0000"},
		{X: 40, Y: 0, Width: 10, Height: 10, Fill: "#ff0000"},
	}
	if err := l.Configure(rectConfig(rec, 1, items...)); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	results := render(t, host, l)

	if got := rec.OffscreenCount(); got != 1 {
		t.Errorf("fragments rasterized = %d, want 1", got)
	}
	if got := l.CacheLen(); got != 1 {
		t.Errorf("CacheLen() = %d, want 1", got)
	}
	wantHit := []bool{false, true, true}
	for i, r := range results {
		if r.CacheHit != wantHit[i] {
			t.Errorf("results[%d].CacheHit = %v, want %v", i, r.CacheHit, wantHit[i])
		}
	}

	// Blits reuse one image at every position.
	var imgs []surface.Command
	for _, c := range rec.Commands() {
		if c.Op == surface.OpDrawImage {
			imgs = append(imgs, c)
		}
	}
	if len(imgs) != 3 {
		t.Fatalf("DrawImage calls = %d, want 3", len(imgs))
	}
	for i, c := range imgs {
		if c.Image != imgs[0].Image {
			t.Errorf("draw %d used a different fragment", i)
		}
		if c.X != items[i].X || c.W != 10 || c.H != 10 {
			t.Errorf("draw %d at (%v, %v) %vx%v", i, c.X, c.Y, c.W, c.H)
		}
	}

	// A second pass is served entirely from the cache.
	render(t, host, l)
	if got := rec.OffscreenCount(); got != 1 {
		t.Errorf("fragments after second pass = %d, want 1", got)
	}
}

func TestRectFragmentSignature(t *testing.T) {
	host := scheduler.NewManualHost()
	rec := newRecorder()
	l := NewRectLayer(WithIdleHost(host))

	items := []RectItem{
		{Width: 10, Height: 10},
		{Width: 10, Height: 12},
		{Width: 10, Height: 10, Fill: "#000"},
		{Width: 10, Height: 10, Border: ColorNone},
		{X: 50, Width: 10, Height: 10},
	}
	if err := l.Configure(rectConfig(rec, 1, items...)); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	render(t, host, l)

	if got := rec.OffscreenCount(); got != 4 {
		t.Errorf("fragments rasterized = %d, want 4", got)
	}
}

func TestRectCacheClearedOnScaleChange(t *testing.T) {
	host := scheduler.NewManualHost()
	rec := newRecorder()
	l := NewRectLayer(WithIdleHost(host))

	item := RectItem{Width: 10, Height: 10}
	if err := l.Configure(rectConfig(rec, 1, item)); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	render(t, host, l)

	if err := l.Configure(rectConfig(rec, 1, item, item)); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if got := l.CacheLen(); got != 1 {
		t.Errorf("CacheLen() = %d after same-scale Configure, want 1", got)
	}

	if err := l.Configure(rectConfig(rec, 2, item)); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if got := l.CacheLen(); got != 0 {
		t.Errorf("CacheLen() = %d after scale change, want 0", got)
	}
	render(t, host, l)
	if got := rec.OffscreenCount(); got != 2 {
		t.Errorf("fragments rasterized = %d, want 2", got)
	}
}

func TestRectStyleCacheLimit(t *testing.T) {
	host := scheduler.NewManualHost()
	l := NewRectLayer(WithIdleHost(host), WithStyleCacheLimit(4))

	var items []RectItem
	for i := range 10 {
		items = append(items, RectItem{Width: float64(i + 1), Height: 1})
	}
	if err := l.Configure(rectConfig(newRecorder(), 1, items...)); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	render(t, host, l)

	st := l.CacheStats()
	if st.Len > 4 {
		t.Errorf("CacheStats().Len = %d, want <= 4", st.Len)
	}
	if st.Evictions == 0 {
		t.Error("CacheStats().Evictions = 0, want evictions past the limit")
	}
}

func TestStrokeInside(t *testing.T) {
	rec := surface.NewRecorder(10, 6, nil)
	strokeInside(rec, RectGeometry{Width: 10, Height: 6}, 2, nil)

	cmds := rec.Commands()
	if len(cmds) != 1 {
		t.Fatalf("recorded %d commands, want 1", len(cmds))
	}
	c := cmds[0]
	if c.X != 1 || c.Y != 1 || c.W != 8 || c.H != 4 || c.LineWidth != 2 {
		t.Errorf("StrokeRect(%v, %v, %v, %v, %v), want (1, 1, 8, 4, 2)", c.X, c.Y, c.W, c.H, c.LineWidth)
	}
}

func TestNormalizeRect(t *testing.T) {
	tests := []struct {
		name  string
		it    RectItem
		scale float64
		want  RectGeometry
	}{
		{"identity", RectItem{X: 1, Y: 2, Width: 3, Height: 4}, 1, RectGeometry{X: 1, Y: 2, Width: 3, Height: 4}},
		{"round origin", RectItem{X: 1.4, Y: 1.6, Width: 3, Height: 4}, 1, RectGeometry{X: 1, Y: 2, Width: 3, Height: 4}},
		{"ceil size", RectItem{Width: 3.1, Height: 0.2}, 1, RectGeometry{Width: 4, Height: 1}},
		{"scaled", RectItem{X: 1.25, Y: 2, Width: 2.5, Height: 1.1}, 2, RectGeometry{X: 3, Y: 4, Width: 5, Height: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeRect(tt.it, tt.scale)
			if got != tt.want {
				t.Fatalf("normalizeRect() = %+v, want %+v", got, tt.want)
			}
			// Normalizing device geometry again changes nothing.
			again := normalizeRect(RectItem{X: got.X, Y: got.Y, Width: got.Width, Height: got.Height}, 1)
			if again != got {
				t.Errorf("normalizeRect() not idempotent: %+v then %+v", got, again)
			}
		})
	}
}

func TestRectDegenerateSkipped(t *testing.T) {
	host := scheduler.NewManualHost()
	rec := newRecorder()
	l := NewRectLayer(WithIdleHost(host))

	if err := l.Configure(rectConfig(rec, 1, RectItem{Width: 0, Height: 10})); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	results := render(t, host, l)
	if results[0].Drawn {
		t.Error("zero-width rect drawn")
	}
	if _, ok := l.Geometry(0); ok {
		t.Error("zero-width rect has geometry")
	}
	if got := rec.Count(surface.OpDrawImage); got != 0 {
		t.Errorf("DrawImage calls = %d, want 0", got)
	}
}

func TestGrid(t *testing.T) {
	cells := Grid(GridSpec{X: 5, Y: 10, Rows: 2, Cols: 3, CellWidth: 10, CellHeight: 20, Gap: 2, Fill: "#abc"})
	if len(cells) != 6 {
		t.Fatalf("len(Grid()) = %d, want 6", len(cells))
	}
	last := cells[5]
	if last.X != 5+2*12 || last.Y != 10+22 || last.Width != 10 || last.Height != 20 || last.Fill != "#abc" {
		t.Errorf("last cell = %+v", last)
	}
	if cells[1].X != 17 || cells[1].Y != 10 {
		t.Errorf("cells[1] = %+v, want row-major order", cells[1])
	}
	if Grid(GridSpec{Rows: 0, Cols: 5}) != nil {
		t.Error("Grid() with no rows returned cells")
	}
}
