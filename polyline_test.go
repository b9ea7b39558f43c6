// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/gglayers/scheduler"
	"github.com/gogpu/gglayers/surface"
)

func polylineLayer(t *testing.T, host *scheduler.ManualHost, s surface.Surface, scale float64, items ...PolylineItem) *PolylineLayer {
	t.Helper()
	l := NewPolylineLayer(WithIdleHost(host))
	err := l.Configure(Config[PolylineItem]{
		Surface:     s,
		Extent:      Extent{Width: 200, Height: 200},
		Items:       items,
		ScaleFactor: scale,
	})
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	return l
}

func TestPolylineDegenerate(t *testing.T) {
	host := scheduler.NewManualHost()
	rec := newRecorder()
	line := []gg.Point{gg.Pt(0, 0), gg.Pt(50, 0)}
	l := polylineLayer(t, host, rec, 1,
		PolylineItem{Points: line, Width: StrokeWidth(0)},
		PolylineItem{Points: line[:1], Width: StrokeWidth(4)},
		PolylineItem{Points: nil},
		PolylineItem{Points: line, Width: StrokeWidth(4)},
	)
	results := render(t, host, l)

	for i, want := range []bool{false, false, false, true} {
		if results[i].Drawn != want {
			t.Errorf("results[%d].Drawn = %v, want %v", i, results[i].Drawn, want)
		}
		if _, ok := l.Geometry(i); ok != want {
			t.Errorf("Geometry(%d) present = %v, want %v", i, ok, want)
		}
	}
	if got := rec.Count(surface.OpStrokePolyline); got != 1 {
		t.Errorf("StrokePolyline calls = %d, want 1", got)
	}

	got := l.FindByPosition(gg.Pt(10, 0))
	if len(got) != 1 || *got[0].Width != 4 {
		t.Errorf("FindByPosition() = %v, want only the drawn polyline", got)
	}
}

func TestPolylineDefaultWidth(t *testing.T) {
	host := scheduler.NewManualHost()
	rec := newRecorder()
	l := polylineLayer(t, host, rec, 2, PolylineItem{Points: []gg.Point{gg.Pt(0, 10), gg.Pt(40, 10)}})
	render(t, host, l)

	g, ok := l.Geometry(0)
	if !ok {
		t.Fatal("Geometry(0) missing")
	}
	if g.Width != 2 {
		t.Errorf("Width = %v, want the default 1 scaled by 2", g.Width)
	}
	cmds := rec.Commands()
	last := cmds[len(cmds)-1]
	if last.Op != surface.OpStrokePolyline || last.LineWidth != 2 || len(last.Points) != 2 || last.Points[1] != gg.Pt(80, 20) {
		t.Errorf("last command = %+v, want a 2px stroke to (80, 20)", last)
	}
}

func TestPolylineHitTest(t *testing.T) {
	host := scheduler.NewManualHost()
	l := polylineLayer(t, host, newRecorder(), 1, PolylineItem{
		Points: []gg.Point{gg.Pt(10, 10), gg.Pt(60, 10), gg.Pt(60, 60)},
		Width:  StrokeWidth(6),
	})
	render(t, host, l)

	tests := []struct {
		name string
		p    gg.Point
		hit  bool
	}{
		{"on first segment", gg.Pt(30, 10), true},
		{"stroke edge", gg.Pt(30, 13), true},
		{"outside stroke", gg.Pt(30, 14), false},
		{"inside corner", gg.Pt(40, 40), false},
		{"on second segment", gg.Pt(62, 40), true},
		{"past butt cap", gg.Pt(5, 10), false},
		{"round join", gg.Pt(62, 8), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.FindByPosition(tt.p); (len(got) == 1) != tt.hit {
				t.Errorf("FindByPosition(%v) = %v, want hit %v", tt.p, got, tt.hit)
			}
		})
	}
}

func TestPolylineScaledHitTest(t *testing.T) {
	host := scheduler.NewManualHost()
	l := polylineLayer(t, host, newRecorder(), 3, PolylineItem{
		Points: []gg.Point{gg.Pt(0, 10), gg.Pt(20, 10)},
		Width:  StrokeWidth(2),
	})
	render(t, host, l)

	if got := l.FindByPosition(gg.Pt(10, 10.9)); len(got) != 1 {
		t.Errorf("FindByPosition() inside the scaled stroke = %v, want a hit", got)
	}
	if got := l.FindByPosition(gg.Pt(10, 11.5)); len(got) != 0 {
		t.Errorf("FindByPosition() outside the scaled stroke = %v, want none", got)
	}
}

func TestNormalizePolylineIdempotent(t *testing.T) {
	it := PolylineItem{Points: []gg.Point{gg.Pt(0.4, 1.6), gg.Pt(10.5, -3.2)}, Width: StrokeWidth(1.5)}
	g := normalizePolyline(it, 1.5)

	want := []gg.Point{gg.Pt(1, 2), gg.Pt(16, -5)}
	for i, p := range g.Points {
		if p != want[i] {
			t.Errorf("Points[%d] = %v, want %v", i, p, want[i])
		}
	}
	if g.Width != 2.25 {
		t.Errorf("Width = %v, want 2.25", g.Width)
	}

	again := normalizePolyline(PolylineItem{Points: g.Points, Width: StrokeWidth(g.Width)}, 1)
	for i := range g.Points {
		if again.Points[i] != g.Points[i] {
			t.Errorf("Points[%d] changed on second normalization: %v", i, again.Points[i])
		}
	}
	if again.Width != g.Width {
		t.Errorf("Width changed on second normalization: %v", again.Width)
	}
	if &g.Points[0] == &it.Points[0] {
		t.Error("normalizePolyline() aliases the item points")
	}
}

func TestPolylineInvalidStyle(t *testing.T) {
	l := NewPolylineLayer(WithIdleHost(scheduler.NewManualHost()))
	err := l.Configure(Config[PolylineItem]{
		Surface: newRecorder(),
		Extent:  Extent{Width: 10, Height: 10},
		Items:   []PolylineItem{{Points: []gg.Point{{}, {X: 1}}, Width: StrokeWidth(-2)}},
	})
	var serr *StyleError
	if !errors.As(err, &serr) || serr.Field != "width" || serr.Index != 0 {
		t.Errorf("Configure() error = %v, want width StyleError for item 0", err)
	}
}
