// Package gglayers draws large collections of simple map primitives onto a
// raster surface incrementally and answers hit-test queries against what
// was actually drawn.
//
// # Overview
//
// A layer owns one surface and one kind of primitive:
//
//   - RectLayer: axis-aligned cells, typically a Grid
//   - MarkerLayer: icons rotated about their anchor point
//   - TextLayer: single-line labels with keyword anchors
//   - PolylineLayer: stroked open paths
//
// Rendering never blocks the caller. A render pass hands the items to a
// scheduler.Scheduler, which draws them in order during idle slices granted
// by a scheduler.IdleHost. Starting a new pass, or reconfiguring the layer,
// abandons the pass in flight.
//
// # Quick Start
//
//	dc, _ := surface.NewContext(1, 1)
//
//	rects := gglayers.NewRectLayer()
//	err := rects.Configure(gglayers.Config[gglayers.RectItem]{
//	    Surface:     dc,
//	    Extent:      gglayers.Extent{Width: 400, Height: 300},
//	    Items:       gglayers.Grid(gglayers.GridSpec{Rows: 10, Cols: 10, CellWidth: 20, CellHeight: 20, Gap: 2}),
//	    ScaleFactor: 2,
//	})
//
//	results, err := rects.RenderAsync(ctx).Wait(ctx)
//	hits := rects.FindByPosition(gg.Pt(25, 5))
//
// # Coordinates
//
// Items are given in caller units. A layer multiplies every coordinate by
// the scale factor and rounds it to whole device pixels before drawing, and
// it keeps that device-space geometry for hit tests. FindByPosition takes
// caller units and applies the same scale.
//
// # Caching
//
// Rects with equal size and colors share one raster fragment; markers with
// equal icon source share one decoded image. Fragments live as long as the
// layer, unless the scale factor changes or WithStyleCacheLimit bounds them.
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive pass and cache
// events at debug level and draw failures at warn level.
package gglayers
