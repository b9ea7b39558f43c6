// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"

	"github.com/gogpu/gglayers/internal/cache"
	"github.com/gogpu/gglayers/scheduler"
	"github.com/gogpu/gglayers/surface"
)

// Extent is the size of a layer in caller units.
type Extent struct {
	Width, Height float64
}

// Config is the runtime configuration of a layer.
type Config[T any] struct {
	// Surface is the drawing target. Required. The layer owns it until it
	// is configured with another surface.
	Surface surface.Surface

	// Extent is the layer size in caller units. Required, both positive.
	// The surface is resized to Extent × ScaleFactor pixels.
	Extent Extent

	// Items are drawn in order. The slice is copied; the caller may reuse
	// it after Configure returns.
	Items []T

	// ScaleFactor is the device pixel ratio. Values <= 0 mean 1.
	ScaleFactor float64

	// BeforeDraw, when set, is called with every item right before it is
	// drawn and may substitute geometry or style. The returned item goes
	// through default resolution again.
	BeforeDraw func(index int, item T) T
}

// Result describes what a render pass did with one item.
type Result struct {
	// Index is the item position in the configured list.
	Index int
	// Drawn is false for items skipped as degenerate.
	Drawn bool
	// CacheHit reports that a cached fragment was reused.
	CacheHit bool
}

// kind implements one primitive kind on top of the shared Layer.
type kind[T, G any] interface {
	// resolve applies style defaults to item and validates it.
	resolve(index int, item T) (T, error)

	// draw normalizes item, draws it through e and returns the geometry
	// actually used. res.Drawn is false when the item was skipped.
	draw(ctx context.Context, e *env, item T) (g G, res Result, err error)

	// contains reports whether the device-space point p hits g.
	contains(s surface.Surface, g G, p gg.Point) bool
}

// errStale aborts the draw of an item whose pass was superseded.
var errStale = errors.New("gglayers: stale pass")

// env is what a kind may touch while drawing one item of a pass.
type env struct {
	pass    uint64
	current *atomic.Uint64
	surfMu  *sync.Mutex
	surface surface.Surface
	scale   float64
	frags   *cache.Cache[string, image.Image]
	decoder Decoder
}

// paint runs fn with exclusive access to the surface, unless the pass has
// been superseded in the meantime.
func (e *env) paint(fn func(s surface.Surface) error) error {
	e.surfMu.Lock()
	defer e.surfMu.Unlock()

	if e.current.Load() != e.pass {
		return errStale
	}
	return fn(e.surface)
}

// Layer renders one kind of primitive onto a surface and answers hit-test
// queries against what it drew. Use NewRectLayer, NewMarkerLayer,
// NewTextLayer or NewPolylineLayer to create one.
//
// All geometry a layer persists is in device pixels: caller coordinates
// multiplied by the scale factor, then rounded. FindByPosition scales its
// query point the same way.
//
// Layer is safe for concurrent use.
type Layer[T, G any] struct {
	name  string
	kind  kind[T, G]
	opts  options
	sched *scheduler.Scheduler[int, Result]

	// frags holds raster fragments by style signature. It is only cleared
	// when the scale factor changes.
	frags *cache.Cache[string, image.Image]

	// ctl serializes Configure and RenderAsync so that pass numbers and
	// scheduler batches advance together.
	ctl sync.Mutex

	mu         sync.RWMutex
	configured bool
	cfg        Config[T] // Items is nil; see items
	scale      float64
	items      []T       // caller items, returned by queries
	resolved   []T       // items with style defaults applied
	geoms      map[int]G // persisted render geometry by item index

	// surfMu guards every call on the configured surface.
	surfMu sync.Mutex
	// pass is bumped by every Configure and RenderAsync; draws of older
	// passes are dropped.
	pass atomic.Uint64
}

func newLayer[T, G any](name string, k kind[T, G], o options) *Layer[T, G] {
	return &Layer[T, G]{
		name:  name,
		kind:  k,
		opts:  o,
		sched: scheduler.New[int, Result](o.host),
		frags: cache.New[string, image.Image](o.cacheLimit),
		geoms: make(map[int]G),
		scale: 1,
	}
}

func normalizeScale(s float64) float64 {
	if !(s > 0) || math.IsInf(s, 0) {
		return 1
	}
	return s
}

// Configure applies cfg. A configuration without surface or with a
// non-positive extent returns ErrInvalidConfiguration; an item with an
// invalid style returns a *StyleError, and a surface that cannot be
// resized returns its error. In all these cases the previous configuration
// and the pass in flight remain in effect.
//
// A valid configuration cancels the pass in flight, resizes the surface,
// replaces the item list and forgets all persisted geometry. Cached
// fragments are dropped only when the scale factor changes.
func (l *Layer[T, G]) Configure(cfg Config[T]) error {
	if cfg.Surface == nil || !(cfg.Extent.Width > 0) || !(cfg.Extent.Height > 0) {
		Logger().Debug("gglayers: configuration skipped", "layer", l.name,
			"surface", cfg.Surface != nil, "width", cfg.Extent.Width, "height", cfg.Extent.Height)
		return fmt.Errorf("%w: surface and positive extent are required", ErrInvalidConfiguration)
	}

	items := slices.Clone(cfg.Items)
	resolved := make([]T, len(items))
	for i, item := range items {
		r, err := l.kind.resolve(i, item)
		if err != nil {
			return err
		}
		resolved[i] = r
	}
	scale := normalizeScale(cfg.ScaleFactor)

	l.ctl.Lock()
	defer l.ctl.Unlock()

	// The pass only advances once the surface has its new size, so a
	// failed resize leaves the pass in flight untouched.
	w := int(math.Ceil(cfg.Extent.Width * scale))
	h := int(math.Ceil(cfg.Extent.Height * scale))
	l.surfMu.Lock()
	err := cfg.Surface.Resize(w, h)
	if err == nil {
		l.pass.Add(1)
	}
	l.surfMu.Unlock()
	if err != nil {
		return fmt.Errorf("gglayers: resize surface: %w", err)
	}
	l.sched.Cancel()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.configured && scale != l.scale {
		Logger().Debug("gglayers: scale changed, dropping fragments", "layer", l.name,
			"from", l.scale, "to", scale, "fragments", l.frags.Len())
		l.frags.Clear()
	}
	cfg.Items = nil
	l.cfg = cfg
	l.scale = scale
	l.items = items
	l.resolved = resolved
	l.geoms = make(map[int]G)
	l.configured = true
	return nil
}

// Render starts a render pass and returns without waiting for it. A pass
// superseded by a later Render or Configure is abandoned silently; any
// other failure is logged and passed to the WithErrorHandler hook.
func (l *Layer[T, G]) Render(ctx context.Context) {
	b := l.RenderAsync(ctx)
	go func() {
		<-b.Done()
		err := b.Err()
		switch {
		case err == nil:
		case errors.Is(err, ErrCancelled):
			Logger().Debug("gglayers: pass superseded", "layer", l.name)
		case errors.Is(err, ErrNotConfigured):
			Logger().Debug("gglayers: render skipped, layer not configured", "layer", l.name)
		default:
			Logger().Warn("gglayers: render failed", "layer", l.name, "err", err)
			if l.opts.onError != nil {
				l.opts.onError(err)
			}
		}
	}()
}

// RenderAsync starts a render pass and returns its batch. The surface is
// cleared right away; items are drawn in order over the following idle
// slices. The batch resolves with one Result per item, or is rejected with
// ErrCancelled when a later Render or Configure supersedes it, or with a
// *scheduler.ProcessingError when an item fails to draw.
func (l *Layer[T, G]) RenderAsync(ctx context.Context) *scheduler.Batch[Result] {
	l.ctl.Lock()
	defer l.ctl.Unlock()

	l.mu.RLock()
	if !l.configured {
		l.mu.RUnlock()
		return scheduler.Rejected[Result](ErrNotConfigured)
	}
	e := &env{
		current: &l.pass,
		surfMu:  &l.surfMu,
		surface: l.cfg.Surface,
		scale:   l.scale,
		frags:   l.frags,
		decoder: l.opts.decoder,
	}
	resolved := l.resolved
	hook := l.cfg.BeforeDraw
	l.mu.RUnlock()

	e.pass = l.pass.Add(1)

	l.surfMu.Lock()
	e.surface.Clear()
	l.surfMu.Unlock()

	indices := make([]int, len(resolved))
	for i := range indices {
		indices[i] = i
	}

	Logger().Debug("gglayers: pass started", "layer", l.name, "pass", e.pass, "items", len(indices))
	return l.sched.Execute(ctx, indices, func(ctx context.Context, i int) (Result, error) {
		return l.drawItem(ctx, e, resolved[i], i, hook)
	})
}

func (l *Layer[T, G]) drawItem(ctx context.Context, e *env, item T, i int, hook func(int, T) T) (Result, error) {
	if hook != nil {
		var err error
		if item, err = l.kind.resolve(i, hook(i, item)); err != nil {
			return Result{Index: i}, err
		}
	}

	g, res, err := l.kind.draw(ctx, e, item)
	res.Index = i
	if err != nil {
		if errors.Is(err, errStale) {
			return res, nil
		}
		return res, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pass.Load() == e.pass {
		if res.Drawn {
			l.geoms[i] = g
		} else {
			delete(l.geoms, i)
		}
	}
	return res, nil
}

// FindByPosition returns the items whose persisted render geometry
// contains p, in item order. p is in caller units. Items that have not
// been drawn since the last Configure never match.
func (l *Layer[T, G]) FindByPosition(p gg.Point) []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.configured || len(l.geoms) == 0 {
		return nil
	}
	q := gg.Pt(p.X*l.scale, p.Y*l.scale)

	l.surfMu.Lock()
	defer l.surfMu.Unlock()

	var found []T
	for i, item := range l.items {
		g, ok := l.geoms[i]
		if !ok {
			continue
		}
		if l.kind.contains(l.cfg.Surface, g, q) {
			found = append(found, item)
		}
	}
	return found
}

// Geometry returns the persisted render geometry of item i.
func (l *Layer[T, G]) Geometry(i int) (G, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	g, ok := l.geoms[i]
	return g, ok
}

// Items returns a copy of the configured item list.
func (l *Layer[T, G]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.items)
}

// ScaleFactor returns the scale factor in effect.
func (l *Layer[T, G]) ScaleFactor() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.scale
}

// CacheLen returns the number of cached fragments.
func (l *Layer[T, G]) CacheLen() int {
	return l.frags.Len()
}

// CacheStats returns the fragment cache counters.
func (l *Layer[T, G]) CacheStats() cache.Stats {
	return l.frags.Stats()
}

// Busy reports whether a render pass is in flight.
func (l *Layer[T, G]) Busy() bool {
	return l.sched.Busy()
}
