// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"
	"image/color"
	"reflect"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gglayers/internal/cache"
)

// scaledImageLimit bounds the number of pre-scaled images a Context keeps.
const scaledImageLimit = 64

var (
	defaultFontOnce sync.Once
	defaultFont     *text.FontSource
	defaultFontErr  error
)

// DefaultFont returns the Go Regular font source shared by every Context
// that was not given another font.
func DefaultFont() (*text.FontSource, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = text.NewFontSource(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithFont sets the font source used for text.
func WithFont(src *text.FontSource) ContextOption {
	return func(c *Context) {
		if src != nil {
			c.font = src
		}
	}
}

// Context is a Surface that rasterizes with a gg.Context.
type Context struct {
	dc   *gg.Context
	font *text.FontSource

	// faces caches one face per font size.
	faces map[float64]text.Face

	// scaled caches images already resampled to a draw size, since the same
	// icon is typically drawn many times at one size.
	scaled *cache.Cache[scaledKey, *gg.ImageBuf]
}

type scaledKey struct {
	img  image.Image
	w, h int
}

// NewContext creates a gg-backed surface of the given size.
func NewContext(width, height int, opts ...ContextOption) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface: invalid dimensions %dx%d", width, height)
	}
	c := &Context{
		dc:     gg.NewContext(width, height),
		faces:  make(map[float64]text.Face),
		scaled: cache.New[scaledKey, *gg.ImageBuf](scaledImageLimit),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.font == nil {
		src, err := DefaultFont()
		if err != nil {
			return nil, fmt.Errorf("surface: load default font: %w", err)
		}
		c.font = src
	}
	c.dc.SetLineJoin(gg.LineJoinRound)
	c.dc.SetLineCap(gg.LineCapButt)
	return c, nil
}

// GG returns the underlying gg context.
func (c *Context) GG() *gg.Context {
	return c.dc
}

// Width implements Surface.
func (c *Context) Width() int { return c.dc.Width() }

// Height implements Surface.
func (c *Context) Height() int { return c.dc.Height() }

// Resize implements Surface. The gg context is replaced, which also resets
// the transform stack.
func (c *Context) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("surface: invalid dimensions %dx%d", width, height)
	}
	if width == c.dc.Width() && height == c.dc.Height() {
		return nil
	}
	c.dc = gg.NewContext(width, height)
	c.dc.SetLineJoin(gg.LineJoinRound)
	c.dc.SetLineCap(gg.LineCapButt)
	return nil
}

// Clear implements Surface.
func (c *Context) Clear() { c.dc.Clear() }

// Save implements Surface.
func (c *Context) Save() { c.dc.Push() }

// Restore implements Surface.
func (c *Context) Restore() { c.dc.Pop() }

// Translate implements Surface.
func (c *Context) Translate(x, y float64) { c.dc.Translate(x, y) }

// Rotate implements Surface.
func (c *Context) Rotate(angle float64) { c.dc.Rotate(angle) }

// FillRect implements Surface.
func (c *Context) FillRect(x, y, w, h float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, w, h)
	if err := c.dc.Fill(); err != nil {
		Logger().Warn("surface: fill failed", "err", err)
	}
}

// StrokeRect implements Surface.
func (c *Context) StrokeRect(x, y, w, h, lineWidth float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.DrawRectangle(x, y, w, h)
	if err := c.dc.Stroke(); err != nil {
		Logger().Warn("surface: stroke failed", "err", err)
	}
}

// DrawImage implements Surface. Images are resampled to the box size with
// bilinear filtering before they are drawn.
func (c *Context) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	buf := c.imageBuf(img, int(w+0.5), int(h+0.5))
	if buf == nil {
		return
	}
	c.dc.DrawImage(buf, x, y)
}

func (c *Context) imageBuf(img image.Image, w, h int) *gg.ImageBuf {
	if w <= 0 || h <= 0 {
		return nil
	}
	convert := func() (*gg.ImageBuf, error) {
		b := img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return gg.ImageBufFromImage(img), nil
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
		return gg.ImageBufFromImage(dst), nil
	}

	// Map keys must be comparable; image types almost always are pointers.
	if !reflect.TypeOf(img).Comparable() {
		buf, _ := convert()
		return buf
	}
	buf, _, _ := c.scaled.GetOrCreate(scaledKey{img: img, w: w, h: h}, convert)
	return buf
}

func (c *Context) face(size float64) text.Face {
	f, ok := c.faces[size]
	if !ok {
		f = c.font.Face(size)
		c.faces[size] = f
	}
	return f
}

// MeasureText implements Surface.
func (c *Context) MeasureText(s string, size float64) float64 {
	if s == "" || size <= 0 {
		return 0
	}
	w, _ := text.Measure(s, c.face(size))
	return w
}

// DrawText implements Surface.
func (c *Context) DrawText(s string, x, y, size float64, col color.Color) {
	if s == "" || size <= 0 {
		return
	}
	c.dc.SetFont(c.face(size))
	c.dc.SetColor(col)
	c.dc.DrawString(s, x, y)
}

// StrokePolyline implements Surface.
func (c *Context) StrokePolyline(pts []gg.Point, width float64, col color.Color) {
	if len(pts) < 2 || width <= 0 {
		return
	}
	c.dc.ClearPath()
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	if err := c.dc.Stroke(); err != nil {
		Logger().Warn("surface: stroke failed", "err", err)
	}
}

// InStroke implements Surface. gg has no native stroke hit test, so the
// stroke geometry is evaluated analytically with the same caps and joins
// the context strokes with.
func (c *Context) InStroke(pts []gg.Point, width float64, p gg.Point) bool {
	return StrokeContains(pts, width, p)
}

// Offscreen implements Surface. The new context shares the font source.
func (c *Context) Offscreen(width, height int) (Surface, error) {
	frag, err := NewContext(width, height, WithFont(c.font))
	if err != nil {
		return nil, err
	}
	return frag, nil
}

// Snapshot implements Surface.
func (c *Context) Snapshot() image.Image {
	return c.dc.Image()
}
