// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache holds raster fragments keyed by style signature.
//
// A layer produces the same fragment for every item that shares a style
// signature, so each signature is rendered once and reused for the
// lifetime of the layer:
//
//	c := cache.New[string, image.Image](0) // 0 = never evict
//	img, hit, err := c.GetOrCreate("20:20:#fff:#000", render)
//
// Style diversity is assumed to be small (a handful of colors and sizes),
// so the default cache grows without bound. A positive soft limit turns on
// least-recently-used eviction for callers that cannot make that
// assumption.
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
