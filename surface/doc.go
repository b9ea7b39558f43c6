// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface defines the raster capability that primitive layers draw
// on, and two implementations of it.
//
// A Surface is a 2D canvas with a transform stack, solid fills and strokes,
// image blits, single-line text and a stroke hit test. Layers drive it but
// never look behind it.
//
//   - Context renders pixels with github.com/gogpu/gg.
//   - Recorder records the calls it receives and renders nothing. It backs
//     tests and headless hit testing.
//
// Backends are also reachable by name through the registry:
//
//	s, err := surface.Open("gg", 800, 600)
//
// Surfaces are not safe for concurrent use. Each surface is owned by one
// layer, which serializes access to it.
package surface
