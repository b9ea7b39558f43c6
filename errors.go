// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import (
	"errors"
	"fmt"

	"github.com/gogpu/gglayers/scheduler"
)

// Sentinel errors for gglayers.
var (
	// ErrInvalidConfiguration is returned by Configure when the surface or
	// the extent is missing. The previous configuration stays in effect.
	ErrInvalidConfiguration = errors.New("gglayers: invalid configuration")

	// ErrInvalidStyle is wrapped by every *StyleError.
	ErrInvalidStyle = errors.New("gglayers: invalid style")

	// ErrNotConfigured is the rejection reason of a render started before
	// any valid configuration was applied.
	ErrNotConfigured = errors.New("gglayers: layer not configured")

	// ErrNoDecoder is returned when a marker needs an icon and the layer
	// has no Decoder.
	ErrNoDecoder = errors.New("gglayers: no icon decoder")

	// ErrCancelled rejects a render pass superseded by a newer one.
	// Render swallows it; RenderAsync callers see it.
	ErrCancelled = scheduler.ErrCancelled
)

// StyleError reports an item whose style cannot be resolved.
type StyleError struct {
	// Index is the position of the item in the configured list, or -1 for
	// a layer-wide default.
	Index int
	// Field names the offending attribute.
	Field string
	// Value is the rejected input.
	Value string
}

func (e *StyleError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("gglayers: invalid default %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("gglayers: item %d: invalid %s %q", e.Index, e.Field, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidStyle.
func (e *StyleError) Unwrap() error {
	return ErrInvalidStyle
}
