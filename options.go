// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gglayers

import "github.com/gogpu/gglayers/scheduler"

// Option configures a layer at construction.
//
// Example:
//
//	// Default: shared frame host, file/data-URI icon decoder
//	l := gglayers.NewMarkerLayer()
//
//	// Host driven by the application's own frame loop
//	host := scheduler.NewManualHost()
//	l := gglayers.NewRectLayer(gglayers.WithIdleHost(host))
type Option func(*options)

// options holds construction-time settings shared by every layer kind.
// Each kind reads only its own style defaults.
type options struct {
	host       scheduler.IdleHost
	decoder    Decoder
	cacheLimit int
	onError    func(error)

	rect     RectStyle
	marker   MarkerStyle
	text     TextStyle
	polyline PolylineStyle
}

func defaultOptions() options {
	return options{
		host:     nil, // scheduler.DefaultHost
		decoder:  NewFileDecoder(nil),
		rect:     DefaultRectStyle(),
		marker:   DefaultMarkerStyle(),
		text:     DefaultTextStyle(),
		polyline: DefaultPolylineStyle(),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithIdleHost sets the host that grants idle time to the layer's
// scheduler. Layers sharing a host never draw concurrently.
func WithIdleHost(h scheduler.IdleHost) Option {
	return func(o *options) {
		o.host = h
	}
}

// WithDecoder sets the icon decoder used by marker layers. nil disables
// icon loading.
func WithDecoder(d Decoder) Option {
	return func(o *options) {
		o.decoder = d
	}
}

// WithStyleCacheLimit bounds the fragment cache. The default, 0, never
// evicts, which assumes a small number of distinct styles per layer.
func WithStyleCacheLimit(n int) Option {
	return func(o *options) {
		o.cacheLimit = n
	}
}

// WithErrorHandler receives failures of passes started with Render.
// Superseded passes are not failures and are never reported.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// WithRectStyle sets the defaults for rect items.
func WithRectStyle(s RectStyle) Option {
	return func(o *options) {
		o.rect = s
	}
}

// WithMarkerStyle sets the defaults for marker items.
func WithMarkerStyle(s MarkerStyle) Option {
	return func(o *options) {
		o.marker = s
	}
}

// WithTextStyle sets the defaults for text items.
func WithTextStyle(s TextStyle) Option {
	return func(o *options) {
		o.text = s
	}
}

// WithPolylineStyle sets the defaults for polyline items.
func WithPolylineStyle(s PolylineStyle) Option {
	return func(o *options) {
		o.polyline = s
	}
}
