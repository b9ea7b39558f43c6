// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scheduler

import (
	"sync"
	"time"
)

// ManualHost is an IdleHost driven by the embedder. Nothing runs until Step,
// StepN or RunUntilIdle is called, and callbacks run on the calling
// goroutine. It suits hosts that own their frame loop, and tests.
type ManualHost struct {
	mu    sync.Mutex
	queue idleQueue
	now   func() time.Time
}

// NewManualHost returns an empty ManualHost.
func NewManualHost() *ManualHost {
	return &ManualHost{now: time.Now}
}

// RequestIdle implements IdleHost.
func (h *ManualHost) RequestIdle(fn IdleFunc) IdleHandle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.queue.push(fn)
}

// CancelIdle implements IdleHost.
func (h *ManualHost) CancelIdle(handle IdleHandle) {
	h.mu.Lock()
	h.queue.cancel(handle)
	h.mu.Unlock()
}

// Pending returns the number of registrations waiting for a slice.
func (h *ManualHost) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.queue.len()
}

// Step runs one idle slice of the given wall-clock budget and returns the
// number of callbacks it ran.
func (h *ManualHost) Step(budget time.Duration) int {
	return h.run(deadlineAt{end: h.now().Add(budget), now: h.now})
}

// StepN runs one idle slice whose deadline answers positively exactly n
// times. A scheduler checks the deadline once before each item, so StepN(n)
// lets a single batch advance by at most n items.
func (h *ManualHost) StepN(n int) int {
	return h.run(&countdown{left: n})
}

// RunUntilIdle runs StepN(n) slices until no registration is pending and
// returns the number of slices run. n must be positive.
func (h *ManualHost) RunUntilIdle(n int) int {
	if n <= 0 {
		n = 1
	}
	slices := 0
	for h.Pending() > 0 {
		h.StepN(n)
		slices++
	}
	return slices
}

func (h *ManualHost) run(d Deadline) int {
	h.mu.Lock()
	order := h.queue.take()
	h.mu.Unlock()

	ran := 0
	for _, handle := range order {
		h.mu.Lock()
		fn := h.queue.claim(handle)
		h.mu.Unlock()
		if fn == nil {
			continue
		}
		fn(d)
		ran++
	}
	return ran
}
