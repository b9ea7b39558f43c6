// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scheduler

import (
	"sync"
	"time"
)

// Default frame timing used by NewFrameHost.
const (
	// DefaultFrameInterval is one frame at 60 Hz.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultIdleBudget is the share of a frame handed to idle work.
	DefaultIdleBudget = 8 * time.Millisecond
)

// FrameHostOption configures a FrameHost.
type FrameHostOption func(*FrameHost)

// WithFrameInterval sets the time between idle slices.
func WithFrameInterval(d time.Duration) FrameHostOption {
	return func(h *FrameHost) {
		if d > 0 {
			h.interval = d
		}
	}
}

// WithIdleBudget sets the length of each idle slice.
func WithIdleBudget(d time.Duration) FrameHostOption {
	return func(h *FrameHost) {
		if d > 0 {
			h.budget = d
		}
	}
}

// withClock replaces the wall clock. Used by tests.
func withClock(now func() time.Time) FrameHostOption {
	return func(h *FrameHost) {
		h.now = now
	}
}

// FrameHost is an IdleHost backed by a single goroutine that wakes up once
// per frame interval and runs the callbacks registered before that frame,
// serially, with a shared idle budget.
//
// All callbacks of a FrameHost run on the same goroutine, so work scheduled
// through one host never runs in parallel with itself.
type FrameHost struct {
	interval time.Duration
	budget   time.Duration
	now      func() time.Time

	mu     sync.Mutex
	queue  idleQueue
	closed bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewFrameHost starts a FrameHost. Call Close to stop its goroutine.
func NewFrameHost(opts ...FrameHostOption) *FrameHost {
	h := &FrameHost{
		interval: DefaultFrameInterval,
		budget:   DefaultIdleBudget,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.wg.Add(1)
	go h.loop()
	return h
}

var (
	defaultHostOnce sync.Once
	defaultHost     *FrameHost
)

// DefaultHost returns a process-wide FrameHost with default timing, started
// on first use. It is never closed.
func DefaultHost() *FrameHost {
	defaultHostOnce.Do(func() {
		defaultHost = NewFrameHost()
	})
	return defaultHost
}

// RequestIdle implements IdleHost. On a closed host fn runs right away on
// its own goroutine with an exhausted deadline, and the returned handle is
// zero.
func (h *FrameHost) RequestIdle(fn IdleFunc) IdleHandle {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		go fn(expired{})
		return 0
	}
	return h.queue.push(fn)
}

// Closed reports whether Close has been called.
func (h *FrameHost) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// CancelIdle implements IdleHost.
func (h *FrameHost) CancelIdle(handle IdleHandle) {
	h.mu.Lock()
	h.queue.cancel(handle)
	h.mu.Unlock()
}

// Pending returns the number of registrations waiting for a slice.
func (h *FrameHost) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.queue.len()
}

// Close stops the host goroutine and waits for the running frame, if any,
// to return. Pending registrations then run once on the calling goroutine
// with an exhausted deadline. Close is idempotent.
func (h *FrameHost) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	close(h.done)
	h.wg.Wait()

	h.mu.Lock()
	pending := h.queue.drain()
	h.mu.Unlock()
	for _, fn := range pending {
		fn(expired{})
	}
	return nil
}

func (h *FrameHost) loop() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			h.runFrame()
		}
	}
}

// runFrame runs every callback registered before the frame started. They
// share one deadline, so a slow callback shortens the slice of the next.
func (h *FrameHost) runFrame() {
	h.mu.Lock()
	order := h.queue.take()
	h.mu.Unlock()
	if len(order) == 0 {
		return
	}

	d := deadlineAt{end: h.now().Add(h.budget), now: h.now}
	for _, handle := range order {
		select {
		case <-h.done:
			return
		default:
		}

		h.mu.Lock()
		fn := h.queue.claim(handle)
		h.mu.Unlock()
		if fn != nil {
			fn(d)
		}
	}
}
