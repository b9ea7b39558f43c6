// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
)

// Func processes one item of a batch. The context is cancelled when the
// batch is superseded, so long-running work (image decoding, I/O) can stop
// early; its result is discarded either way.
type Func[T, R any] func(ctx context.Context, item T) (R, error)

// Scheduler applies a Func to an ordered batch of items across idle slices
// granted by an IdleHost. At most one batch is in flight at a time.
//
// Scheduler is safe for concurrent use. The processing function only ever
// runs from host callbacks, one item at a time.
type Scheduler[T, R any] struct {
	host IdleHost

	// gen identifies the current batch. Every continuation compares its
	// own generation against it before touching shared state.
	gen atomic.Uint64

	mu      sync.Mutex
	active  *run[T, R]
	handle  IdleHandle
	pending bool // handle refers to a live registration
}

// run is the state of one batch. Only the goroutine running host callbacks
// touches next and results; nothing reads them under s.mu.
type run[T, R any] struct {
	gen     uint64
	ctx     context.Context
	cancel  context.CancelFunc
	items   []T
	fn      Func[T, R]
	next    int
	results []R
	batch   *Batch[R]
}

// New returns a Scheduler that draws idle time from host. A nil host
// selects DefaultHost.
func New[T, R any](host IdleHost) *Scheduler[T, R] {
	if host == nil {
		host = DefaultHost()
	}
	return &Scheduler[T, R]{host: host}
}

// Execute starts a new batch and returns its future before any item is
// processed. A batch still in flight is superseded first: its idle
// registration is withdrawn, its context cancelled and its Batch rejected
// with ErrCancelled.
//
// An empty batch resolves immediately with an empty result slice.
func (s *Scheduler[T, R]) Execute(ctx context.Context, items []T, fn Func[T, R]) *Batch[R] {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.supersedeLocked()
	gen := s.gen.Add(1)

	if len(items) == 0 {
		return Resolved([]R{})
	}
	b := newBatch[R]()

	runCtx, cancel := context.WithCancel(ctx)
	r := &run[T, R]{
		gen:     gen,
		ctx:     runCtx,
		cancel:  cancel,
		items:   items,
		fn:      fn,
		results: make([]R, len(items)),
		batch:   b,
	}
	s.active = r
	s.handle = s.host.RequestIdle(s.continuation(r))
	s.pending = true

	Logger().Debug("scheduler: batch started", "gen", gen, "items", len(items))
	return b
}

// Cancel rejects the batch in flight, if any, with ErrCancelled and reports
// whether there was one.
func (s *Scheduler[T, R]) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return false
	}
	s.supersedeLocked()
	s.gen.Add(1)
	return true
}

// Busy reports whether a batch is in flight.
func (s *Scheduler[T, R]) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil
}

// supersedeLocked withdraws and rejects the active batch. Caller must hold
// s.mu and advance s.gen afterwards.
func (s *Scheduler[T, R]) supersedeLocked() {
	if s.pending {
		s.host.CancelIdle(s.handle)
		s.pending = false
	}
	r := s.active
	if r == nil {
		return
	}
	s.active = nil
	r.cancel()
	if r.batch.settle(nil, ErrCancelled) {
		Logger().Debug("scheduler: batch superseded", "gen", r.gen, "items", len(r.items))
	}
}

func (s *Scheduler[T, R]) current(gen uint64) bool {
	return s.gen.Load() == gen
}

// continuation returns the idle callback that advances r.
func (s *Scheduler[T, R]) continuation(r *run[T, R]) IdleFunc {
	return func(d Deadline) {
		s.mu.Lock()
		if s.current(r.gen) {
			s.pending = false
		}
		s.mu.Unlock()

		for r.next < len(r.items) && d.TimeRemaining() > 0 {
			if !s.current(r.gen) {
				return
			}
			if err := r.ctx.Err(); err != nil {
				s.finish(r, err)
				return
			}

			res, err := r.fn(r.ctx, r.items[r.next])

			// Superseded while fn was running: the batch is already
			// rejected and the result belongs to nobody.
			if !s.current(r.gen) {
				return
			}
			if err != nil {
				s.finish(r, &ProcessingError{Index: r.next, Err: err})
				return
			}
			r.results[r.next] = res
			r.next++
		}

		if r.next == len(r.items) {
			s.finish(r, nil)
			return
		}

		s.mu.Lock()
		if !s.current(r.gen) {
			s.mu.Unlock()
			return
		}
		if hostClosed(s.host) {
			s.mu.Unlock()
			s.finish(r, ErrHostClosed)
			return
		}
		s.handle = s.host.RequestIdle(s.continuation(r))
		s.pending = true
		s.mu.Unlock()
	}
}

// hostClosed reports whether host has stopped granting idle slices.
func hostClosed(host IdleHost) bool {
	c, ok := host.(interface{ Closed() bool })
	return ok && c.Closed()
}

// finish settles r if it is still the current batch.
func (s *Scheduler[T, R]) finish(r *run[T, R], err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current(r.gen) {
		return
	}
	s.active = nil
	r.cancel()

	if err != nil {
		r.batch.settle(nil, err)
		Logger().Debug("scheduler: batch failed", "gen", r.gen, "err", err)
		return
	}
	r.batch.settle(r.results, nil)
	Logger().Debug("scheduler: batch done", "gen", r.gen, "items", len(r.items))
}
