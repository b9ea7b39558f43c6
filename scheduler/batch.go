// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scheduler

import (
	"context"
	"sync"
)

// Batch is the future of one Execute call. It settles exactly once: either
// resolved with one result per input item, in input order, or rejected with
// ErrCancelled, a *ProcessingError or a context error.
//
// Batch is safe for concurrent use.
type Batch[R any] struct {
	done chan struct{}
	once sync.Once

	results []R
	err     error
}

func newBatch[R any]() *Batch[R] {
	return &Batch[R]{done: make(chan struct{})}
}

// Resolved returns an already settled batch with the given results.
func Resolved[R any](results []R) *Batch[R] {
	b := newBatch[R]()
	b.settle(results, nil)
	return b
}

// Rejected returns an already settled batch that failed with err.
func Rejected[R any](err error) *Batch[R] {
	b := newBatch[R]()
	b.settle(nil, err)
	return b
}

// settle records the outcome. Only the first call has an effect; it
// reports whether it was that call.
func (b *Batch[R]) settle(results []R, err error) bool {
	settled := false
	b.once.Do(func() {
		b.results = results
		b.err = err
		close(b.done)
		settled = true
	})
	return settled
}

// Done returns a channel closed once the batch has settled.
func (b *Batch[R]) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the batch settles or ctx is done. It returns the
// ordered results, or the rejection reason.
func (b *Batch[R]) Wait(ctx context.Context) ([]R, error) {
	select {
	case <-b.done:
		return b.results, b.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Err returns the rejection reason, or nil while the batch is pending or
// when it resolved.
func (b *Batch[R]) Err() error {
	select {
	case <-b.done:
		return b.err
	default:
		return nil
	}
}

// Results returns the ordered results of a resolved batch, or nil while it
// is pending or when it was rejected.
func (b *Batch[R]) Results() []R {
	select {
	case <-b.done:
		if b.err != nil {
			return nil
		}
		return b.results
	default:
		return nil
	}
}
