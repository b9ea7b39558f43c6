// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scheduler

import (
	"maps"
	"slices"
	"time"
)

// Deadline reports how much of the current idle slice is left.
type Deadline interface {
	// TimeRemaining returns the idle time left in the current slice.
	// A value <= 0 means the slice is exhausted and work must yield.
	TimeRemaining() time.Duration
}

// IdleFunc is a callback run by an IdleHost during an idle slice.
type IdleFunc func(d Deadline)

// IdleHandle identifies a pending idle registration.
type IdleHandle uint64

// IdleHost is the host environment's idle-time allocator.
//
// RequestIdle registers fn to run once in a later idle slice and returns a
// handle that CancelIdle accepts. A cancelled registration never runs.
// Hosts run callbacks one at a time; implementations must not hold internal
// locks while a callback runs, since callbacks may register new work.
//
// A host that can stop may also implement Closed() bool. Once Closed
// reports true, the scheduler rejects its batches with ErrHostClosed
// instead of registering again.
type IdleHost interface {
	RequestIdle(fn IdleFunc) IdleHandle
	CancelIdle(h IdleHandle)
}

// deadlineAt is a wall-clock Deadline ending at end.
type deadlineAt struct {
	end time.Time
	now func() time.Time
}

func (d deadlineAt) TimeRemaining() time.Duration {
	return d.end.Sub(d.now())
}

// expired is a Deadline with no time left. Closed hosts hand it to
// callbacks so that they can give up instead of waiting forever.
type expired struct{}

func (expired) TimeRemaining() time.Duration { return 0 }

// countdown is a Deadline that allows exactly n positive answers.
type countdown struct {
	left int
}

func (c *countdown) TimeRemaining() time.Duration {
	if c.left <= 0 {
		return 0
	}
	c.left--
	return time.Millisecond
}

// idleQueue holds pending registrations in arrival order. It is not
// synchronized; hosts guard it with their own mutex.
type idleQueue struct {
	next    IdleHandle
	order   []IdleHandle
	pending map[IdleHandle]IdleFunc
}

func (q *idleQueue) push(fn IdleFunc) IdleHandle {
	if q.pending == nil {
		q.pending = make(map[IdleHandle]IdleFunc)
	}
	q.next++
	q.order = append(q.order, q.next)
	q.pending[q.next] = fn
	return q.next
}

func (q *idleQueue) cancel(h IdleHandle) {
	delete(q.pending, h)
}

// take returns the handles queued so far and starts a fresh order list.
// Registrations made after take belong to the next slice.
func (q *idleQueue) take() []IdleHandle {
	order := q.order
	q.order = nil
	return order
}

// claim removes and returns the callback for h, or nil if it was cancelled.
func (q *idleQueue) claim(h IdleHandle) IdleFunc {
	fn := q.pending[h]
	delete(q.pending, h)
	return fn
}

// drain removes every pending callback, including those of a slice that
// was interrupted, and returns them in registration order.
func (q *idleQueue) drain() []IdleFunc {
	handles := slices.Sorted(maps.Keys(q.pending))
	fns := make([]IdleFunc, 0, len(handles))
	for _, h := range handles {
		fns = append(fns, q.pending[h])
	}
	q.pending = nil
	q.order = nil
	return fns
}

func (q *idleQueue) len() int {
	return len(q.pending)
}
