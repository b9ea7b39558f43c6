// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scheduler runs ordered batches of work in small slices of host
// idle time.
//
// A Scheduler hands every item of a batch to a processing function, one at a
// time and strictly in input order, and stops to yield back to the host as
// soon as the current idle slice is exhausted. The host decides when the next
// slice starts; see IdleHost, FrameHost and ManualHost.
//
// Only one batch is in flight per Scheduler. Starting a new batch supersedes
// the previous one: its Batch is rejected with ErrCancelled and none of its
// remaining items are processed.
//
//	host := scheduler.NewFrameHost()
//	defer host.Close()
//
//	s := scheduler.New[string, int](host)
//	b := s.Execute(ctx, []string{"a", "bb", "ccc"}, func(_ context.Context, v string) (int, error) {
//	    return len(v), nil
//	})
//	lengths, err := b.Wait(ctx) // [1 2 3]
package scheduler
