// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scheduler

import (
	"errors"
	"fmt"
)

// ErrCancelled is the rejection reason of a batch that was superseded by a
// newer Execute call or cancelled with Cancel.
var ErrCancelled = errors.New("scheduler: batch cancelled")

// ErrHostClosed is the rejection reason of a batch whose IdleHost was
// closed before the batch could finish.
var ErrHostClosed = errors.New("scheduler: idle host closed")

// ProcessingError is the rejection reason of a batch whose processing
// function returned an error. The batch stops at the failing item.
type ProcessingError struct {
	// Index is the position of the failing item in the batch.
	Index int
	// Err is the error returned by the processing function.
	Err error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("scheduler: item %d: %v", e.Index, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
