package main

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrTimeout = errors.New("detection timed out")
	ErrPanic   = errors.New("panic during detection")
)

type detectResult struct {
	report *Report
	err    error
}

// runGuarded runs fn in its own goroutine and waits at most limit for it.
// A zero limit waits until fn returns or ctx is done. A panic inside fn is
// turned into ErrPanic.
//
// On timeout fn's context is cancelled; index scans stop at the next leaf
// and the result, if any, is dropped.
func runGuarded(ctx context.Context, limit time.Duration, fn func(context.Context) (*Report, error)) (*Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan detectResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- detectResult{err: fmt.Errorf("%w: %v", ErrPanic, r)}
			}
		}()
		rep, err := fn(ctx)
		ch <- detectResult{report: rep, err: err}
	}()

	var expired <-chan time.Time
	if limit > 0 {
		timer := time.NewTimer(limit)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case res := <-ch:
		return res.report, res.err
	case <-expired:
		return nil, fmt.Errorf("%w after %s", ErrTimeout, limit)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
