package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chazu/trisect/pkg/index"
)

func TestRunGuardedReturnsResult(t *testing.T) {
	want := &Report{Skipped: 3, Pairs: index.NewPairSet()}
	got, err := runGuarded(context.Background(), time.Second, func(context.Context) (*Report, error) {
		return want, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRunGuardedPanic(t *testing.T) {
	_, err := runGuarded(context.Background(), time.Second, func(context.Context) (*Report, error) {
		panic("boom")
	})
	if !errors.Is(err, ErrPanic) {
		t.Fatalf("expected ErrPanic, got %v", err)
	}
}

func TestRunGuardedTimeout(t *testing.T) {
	stopped := make(chan struct{})
	_, err := runGuarded(context.Background(), 20*time.Millisecond, func(ctx context.Context) (*Report, error) {
		<-ctx.Done()
		close(stopped)
		return nil, ctx.Err()
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	// The worker sees its context cancelled once the guard gives up.
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Error("worker context was not cancelled")
	}
}

func TestRunGuardedNoLimit(t *testing.T) {
	got, err := runGuarded(context.Background(), 0, func(context.Context) (*Report, error) {
		time.Sleep(10 * time.Millisecond)
		return &Report{}, nil
	})
	if err != nil || got == nil {
		t.Fatalf("got %v, %v", got, err)
	}
}
