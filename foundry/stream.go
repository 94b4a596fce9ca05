// Copyright (c) Microsoft. All rights reserved.

package foundry

import (
	"context"
	"sync"
)

// ResponseStream provides a pull-based iterator over streaming responses.
// A producer goroutine pushes values into a small channel; the caller pulls
// them with Next (or Each) at its own pace.
//
// Callers must call Close when done, or use a context with cancellation.
type ResponseStream[T any] struct {
	ch        <-chan T
	errCh     <-chan error
	cancel    context.CancelFunc
	closeOnce sync.Once
	err       error
}

// NewResponseStream creates a ResponseStream by running producer in a goroutine.
// The channel is closed automatically when the producer returns; a non-nil
// producer error is reported by the Next call that observes the end.
func NewResponseStream[T any](ctx context.Context, producer func(ctx context.Context, ch chan<- T) error) *ResponseStream[T] {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan T, 1)
	errCh := make(chan error, 1)

	go func() {
		defer close(ch)
		if err := producer(ctx, ch); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	return &ResponseStream[T]{
		ch:     ch,
		errCh:  errCh,
		cancel: cancel,
	}
}

// Next returns the next value from the stream.
// ok is false when the stream is exhausted. err is non-nil on failure.
func (s *ResponseStream[T]) Next(ctx context.Context) (val T, ok bool, err error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	case v, open := <-s.ch:
		if !open {
			if e, received := <-s.errCh; received {
				s.err = e
			}
			var zero T
			return zero, false, s.err
		}
		return v, true, nil
	}
}

// Each calls fn for every value until the stream is exhausted, fn returns an
// error, or the stream fails.
func (s *ResponseStream[T]) Each(ctx context.Context, fn func(T) error) error {
	for {
		val, ok, err := s.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(val); err != nil {
			return err
		}
	}
}

// Collect drains the entire stream and returns all values.
func (s *ResponseStream[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T
	err := s.Each(ctx, func(v T) error {
		items = append(items, v)
		return nil
	})
	return items, err
}

// Close cancels the producer and releases resources.
// Safe to call multiple times.
func (s *ResponseStream[T]) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		for range s.ch {
		}
	})
	return nil
}
