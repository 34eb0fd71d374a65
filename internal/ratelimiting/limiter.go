package ratelimiting

import (
	"context"
	"sync"
	"time"
)

// RequestLimiter paces outbound requests
type RequestLimiter interface {
	// Wait blocks until the caller may send its request, or the context is done
	Wait(ctx context.Context) error
}

type minIntervalLimiter struct {
	interval  time.Duration
	nowFunc   func() time.Time
	afterFunc func(time.Duration) <-chan time.Time

	lastRequest time.Time
	mutex       sync.Mutex
}

// NewMinIntervalLimiter spaces consecutive Wait returns at least interval apart
func NewMinIntervalLimiter(
	interval time.Duration,
	nowFunc func() time.Time,
	afterFunc func(time.Duration) <-chan time.Time,
) *minIntervalLimiter {
	return &minIntervalLimiter{
		interval:  interval,
		nowFunc:   nowFunc,
		afterFunc: afterFunc,

		// No requests yet -> the first caller does not wait
		lastRequest: nowFunc().Add(-interval),
		mutex:       sync.Mutex{},
	}
}

// reserve computes the delay and claims the slot in the same critical section
func (l *minIntervalLimiter) reserve() time.Duration {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.nowFunc()
	slot := l.lastRequest.Add(l.interval)
	if slot.Before(now) {
		slot = now
	}
	l.lastRequest = slot

	return slot.Sub(now)
}

func (l *minIntervalLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return sleep(ctx, l.afterFunc, l.reserve())
}

type windowLimiter struct {
	limit     int
	window    time.Duration
	nowFunc   func() time.Time
	afterFunc func(time.Duration) <-chan time.Time

	// Start times of the last `limit` requests, oldest first
	reservations []time.Time
	mutex        sync.Mutex
}

// NewWindowLimiter allows at most limit requests to start within any window
func NewWindowLimiter(
	limit int,
	window time.Duration,
	nowFunc func() time.Time,
	afterFunc func(time.Duration) <-chan time.Time,
) *windowLimiter {
	// No requests within the window -> no waiting for the first requests
	reservations := make([]time.Time, limit)
	veryOldTime := nowFunc().Add(-window)
	for i := range limit {
		reservations[i] = veryOldTime
	}

	return &windowLimiter{
		limit:     limit,
		window:    window,
		nowFunc:   nowFunc,
		afterFunc: afterFunc,

		reservations: reservations,
		mutex:        sync.Mutex{},
	}
}

func (l *windowLimiter) reserve() time.Duration {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.nowFunc()
	slot := l.reservations[0].Add(l.window)
	if slot.Before(now) {
		slot = now
	}
	l.reservations = append(l.reservations[1:], slot)

	return slot.Sub(now)
}

func (l *windowLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return sleep(ctx, l.afterFunc, l.reserve())
}

type chain []RequestLimiter

// Chain waits on every limiter in order
func Chain(limiters ...RequestLimiter) RequestLimiter {
	return chain(limiters)
}

func (c chain) Wait(ctx context.Context) error {
	for _, limiter := range c {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, afterFunc func(time.Duration) <-chan time.Time, wait time.Duration) error {
	if wait <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-afterFunc(wait):
		return nil
	}
}
