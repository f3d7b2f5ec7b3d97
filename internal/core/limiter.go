package core

// limiter.go bounds how many files the server validates at once.
//
// A buffered channel acts as the semaphore. When every slot is taken, a
// caller waits up to maxWait before getting ErrTooManyValidations.
// WaitForDrain lets shutdown wait for in-flight validations.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyValidations is returned when no slot frees up within the wait time.
var ErrTooManyValidations = errors.New("too many concurrent validations, please try again later")

const (
	// DefaultMaxConcurrent is the default limit for parallel validations.
	DefaultMaxConcurrent = 8

	// DefaultMaxWait is how long to wait for a slot before rejecting.
	DefaultMaxWait = 10 * time.Second
)

// Limiter restricts concurrent validations using a semaphore.
type Limiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.Mutex
	active int
}

// NewLimiter creates a limiter with maxConcurrent slots. Non-positive
// arguments fall back to the defaults.
func NewLimiter(maxConcurrent int, maxWait time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	return &Limiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot, waiting up to the limiter's max wait. The caller
// must call Release once the validation finishes.
func (l *Limiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.adjust(1)
		return nil
	case <-timer.C:
		return ErrTooManyValidations
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot taken by Acquire.
func (l *Limiter) Release() {
	l.adjust(-1)
	<-l.slots
}

func (l *Limiter) adjust(delta int) {
	l.mu.Lock()
	l.active += delta
	l.mu.Unlock()
}

// Active returns the number of validations holding a slot.
func (l *Limiter) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// WaitForDrain blocks until no validation holds a slot or ctx ends.
func (l *Limiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.Active() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// LimiterStatus is a snapshot of the limiter for health reporting.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state.
func (l *Limiter) Status() LimiterStatus {
	active := l.Active()
	return LimiterStatus{
		Active:        active,
		Available:     cap(l.slots) - len(l.slots),
		MaxConcurrent: cap(l.slots),
	}
}
