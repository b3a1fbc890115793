package embedding

import (
	"sync"
	"time"
)

// BreakerState is the explicit state of the circuit breaker.
type BreakerState int

const (
	// BreakerState_Closed lets calls through and counts consecutive failures.
	BreakerState_Closed BreakerState = iota
	// BreakerState_Open rejects calls until the reset timeout elapses.
	BreakerState_Open
	// BreakerState_HalfOpen lets exactly one trial call through.
	BreakerState_HalfOpen
)

// String returns the state name.
func (s BreakerState) String() string {
	switch s {
	case BreakerState_Open:
		return "open"
	case BreakerState_HalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// CircuitBreaker tracks consecutive provider failures and fails fast while
// the provider is considered down. All transitions happen under one lock so
// concurrent embedding calls observe a consistent state.
type CircuitBreaker struct {
	mu           sync.Mutex
	state        BreakerState
	failures     int
	openedAt     time.Time
	threshold    int
	resetTimeout time.Duration
	nowFunc      func() time.Time
}

// NewCircuitBreaker creates a closed breaker that opens after threshold
// consecutive failures and probes again after resetTimeout.
func NewCircuitBreaker(threshold int, resetTimeout time.Duration) *CircuitBreaker {
	if threshold < 1 {
		threshold = 1
	}
	return &CircuitBreaker{
		threshold:    threshold,
		resetTimeout: resetTimeout,
		nowFunc:      time.Now,
	}
}

// Allow reports whether a call may proceed. When the reset timeout has
// elapsed on an open breaker, the caller that observes it becomes the single
// half-open trial; concurrent callers keep being rejected until the trial
// resolves.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerState_Open:
		if cb.nowFunc().Sub(cb.openedAt) >= cb.resetTimeout {
			cb.state = BreakerState_HalfOpen
			return true
		}
		return false
	case BreakerState_HalfOpen:
		// A trial call is already in flight.
		return false
	default:
		return true
	}
}

// RecordSuccess resets the breaker to closed.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.state = BreakerState_Closed
	cb.failures = 0
}

// RecordFailure counts a provider failure. The half-open trial failing, or
// the threshold being reached while closed, opens the circuit.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerState_HalfOpen:
		cb.open()
	case BreakerState_Closed:
		cb.failures++
		if cb.failures >= cb.threshold {
			cb.open()
		}
	}
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) open() {
	cb.state = BreakerState_Open
	cb.openedAt = cb.nowFunc()
	cb.failures = 0
}
