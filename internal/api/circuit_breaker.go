package api

import (
	"errors"
	"sync"
	"time"
)

// Circuit breaker guarding the SIVEC backend (Closed → Open → Half-Open).
// On the road the backend disappears constantly; fast-failing while open lets
// the shell fall back to the cached snapshot instead of hanging on timeouts.

// ErrCircuitOpen is returned without touching the network while the breaker
// is open.
var ErrCircuitOpen = errors.New("backend temporalmente inaccesible, mostrando datos locales")

type breakerState int

const (
	breakerClosed breakerState = iota
	breakerOpen
	breakerHalfOpen
)

func (s breakerState) String() string {
	switch s {
	case breakerClosed:
		return "closed"
	case breakerOpen:
		return "open"
	case breakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig holds tunable parameters; zero values take the defaults.
type BreakerConfig struct {
	FailureThreshold int           // consecutive transport failures to trip open
	SuccessThreshold int           // consecutive successes in half-open to close
	OpenTimeout      time.Duration // how long to stay open before probing
}

type circuitBreaker struct {
	mu          sync.Mutex
	state       breakerState
	failures    int
	successes   int
	lastFailure time.Time
	cfg         BreakerConfig
}

func newCircuitBreaker(cfg BreakerConfig) *circuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	return &circuitBreaker{state: breakerClosed, cfg: cfg}
}

func (cb *circuitBreaker) currentState() breakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == breakerOpen && time.Since(cb.lastFailure) >= cb.cfg.OpenTimeout {
		cb.state = breakerHalfOpen
		cb.successes = 0
	}
	return cb.state
}

// execute runs fn unless the breaker is open. Only outcomes fn reports as
// countable (transport-level failures) move the state machine; an
// application-level rejection proves the backend is reachable and counts as
// success.
func (cb *circuitBreaker) execute(fn func() (err error, transportFailure bool)) error {
	if cb.currentState() == breakerOpen {
		return ErrCircuitOpen
	}

	err, transportFailure := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil && transportFailure {
		cb.onFailure()
	} else {
		cb.onSuccess()
	}
	return err
}

func (cb *circuitBreaker) onFailure() {
	cb.failures++
	cb.lastFailure = time.Now()

	switch cb.state {
	case breakerClosed:
		if cb.failures >= cb.cfg.FailureThreshold {
			cb.state = breakerOpen
			cb.successes = 0
		}
	case breakerHalfOpen:
		// probe failed, back to open
		cb.state = breakerOpen
		cb.failures = 0
	}
}

func (cb *circuitBreaker) onSuccess() {
	switch cb.state {
	case breakerClosed:
		cb.failures = 0
	case breakerHalfOpen:
		cb.successes++
		if cb.successes >= cb.cfg.SuccessThreshold {
			cb.state = breakerClosed
			cb.failures = 0
			cb.successes = 0
		}
	}
}
