package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteCountsOnlyClassifiedFailures(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	errTransient := errors.New("upstream 503")
	errPermanent := errors.New("upstream 400")
	isTransient := func(err error) bool { return errors.Is(err, errTransient) }

	if err := b.Execute(func() error { return errPermanent }, isTransient); !errors.Is(err, errPermanent) {
		t.Fatalf("expected permanent error passthrough, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("permanent errors must not open the breaker, got %s", state)
	}

	if err := b.Execute(func() error { return errTransient }, isTransient); !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error passthrough, got %v", err)
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after transient failure, got %s", state)
	}

	called := false
	err := b.Execute(func() error { called = true; return nil }, isTransient)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected rejection without calling fn, err=%v called=%v", err, called)
	}
}

func TestCircuitBreaker_NilAndDisabledAdmitEverything(t *testing.T) {
	var b *CircuitBreaker
	if err := b.Execute(func() error { return nil }, nil); err != nil {
		t.Fatalf("nil breaker must run fn: %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("nil breaker reports closed, got %s", state)
	}

	if got := FromConfig(CircuitBreakerConfig{Enabled: false}); got != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	if got := FromConfig(DefaultCircuitBreakerConfig()); got == nil || got.failureThreshold != 5 {
		t.Fatalf("expected breaker with default threshold, got %+v", got)
	}
}

func TestFromConfig_FillsUnsetLimits(t *testing.T) {
	got := FromConfig(CircuitBreakerConfig{Enabled: true, FailureThreshold: 3})
	if got == nil {
		t.Fatalf("expected breaker")
	}
	if got.failureThreshold != 3 || got.openTimeout != defaultOpenTimeout || got.halfOpenMaxReq != defaultHalfOpenProbes {
		t.Fatalf("unexpected limits: threshold=%d open=%s probes=%d", got.failureThreshold, got.openTimeout, got.halfOpenMaxReq)
	}
}
