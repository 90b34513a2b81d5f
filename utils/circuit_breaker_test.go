package utils

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestCircuitBreaker_InitialState(t *testing.T) {
	cb := NewCircuitBreaker(nil, slog.Default())

	if cb.State() != StateClosed {
		t.Errorf("Expected initial state to be CLOSED, got %s", cb.State())
	}
}

func TestCircuitBreaker_SuccessfulRequests(t *testing.T) {
	config := &CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		Timeout:          1 * time.Second,
		MaxRequests:      2,
	}

	cb := NewCircuitBreaker(config, slog.Default())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := cb.Execute(ctx, func(ctx context.Context) error {
			return nil
		})
		if err != nil {
			t.Errorf("Unexpected error for successful operation %d: %v", i, err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("Expected state to remain CLOSED after successes, got %s", cb.State())
	}
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	config := &CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		Timeout:          time.Minute,
		MaxRequests:      1,
	}

	cb := NewCircuitBreaker(config, slog.Default())
	ctx := context.Background()
	failing := errors.New("remote down")

	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, func(ctx context.Context) error {
			return failing
		})
	}

	if cb.State() != StateOpen {
		t.Fatalf("Expected state OPEN after %d failures, got %s", config.FailureThreshold, cb.State())
	}

	// While open, requests are rejected without running the operation.
	ran := false
	err := cb.Execute(ctx, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if !errors.Is(err, ErrCircuitBreakerOpen) {
		t.Errorf("Expected ErrCircuitBreakerOpen, got %v", err)
	}
	if ran {
		t.Error("Operation must not run while the breaker is open")
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	config := &CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 2,
		Timeout:          10 * time.Millisecond,
		MaxRequests:      2,
	}

	cb := NewCircuitBreaker(config, slog.Default())
	ctx := context.Background()

	_ = cb.Execute(ctx, func(ctx context.Context) error {
		return errors.New("boom")
	})
	if cb.State() != StateOpen {
		t.Fatalf("Expected state OPEN, got %s", cb.State())
	}

	time.Sleep(20 * time.Millisecond)

	// Two probe successes close the breaker again.
	for i := 0; i < 2; i++ {
		if err := cb.Execute(ctx, func(ctx context.Context) error { return nil }); err != nil {
			t.Fatalf("Unexpected probe error: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("Expected state CLOSED after recovery, got %s", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	config := &CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          10 * time.Millisecond,
		MaxRequests:      1,
	}

	cb := NewCircuitBreaker(config, slog.Default())
	ctx := context.Background()

	_ = cb.Execute(ctx, func(ctx context.Context) error {
		return errors.New("boom")
	})
	time.Sleep(20 * time.Millisecond)

	_ = cb.Execute(ctx, func(ctx context.Context) error {
		return errors.New("still down")
	})

	if cb.State() != StateOpen {
		t.Errorf("Expected state OPEN after half-open failure, got %s", cb.State())
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	config := &CircuitBreakerConfig{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		MaxRequests:      1,
	}

	cb := NewCircuitBreaker(config, slog.Default())
	_ = cb.Execute(context.Background(), func(ctx context.Context) error {
		return errors.New("boom")
	})
	if cb.State() != StateOpen {
		t.Fatalf("Expected state OPEN, got %s", cb.State())
	}

	cb.Reset()
	if cb.State() != StateClosed {
		t.Errorf("Expected state CLOSED after reset, got %s", cb.State())
	}
}
