package utils

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsTransientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"service unavailable", errors.New("rpc error: service unavailable"), true},
		{"deadline exceeded", errors.New("context deadline exceeded"), true},
		{"network failure", errors.New("network is unreachable"), true},
		{"timeout", errors.New("i/o timeout"), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"validation failure", errors.New("title is required"), false},
		{"permission denied", errors.New("permission denied"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransientError(tt.err); got != tt.want {
				t.Errorf("IsTransientError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		if attempts <= 2 {
			return errors.New("i/o timeout")
		}
		return nil
	}

	if err := retryWithBackoff(op, 3, time.Millisecond); err != nil {
		t.Fatalf("Expected eventual success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestRetryDoesNotRetryPermanentErrors(t *testing.T) {
	attempts := 0
	permanent := errors.New("title is required")
	op := func() error {
		attempts++
		return permanent
	}

	err := retryWithBackoff(op, 3, time.Millisecond)
	if err != permanent {
		t.Fatalf("Expected the original error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected a single attempt, got %d", attempts)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		return fmt.Errorf("attempt %d: connection refused", attempts)
	}

	err := retryWithBackoff(op, 3, time.Millisecond)
	if err == nil {
		t.Fatal("Expected failure after exhausting retries")
	}
	// Initial attempt plus three retries; the last error surfaces unmodified
	if attempts != 4 {
		t.Errorf("Expected 4 attempts, got %d", attempts)
	}
	if err.Error() != "attempt 4: connection refused" {
		t.Errorf("Expected the final error unmodified, got %v", err)
	}
}
