package utils

import (
	"log"
	"strings"
	"time"
)

const (
	// DefaultRetryAttempts is how many times a transient failure is retried
	DefaultRetryAttempts = 3

	// DefaultRetryDelay is the backoff before the first retry; it doubles each attempt
	DefaultRetryDelay = 1000 * time.Millisecond
)

// IsTransientError reports whether an error looks like a transient network
// failure worth retrying. Anything else bypasses retry and surfaces directly.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"unavailable",
		"deadline-exceeded",
		"deadline exceeded",
		"network",
		"timeout",
		"connection refused",
		"connection reset",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// RetryOperation runs op, retrying transient failures with exponential
// backoff. The final error is returned unmodified when retries are exhausted
// or the error is not classified as transient.
func RetryOperation(op func() error) error {
	return retryWithBackoff(op, DefaultRetryAttempts, DefaultRetryDelay)
}

func retryWithBackoff(op func() error, retries int, delay time.Duration) error {
	err := op()
	if err == nil {
		return nil
	}
	if retries == 0 || !IsTransientError(err) {
		return err
	}

	log.Printf("Retrying operation, %d attempts remaining. Waiting %v...", retries, delay)
	time.Sleep(delay)

	return retryWithBackoff(op, retries-1, delay*2)
}
