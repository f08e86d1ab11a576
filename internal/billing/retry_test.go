package billing

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func retryCfg() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      10 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestWithRetry_SuccessFirstAttempt(t *testing.T) {
	attempts := 0
	result, err := WithRetry(context.Background(), retryCfg(), func(ctx context.Context) (string, error) {
		attempts++
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected 'ok', got %q", result)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithRetry_TransientThenSuccess(t *testing.T) {
	attempts := 0
	result, err := WithRetry(context.Background(), retryCfg(), func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", &APIError{Status: 503, Path: "/v1/invoices", Body: "unavailable"}
		}
		return "recovered", nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "recovered" {
		t.Fatalf("expected 'recovered', got %q", result)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetry_NonTransientStopsImmediately(t *testing.T) {
	attempts := 0
	_, err := WithRetry(context.Background(), retryCfg(), func(ctx context.Context) (string, error) {
		attempts++
		return "", &APIError{Status: 404, Path: "/v1/customers/x", Body: "missing"}
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithRetry_TransportErrorsAreRetried(t *testing.T) {
	attempts := 0
	_, err := WithRetry(context.Background(), retryCfg(), func(ctx context.Context) (string, error) {
		attempts++
		return "", fmt.Errorf("connection reset")
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 4 { // initial + MaxRetries
		t.Fatalf("expected 4 attempts, got %d", attempts)
	}
}

func TestWithRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(ctx, retryCfg(), func(ctx context.Context) (string, error) {
		return "", &APIError{Status: 500, Path: "/", Body: "boom"}
	})

	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
