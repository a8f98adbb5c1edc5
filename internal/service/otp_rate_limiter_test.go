package service

import (
	"context"
	"testing"
	"time"
)

func TestOTPRateLimiter_SlidingWindow(t *testing.T) {
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewOTPRateLimiter(10*time.Minute, 3).(*otpRateLimiter)
	l.now = func() time.Time { return current }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !l.Allow(ctx, "a@example.com") {
			t.Fatalf("request %d should be allowed", i+1)
		}
		current = current.Add(time.Minute)
	}
	if l.Allow(ctx, "A@Example.com ") {
		t.Fatalf("expected fourth request inside window to be denied")
	}
	if !l.Allow(ctx, "b@example.com") {
		t.Fatalf("expected other keys to be unaffected")
	}

	// La primera solicitud sale de la ventana.
	current = current.Add(8 * time.Minute)
	if !l.Allow(ctx, "a@example.com") {
		t.Fatalf("expected request to be allowed once the window slides")
	}
}

func TestOTPRateLimiter_EmptyKey(t *testing.T) {
	l := NewOTPRateLimiter(time.Minute, 3)
	if l.Allow(context.Background(), "  ") {
		t.Fatalf("expected empty key to be rejected")
	}
}
