package clock

import (
	"testing"
	"time"
)

func TestRealClockReturnsUTC(t *testing.T) {
	c := &RealClock{}

	now := c.Now()
	if now.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", now.Location())
	}

	if time.Since(now) < 0 {
		t.Fatalf("expected now to be <= current time")
	}
}

func TestFixedClockAdvance(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFixedClock(fixed)

	if got := c.Now(); !got.Equal(fixed) {
		t.Fatalf("expected fixed time %v, got %v", fixed, got)
	}

	want := fixed.Add(90 * time.Minute)
	if got := c.Advance(90 * time.Minute); !got.Equal(want) {
		t.Fatalf("Advance returned %v, want %v", got, want)
	}

	if got := c.Now(); !got.Equal(want) {
		t.Fatalf("expected %v after Advance, got %v", want, got)
	}
}
