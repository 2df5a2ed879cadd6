package util

import (
	"testing"
	"time"
)

func TestTimer(t *testing.T) {
	var zero Timer
	if zero.Elapsed() != 0 || zero.ElapsedMs() != 0 {
		t.Fatalf("expected zero timer to report nothing")
	}

	timer := StartTimer()
	time.Sleep(5 * time.Millisecond)
	if timer.ElapsedMs() < 5 {
		t.Fatalf("expected at least 5ms got %d", timer.ElapsedMs())
	}
}
