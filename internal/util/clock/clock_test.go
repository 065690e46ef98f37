package clock_test

import (
	"testing"
	"time"

	"pogo/internal/util/clock"
)

func TestNowMs_TracksWallClock(t *testing.T) {
	before := uint64(time.Now().UnixMilli())
	got := clock.NowMs()
	after := uint64(time.Now().UnixMilli())
	if got < before || got > after {
		t.Fatalf("NowMs=%d outside [%d,%d]", got, before, after)
	}
}

func TestElapsedMs(t *testing.T) {
	if d := clock.ElapsedMs(10_000, 4_000); d != 6_000 {
		t.Fatalf("want 6000, got %d", d)
	}
	if d := clock.ElapsedMs(4_000, 10_000); d != 0 {
		t.Fatalf("want 0 for a start in the future, got %d", d)
	}
}
