package testing

import (
	"testing"
	"time"

	"github.com/go-drift/hooks/pkg/core"
	"github.com/go-drift/hooks/pkg/frame"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestEngineTester_ClockDrivesFrameTimestamps(t *testing.T) {
	var stamps []time.Time
	tester := NewEngineTesterWithT(t, func(h *core.Hooks) string { return "" })
	start := tester.Clock().Now()

	tick := func(now time.Time) error {
		stamps = append(stamps, now)
		return nil
	}
	tester.Loop().Request(tick)
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}
	tester.Loop().Request(tick)
	if err := tester.Pump(); err != nil {
		t.Fatal(err)
	}

	if len(stamps) != 2 {
		t.Fatalf("expected 2 ticks, got %d", len(stamps))
	}
	if got := stamps[0].Sub(start); got != FrameDuration {
		t.Errorf("first tick at +%v, want +%v", got, FrameDuration)
	}
	if got := stamps[1].Sub(stamps[0]); got != FrameDuration {
		t.Errorf("ticks %v apart, want %v", got, FrameDuration)
	}
}

func TestEngineTester_CleanupRestoresTimeSource(t *testing.T) {
	tester := NewEngineTester(func(h *core.Hooks) string { return "" })
	if !frame.Now().Equal(tester.Clock().Now()) {
		t.Error("tester should install its fake clock")
	}
	tester.Cleanup()
	if !tester.Engine().IsDisposed() {
		t.Error("Cleanup should dispose the engine")
	}
	if frame.Now().Equal(tester.Clock().Now()) {
		t.Error("Cleanup should restore the previous time source")
	}
}
