package core

import (
	"testing"

	"github.com/go-drift/hooks/pkg/frame"
)

func newTestScheduler(strategy Coalescing) (*renderScheduler, *frame.Loop, *int) {
	loop := frame.NewLoop()
	renders := 0
	s := &renderScheduler{
		clock:    loop,
		strategy: strategy,
		render: func() error {
			renders++
			return nil
		},
	}
	return s, loop, &renders
}

func TestRenderScheduler_SingleCoalesces(t *testing.T) {
	s, loop, renders := newTestScheduler(CoalesceSingle)
	s.request(0)
	s.request(3)
	s.request(0)
	if *renders != 0 {
		t.Fatal("request must never render synchronously")
	}
	if loop.Pending() != 1 {
		t.Errorf("pending ticks = %d, want 1", loop.Pending())
	}
	if err := loop.Step(); err != nil {
		t.Fatal(err)
	}
	if *renders != 1 {
		t.Errorf("renders = %d, want 1", *renders)
	}
	if s.pending != 0 {
		t.Error("pending handle should be cleared once the tick fires")
	}

	s.request(1)
	if err := loop.Step(); err != nil {
		t.Fatal(err)
	}
	if *renders != 2 {
		t.Errorf("renders = %d, want 2", *renders)
	}
}

func TestRenderScheduler_AdjacentSlot(t *testing.T) {
	tests := []struct {
		name    string
		indexes []int
		want    int
	}{
		{"adjacent slots coalesce", []int{0, 1}, 1},
		{"chain of adjacent slots", []int{0, 1, 2}, 1},
		{"same slot twice does not coalesce", []int{1, 1}, 2},
		{"non-adjacent slots do not coalesce", []int{0, 2}, 2},
		{"descending slots do not coalesce", []int{1, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, loop, renders := newTestScheduler(CoalesceAdjacentSlot)
			for _, i := range tt.indexes {
				s.request(i)
			}
			if err := loop.Step(); err != nil {
				t.Fatal(err)
			}
			if *renders != tt.want {
				t.Errorf("renders = %d, want %d", *renders, tt.want)
			}
		})
	}
}

func TestRenderScheduler_CancelAll(t *testing.T) {
	for _, strategy := range []Coalescing{CoalesceSingle, CoalesceAdjacentSlot} {
		s, loop, renders := newTestScheduler(strategy)
		s.request(0)
		s.request(2)
		s.cancelAll()
		if err := loop.Step(); err != nil {
			t.Fatal(err)
		}
		if *renders != 0 {
			t.Errorf("%v: renders after cancelAll = %d", strategy, *renders)
		}
	}
}

func TestParseCoalescing(t *testing.T) {
	for in, want := range map[string]Coalescing{
		"":         CoalesceSingle,
		"single":   CoalesceSingle,
		"Adjacent": CoalesceAdjacentSlot,
	} {
		got, err := ParseCoalescing(in)
		if err != nil || got != want {
			t.Errorf("ParseCoalescing(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseCoalescing("batch"); err == nil {
		t.Error("expected error for unknown strategy")
	}
	if CoalesceAdjacentSlot.String() != "adjacent" || Coalescing(9).String() != "Coalescing(9)" {
		t.Error("unexpected Coalescing.String output")
	}
}
