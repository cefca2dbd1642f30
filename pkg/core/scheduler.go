package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-drift/hooks/pkg/frame"
)

// Coalescing selects how repeated re-render requests collapse into one tick.
type Coalescing int

const (
	// CoalesceSingle keeps one pending render tick per engine. Each request
	// cancels the pending tick and schedules a new one, so only the last
	// request of a tick fires.
	CoalesceSingle Coalescing = iota
	// CoalesceAdjacentSlot records the pending tick per state slot and each
	// request cancels the tick recorded for the slot just below its own.
	// Requests from slots that are not adjacent all fire.
	CoalesceAdjacentSlot
)

func (c Coalescing) String() string {
	switch c {
	case CoalesceSingle:
		return "single"
	case CoalesceAdjacentSlot:
		return "adjacent"
	default:
		return fmt.Sprintf("Coalescing(%d)", int(c))
	}
}

// ParseCoalescing parses the names produced by Coalescing.String.
func ParseCoalescing(s string) (Coalescing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single":
		return CoalesceSingle, nil
	case "adjacent", "adjacent-slot":
		return CoalesceAdjacentSlot, nil
	default:
		return 0, fmt.Errorf("unknown coalescing strategy %q (use single or adjacent)", s)
	}
}

// renderScheduler turns setter calls into future renders. A render never
// runs inside the setter call itself.
type renderScheduler struct {
	clock    frame.Clock
	strategy Coalescing
	render   func() error

	pending frame.Handle
	bySlot  map[int]frame.Handle
}

// request schedules a render on the next tick on behalf of state slot index.
func (s *renderScheduler) request(index int) {
	if s.strategy == CoalesceAdjacentSlot {
		if h := s.bySlot[index-1]; h != 0 {
			s.clock.Cancel(h)
		}
		if s.bySlot == nil {
			s.bySlot = make(map[int]frame.Handle)
		}
		s.bySlot[index] = s.clock.Request(func(time.Time) error {
			return s.render()
		})
		return
	}

	if s.pending != 0 {
		s.clock.Cancel(s.pending)
	}
	var h frame.Handle
	h = s.clock.Request(func(time.Time) error {
		if s.pending == h {
			s.pending = 0
		}
		return s.render()
	})
	s.pending = h
}

// cancelAll cancels every tick this scheduler may still have pending.
func (s *renderScheduler) cancelAll() {
	if s.pending != 0 {
		s.clock.Cancel(s.pending)
		s.pending = 0
	}
	for index, h := range s.bySlot {
		s.clock.Cancel(h)
		delete(s.bySlot, index)
	}
}
