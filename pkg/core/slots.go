package core

// hookKind selects one of the per-kind slot tables.
type hookKind int

const (
	kindState hookKind = iota
	kindLayoutEffect
	kindEffect
	kindCallback
	numKinds
)

func (k hookKind) String() string {
	switch k {
	case kindState:
		return "state"
	case kindLayoutEffect:
		return "layout-effect"
	case kindEffect:
		return "effect"
	case kindCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// slot is the storage cell of one hook instance. Which fields are used
// depends on the hook kind.
type slot struct {
	// state
	value    any
	hasValue bool
	setter   any

	// effects and callbacks
	deps depRecord

	// effects
	cleanup Cleanup

	// callbacks
	fn    any
	hasFn bool
}

// slotStore holds every hook slot of an engine, addressed by kind and call
// position. Slots are created on first use and never evicted. The per-kind
// counters are reset at the start of each render, slot contents are not.
type slotStore struct {
	counters [numKinds]int
	slots    [numKinds][]*slot
}

// next returns the current call position for kind and advances it.
func (s *slotStore) next(kind hookKind) int {
	index := s.counters[kind]
	s.counters[kind]++
	return index
}

// get returns the slot at (kind, index), creating it and any missing lower
// slots on first access.
func (s *slotStore) get(kind hookKind, index int) *slot {
	for len(s.slots[kind]) <= index {
		s.slots[kind] = append(s.slots[kind], &slot{})
	}
	return s.slots[kind][index]
}

// len returns the number of slots of kind.
func (s *slotStore) len(kind hookKind) int {
	return len(s.slots[kind])
}

func (s *slotStore) resetCounters() {
	s.counters = [numKinds]int{}
}
