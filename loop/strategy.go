package loop

import "sort"

// A Strategy decides the order registered sources are polled in each
// dispatch pass.
type Strategy interface {
	Named

	// Arrange returns the entries in the order they should be polled during
	// the given pass. Implementations must not mutate the input slice.
	Arrange(pass uint64, entries []Entry) []Entry
}

// FairStrategy services every ready source once per pass, rotating the
// starting point each pass so that no source is favored. Two sources that
// are persistently ready are serviced in bounded alternation, never starving
// each other.
type FairStrategy struct{}

// NewFairStrategy creates a FairStrategy.
func NewFairStrategy() *FairStrategy {
	return &FairStrategy{}
}

// Name returns the name of the strategy.
func (s *FairStrategy) Name() string {
	return "Fair"
}

// Arrange rotates the entries by the pass number.
func (s *FairStrategy) Arrange(pass uint64, entries []Entry) []Entry {
	if len(entries) == 0 {
		return nil
	}

	start := int(pass % uint64(len(entries)))
	arranged := make([]Entry, 0, len(entries))
	arranged = append(arranged, entries[start:]...)
	arranged = append(arranged, entries[:start]...)

	return arranged
}

// PriorityStrategy always polls higher-priority sources first, breaking ties
// by registration order. A persistently ready high-priority source can
// starve the rest; use FairStrategy when that is not acceptable.
type PriorityStrategy struct{}

// NewPriorityStrategy creates a PriorityStrategy.
func NewPriorityStrategy() *PriorityStrategy {
	return &PriorityStrategy{}
}

// Name returns the name of the strategy.
func (s *PriorityStrategy) Name() string {
	return "Priority"
}

// Arrange sorts the entries by descending priority, stably.
func (s *PriorityStrategy) Arrange(_ uint64, entries []Entry) []Entry {
	arranged := make([]Entry, len(entries))
	copy(arranged, entries)

	sort.SliceStable(arranged, func(i, j int) bool {
		return arranged[i].Priority > arranged[j].Priority
	})

	return arranged
}
