package iepochstats

import "math"

// ValidatorStats counts the blocks or chunks a validator actually produced
// against the number it was scheduled to produce.
// The counters saturate instead of overflowing.
type ValidatorStats struct {
	Produced uint64
	Expected uint64
}

// AddProduced increments the produced counter by n.
func (s *ValidatorStats) AddProduced(n uint64) {
	s.Produced = satAdd(s.Produced, n)
}

// AddExpected increments the expected counter by n.
func (s *ValidatorStats) AddExpected(n uint64) {
	s.Expected = satAdd(s.Expected, n)
}

// Add accumulates other into s.
func (s *ValidatorStats) Add(other ValidatorStats) {
	s.Produced = satAdd(s.Produced, other.Produced)
	s.Expected = satAdd(s.Expected, other.Expected)
}

func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
