// Package schedule produces the seeded order in which container units are
// visited. The order is part of the on-image format and must never change.
//
// The permutation is a four round balanced Feistel network over the smallest
// even bit width covering the unit count, with cycle walking to stay inside
// [0, units). Round keys are the first four outputs of a PCG-DXSM generator
// seeded with (seed, keySalt).
package schedule

import (
	"math/rand/v2"
)

const (
	rounds = 4
	// "lsb_zero"
	keySalt uint64 = 0x6c73625f7a65726f
)

type Scheduler struct {
	units int
	half  uint
	mask  uint64
	keys  [rounds]uint64
	next  int
}

// New returns the scheduler for units addressable units. It panics on a
// negative count.
func New(seed uint64, units int) *Scheduler {
	if units < 0 {
		panic("schedule: negative unit count")
	}
	s := &Scheduler{units: units}
	width := uint(2)
	for width < 64 && uint64(1)<<width < uint64(units) {
		width += 2
	}
	s.half = width / 2
	s.mask = uint64(1)<<s.half - 1

	pcg := rand.NewPCG(seed, keySalt)
	for i := range s.keys {
		s.keys[i] = pcg.Uint64()
	}
	return s
}

// Len returns the number of units in the sequence.
func (s *Scheduler) Len() int {
	return s.units
}

// At returns the i-th unit of the sequence. Random access is what lets
// workers process disjoint index ranges independently.
func (s *Scheduler) At(i int) int {
	if i < 0 || i >= s.units {
		panic("schedule: index out of range")
	}
	x := s.permute(uint64(i))
	for x >= uint64(s.units) {
		x = s.permute(x)
	}
	return int(x)
}

// Next yields the sequence in order; ok is false once it is exhausted.
func (s *Scheduler) Next() (unit int, ok bool) {
	if s.next >= s.units {
		return 0, false
	}
	unit = s.At(s.next)
	s.next++
	return unit, true
}

// Reset rewinds Next to the start of the sequence.
func (s *Scheduler) Reset() {
	s.next = 0
}

// Take returns the first n units of the sequence.
func (s *Scheduler) Take(n int) []int {
	n = min(n, s.units)
	out := make([]int, n)
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

func (s *Scheduler) permute(x uint64) uint64 {
	l, r := x>>s.half, x&s.mask
	for _, k := range s.keys {
		l, r = r, l^(mix64(r^k)&s.mask)
	}
	return l<<s.half | r
}

// mix64 is the SplitMix64 finaliser.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
