package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withKeys(s *Scheduler, keys [rounds]uint64) *Scheduler {
	s.keys = keys
	return s
}

func TestMix64(t *testing.T) {
	assert.Equal(t, uint64(0), mix64(0))
	// first output of SplitMix64 seeded with 0
	assert.Equal(t, uint64(0xe220a8397b1dcdaf), mix64(0x9e3779b97f4a7c15))
}

// The permutation is frozen format; these vectors must never change.
func TestPermutationVectors(t *testing.T) {
	test := []struct {
		units int
		keys  [rounds]uint64
		exp   []int
	}{
		{10, [rounds]uint64{1, 2, 3, 4}, []int{4, 3, 0, 9, 6, 8, 2, 7, 5, 1}},
		{16, [rounds]uint64{0x0123456789abcdef, 0xfedcba9876543210, 42, 7},
			[]int{9, 3, 11, 13, 2, 8, 1, 6, 15, 4, 12, 10, 5, 14, 7, 0}},
		{1000, [rounds]uint64{5, 6, 7, 8}, []int{960, 552, 218, 961, 591, 300, 365, 283}},
	}
	for _, tt := range test {
		s := withKeys(New(0, tt.units), tt.keys)
		assert.Equal(t, tt.exp, s.Take(len(tt.exp)))
	}
}

func TestBijection(t *testing.T) {
	for _, units := range []int{1, 2, 3, 4, 5, 17, 64, 1000, 4097, 64 * 64 * 3} {
		for _, seed := range []uint64{0, 1, 42, 1<<63 + 12345} {
			s := New(seed, units)
			seen := make([]bool, units)
			for i := range units {
				u := s.At(i)
				require.GreaterOrEqual(t, u, 0)
				require.Less(t, u, units)
				require.False(t, seen[u], "units=%d seed=%d duplicate %d", units, seed, u)
				seen[u] = true
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	a := New(42, 12288).Take(12288)
	b := New(42, 12288).Take(12288)
	assert.Equal(t, a, b)

	c := New(43, 12288).Take(12288)
	assert.NotEqual(t, a, c)
}

func TestNextMatchesTake(t *testing.T) {
	s := New(7, 500)
	exp := s.Take(500)
	var got []int
	for {
		u, ok := s.Next()
		if !ok {
			break
		}
		got = append(got, u)
	}
	assert.Equal(t, exp, got)

	s.Reset()
	u, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, exp[0], u)
}

func TestTake(t *testing.T) {
	s := New(1, 10)
	assert.Len(t, s.Take(4), 4)
	assert.Len(t, s.Take(100), 10)
	assert.Equal(t, s.Take(10)[:4], s.Take(4))
}

func TestEmpty(t *testing.T) {
	s := New(42, 0)
	assert.Zero(t, s.Len())
	_, ok := s.Next()
	assert.False(t, ok)
	assert.Empty(t, s.Take(3))
	assert.Panics(t, func() { s.At(0) })
	assert.Panics(t, func() { New(1, -1) })
}

func TestScattered(t *testing.T) {
	// the first addresses should not be clustered at the start of the image
	s := New(42, 64*64*3)
	first := s.Take(64)
	var low int
	for _, u := range first {
		if u < 64*64*3/4 {
			low++
		}
	}
	assert.Less(t, low, 40)
}
