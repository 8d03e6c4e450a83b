// Package lsb writes and reads a bit stream in the low bits of a container's
// channel values. Units are visited in the seeded order of the schedule
// package; the N-th scheduled unit holds stream bits [N*lsbs, (N+1)*lsbs),
// first bit in the most significant position of the group.
package lsb

import (
	"context"
	"fmt"
	"sync"

	"github.com/yyyoichi/lsb_zero/internal/schedule"
)

// chunkSize is the number of groups a worker handles between context checks.
const chunkSize = 1024

func ValidateLSBs(lsbs int) error {
	if lsbs < 1 || lsbs > ChannelBits {
		return fmt.Errorf("%w: %d, must be between 1 and %d", ErrInvalidLSBs, lsbs, ChannelBits)
	}
	return nil
}

// groupMask returns the channel bits occupied by the first n bits of an
// lsbs-wide group.
func groupMask(lsbs, n int) uint8 {
	return uint8((1<<n - 1) << (lsbs - n))
}

// Scatter writes groups into c at the units scheduled for group indices
// [0, len(groups)). Only the top tail bits of the last group are written.
// Distinct indices map to distinct units, so workers own disjoint values of
// c.Pix and need no locking.
func Scatter(ctx context.Context, c Container, sched *schedule.Scheduler, groups []uint8, lsbs, tail, workers int) error {
	if len(groups) > sched.Len() {
		return fmt.Errorf("%w: %d groups for %d units", ErrInsufficientCapacity, len(groups), sched.Len())
	}
	full := groupMask(lsbs, lsbs)
	return parallel(ctx, len(groups), workers, func(i int) {
		mask := full
		if i == len(groups)-1 {
			mask = groupMask(lsbs, tail)
		}
		u := sched.At(i)
		c.Pix[u] = c.Pix[u]&^mask | groups[i]&mask
	})
}

// Gather reads n groups starting at group index from.
func Gather(ctx context.Context, c Container, sched *schedule.Scheduler, from, n, lsbs, workers int) ([]uint8, error) {
	if from < 0 || n < 0 || from+n > sched.Len() {
		return nil, fmt.Errorf("%w: groups [%d, %d) of %d units", ErrInsufficientCapacity, from, from+n, sched.Len())
	}
	mask := groupMask(lsbs, lsbs)
	groups := make([]uint8, n)
	err := parallel(ctx, n, workers, func(i int) {
		groups[i] = c.Pix[sched.At(from+i)] & mask
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// parallel runs fn for every index in [0, n), splitting the range into
// contiguous blocks, one per worker.
func parallel(ctx context.Context, n, workers int, fn func(i int)) error {
	if n == 0 {
		return ctx.Err()
	}
	workers = max(1, min(workers, (n+chunkSize-1)/chunkSize))
	per := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if (i-start)%chunkSize == 0 && ctx.Err() != nil {
					return
				}
				fn(i)
			}
		}(w*per, min(n, (w+1)*per))
	}
	wg.Wait()
	return ctx.Err()
}

// BitSource reads the stream one bit at a time in schedule order. It is used
// for the header, whose length is only known while it is being read.
type BitSource struct {
	c     Container
	sched *schedule.Scheduler
	lsbs  int
	pos   int
	group uint8
}

// NewBitSource rewinds sched and reads from its first unit.
func NewBitSource(c Container, sched *schedule.Scheduler, lsbs int) *BitSource {
	sched.Reset()
	return &BitSource{c: c, sched: sched, lsbs: lsbs}
}

// Pos returns the index of the next stream bit.
func (s *BitSource) Pos() int {
	return s.pos
}

func (s *BitSource) ReadBit() (bool, error) {
	off := s.pos % s.lsbs
	if off == 0 {
		unit, ok := s.sched.Next()
		if !ok {
			return false, fmt.Errorf("%w: stream ends after %d bits", ErrInsufficientCapacity, s.pos)
		}
		s.group = s.c.Pix[unit]
	}
	s.pos++
	return (s.group>>uint(s.lsbs-1-off))&1 == 1, nil
}
