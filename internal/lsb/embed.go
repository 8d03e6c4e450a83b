package lsb

import (
	"context"
	"fmt"

	"github.com/yyyoichi/lsb_zero/internal/bitconv"
	"github.com/yyyoichi/lsb_zero/internal/digest"
	"github.com/yyyoichi/lsb_zero/internal/header"
	"github.com/yyyoichi/lsb_zero/internal/schedule"
)

type Params struct {
	LSBs    int
	Seed    uint64
	Workers int
}

// Embed writes header, extension and payload into a copy of c and returns
// the copy together with the header that was written.
func Embed(ctx context.Context, c Container, payload []byte, extension string, alg digest.Algorithm, p Params) (Container, header.Header, error) {
	if err := ValidateLSBs(p.LSBs); err != nil {
		return Container{}, header.Header{}, err
	}
	if err := c.Validate(); err != nil {
		return Container{}, header.Header{}, err
	}
	h := header.New(alg, extension, payload)
	head, err := h.Encode()
	if err != nil {
		return Container{}, header.Header{}, err
	}

	stream := bitconv.NewStream(head, []byte(extension), payload)
	if need, capacity := uint64(stream.Len()), c.Capacity(p.LSBs); need > capacity {
		return Container{}, header.Header{}, fmt.Errorf("%w: %d bits required, %d bits available",
			ErrInsufficientCapacity, need, capacity)
	}

	out := c.Copy()
	groups, tail := stream.Groups(p.LSBs)
	sched := schedule.New(p.Seed, c.Units())
	if err := Scatter(ctx, out, sched, groups, p.LSBs, tail, p.Workers); err != nil {
		return Container{}, header.Header{}, err
	}
	return out, h, nil
}

// Required returns the number of stream bits needed to embed payloadLen
// bytes with the given extension length and algorithm.
func Required(alg digest.Algorithm, extensionLen, payloadLen int) uint64 {
	return uint64(header.PrefixBits+alg.Size()*8) + uint64(extensionLen+payloadLen)*8
}
