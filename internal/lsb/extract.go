package lsb

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/yyyoichi/lsb_zero/internal/bitconv"
	"github.com/yyyoichi/lsb_zero/internal/digest"
	"github.com/yyyoichi/lsb_zero/internal/header"
	"github.com/yyyoichi/lsb_zero/internal/schedule"
)

// Extract reads the header, then the declared extension and payload, and
// verifies the payload digest. Nothing is returned alongside an error.
//
// A header that names an unknown algorithm or declares more data than the
// container holds is what an image without a payload usually looks like, so
// those errors also match ErrIntegrityMismatch.
func Extract(ctx context.Context, c Container, p Params) (payload []byte, extension string, h header.Header, err error) {
	if err := ValidateLSBs(p.LSBs); err != nil {
		return nil, "", header.Header{}, err
	}
	if err := c.Validate(); err != nil {
		return nil, "", header.Header{}, err
	}
	sched := schedule.New(p.Seed, c.Units())

	h, err = ReadHeader(ctx, c, sched, p.LSBs)
	if err != nil {
		return nil, "", header.Header{}, noPayload(err)
	}
	start := h.Bits()
	if err := h.Validate(c.Capacity(p.LSBs) - uint64(start)); err != nil {
		return nil, "", header.Header{}, noPayload(err)
	}

	body, err := readBits(ctx, c, sched, start, int(h.ExtensionLen)*8+int(h.PayloadLen)*8, p)
	if err != nil {
		return nil, "", header.Header{}, err
	}
	data := bitconv.BoolsToBytes(body)
	ext, payload := data[:h.ExtensionLen], data[h.ExtensionLen:]

	if !digest.Equal(h.Algorithm.Sum(payload), h.Digest) {
		return nil, "", header.Header{}, fmt.Errorf("%w: %s digest does not match payload", ErrIntegrityMismatch, h.Algorithm)
	}
	if !utf8.Valid(ext) {
		return nil, "", header.Header{}, fmt.Errorf("%w: extension is not valid UTF-8", ErrIntegrityMismatch)
	}
	return payload, string(ext), h, nil
}

func noPayload(err error) error {
	if errors.Is(err, ErrUnknownAlgorithm) || errors.Is(err, ErrInsufficientCapacity) {
		return fmt.Errorf("%w: %w", ErrIntegrityMismatch, err)
	}
	return err
}

// ReadHeader decodes the header from the start of the stream, reading the
// fixed prefix first and then as many digest bits as the tag calls for.
func ReadHeader(ctx context.Context, c Container, sched *schedule.Scheduler, lsbs int) (header.Header, error) {
	src := NewBitSource(c, sched, lsbs)
	dec := header.NewDecoder()
	for n := dec.Need(); n > 0; n = dec.Need() {
		if err := ctx.Err(); err != nil {
			return header.Header{}, err
		}
		for range n {
			bit, err := src.ReadBit()
			if err != nil {
				return header.Header{}, err
			}
			if _, err := dec.Feed(bit); err != nil {
				return header.Header{}, err
			}
		}
	}
	return dec.Header(), nil
}

// readBits returns n stream bits starting at stream bit start.
func readBits(ctx context.Context, c Container, sched *schedule.Scheduler, start, n int, p Params) ([]bool, error) {
	if n == 0 {
		return nil, nil
	}
	first, last := start/p.LSBs, (start+n-1)/p.LSBs
	groups, err := Gather(ctx, c, sched, first, last-first+1, p.LSBs, p.Workers)
	if err != nil {
		return nil, err
	}
	off := start % p.LSBs
	bits := bitconv.Ungroup(groups, p.LSBs, off+n)
	return bits[off:], nil
}
