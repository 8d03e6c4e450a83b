package header

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/yyyoichi/lsb_zero/internal/digest"
)

type state int

const (
	stateFixedPrefix state = iota
	stateDigest
	stateDone
)

var errDecoderDone = errors.New("header decoder already complete")

// Decoder rebuilds a Header one bit at a time. The digest length is unknown
// until the algorithm tag has been read, so decoding moves through two
// states: the fixed prefix, then the digest.
type Decoder struct {
	state  state
	buf    []byte
	nbits  int
	header Header
}

func NewDecoder() *Decoder {
	return &Decoder{buf: make([]byte, 0, PrefixBytes+64)}
}

// Need reports how many more bits the decoder expects in its current state.
func (d *Decoder) Need() int {
	switch d.state {
	case stateFixedPrefix:
		return PrefixBits - d.nbits
	case stateDigest:
		return d.header.Bits() - d.nbits
	default:
		return 0
	}
}

// Done reports whether the whole header has been read.
func (d *Decoder) Done() bool {
	return d.state == stateDone
}

// Feed consumes one bit. It returns ErrUnknownAlgorithm as soon as the tag
// byte is complete and unknown.
func (d *Decoder) Feed(bit bool) (done bool, err error) {
	if d.state == stateDone {
		return true, errDecoderDone
	}
	if d.nbits%8 == 0 {
		d.buf = append(d.buf, 0)
	}
	if bit {
		d.buf[len(d.buf)-1] |= 1 << uint(7-d.nbits%8)
	}
	d.nbits++

	if d.state == stateFixedPrefix {
		if d.nbits == 8 {
			alg, err := digest.FromTag(d.buf[0])
			if err != nil {
				return false, err
			}
			d.header.Algorithm = alg
		}
		if d.nbits == PrefixBits {
			d.header.ExtensionLen = binary.BigEndian.Uint32(d.buf[1:5])
			d.header.PayloadLen = binary.BigEndian.Uint64(d.buf[5:13])
			d.state = stateDigest
		}
	}
	if d.state == stateDigest && d.nbits == d.header.Bits() {
		d.header.Digest = append([]byte(nil), d.buf[PrefixBytes:]...)
		d.state = stateDone
	}
	return d.state == stateDone, nil
}

// Header returns the decoded header; it is only meaningful once Done.
func (d *Decoder) Header() Header {
	return d.header
}

// Decode reads a header from a complete buffer as produced by Encode and
// reports how many bits it used. Containers are read through Decoder, one
// bit at a time; Decode is for inspecting encoded headers.
func Decode(buf []byte) (Header, int, error) {
	d := NewDecoder()
	for i := 0; !d.Done(); i++ {
		if i >= len(buf)*8 {
			return Header{}, 0, fmt.Errorf("%w: header truncated after %d bits", ErrInsufficientCapacity, d.nbits)
		}
		if _, err := d.Feed((buf[i/8]>>uint(7-i%8))&1 == 1); err != nil {
			return Header{}, 0, err
		}
	}
	return d.header, d.nbits, nil
}
