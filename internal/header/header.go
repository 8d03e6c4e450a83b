// Package header encodes the metadata block written ahead of the extension
// and payload:
//
//	algorithm tag     8 bits
//	extension length 32 bits
//	payload length   64 bits
//	digest           8*Size(tag) bits
//
// All fields are big-endian and serialised most significant bit first.
package header

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/yyyoichi/lsb_zero/internal/digest"
)

const (
	// PrefixBytes is the size of the fixed-width part of the header.
	PrefixBytes = 1 + 4 + 8
	PrefixBits  = PrefixBytes * 8
)

var (
	ErrInsufficientCapacity = errors.New("insufficient container capacity")
	ErrMalformedHeader      = errors.New("malformed header")
)

type Header struct {
	Algorithm    digest.Algorithm
	ExtensionLen uint32
	PayloadLen   uint64
	Digest       []byte
}

// New builds the header for payload and extension, hashing payload with alg.
func New(alg digest.Algorithm, extension string, payload []byte) Header {
	return Header{
		Algorithm:    alg,
		ExtensionLen: uint32(len(extension)),
		PayloadLen:   uint64(len(payload)),
		Digest:       alg.Sum(payload),
	}
}

// Bits returns the encoded header size in bits.
func (h Header) Bits() int {
	return PrefixBits + h.Algorithm.Size()*8
}

// BodyBits returns the number of bits of extension and payload that follow
// the header. ok is false when the count does not fit in a uint64.
func (h Header) BodyBits() (bits uint64, ok bool) {
	total := uint64(h.ExtensionLen) + h.PayloadLen
	if total < h.PayloadLen || total > (1<<64-1)/8 {
		return 0, false
	}
	return total * 8, true
}

// Encode serialises h. The digest must match the algorithm size.
func (h Header) Encode() ([]byte, error) {
	if !h.Algorithm.Valid() {
		return nil, fmt.Errorf("%w: tag %d", digest.ErrUnknownAlgorithm, h.Algorithm.Tag())
	}
	if len(h.Digest) != h.Algorithm.Size() {
		return nil, fmt.Errorf("%w: %s digest is %d bytes, want %d",
			ErrMalformedHeader, h.Algorithm, len(h.Digest), h.Algorithm.Size())
	}
	buf := make([]byte, PrefixBytes, PrefixBytes+len(h.Digest))
	buf[0] = h.Algorithm.Tag()
	binary.BigEndian.PutUint32(buf[1:5], h.ExtensionLen)
	binary.BigEndian.PutUint64(buf[5:13], h.PayloadLen)
	return append(buf, h.Digest...), nil
}

// Validate checks the declared lengths against the bits left in the
// container after the header. A header decoded from noise usually fails
// here. The returned error matches both ErrMalformedHeader and
// ErrInsufficientCapacity.
func (h Header) Validate(remainingBits uint64) error {
	body, ok := h.BodyBits()
	if !ok || body > remainingBits {
		return fmt.Errorf("%w: %w: extension %d bytes and payload %d bytes declared, %d bits available",
			ErrInsufficientCapacity, ErrMalformedHeader, h.ExtensionLen, h.PayloadLen, remainingBits)
	}
	return nil
}
