package bitconv

import "github.com/yyyoichi/bitstream-go"

// Stream is a read-only, MSB-first bit view over a sequence of byte slices.
type Stream struct {
	reader *bitstream.BitReader[uint64]
}

// NewStream concatenates parts into one bit stream.
func NewStream(parts ...[]byte) *Stream {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, part := range parts {
		for _, bit := range BytesToBools(part) {
			w.WriteBool(bit)
		}
	}
	reader := bitstream.NewBitReader(w.Data(), 0, 0)
	reader.SetBits(w.Bits())
	return &Stream{reader: reader}
}

// Len returns the number of bits in the stream.
func (s *Stream) Len() int {
	return s.reader.Bits()
}

func (s *Stream) Bit(at int) bool {
	bit, _ := s.reader.ReadBitAt(at)
	return bit
}

// Group returns the width bits starting at stream bit at, packed with the
// first stream bit as the most significant bit of the result. Bits past the
// end of the stream are reported in n and left as zero.
func (s *Stream) Group(at, width int) (v uint8, n int) {
	for i := range width {
		v <<= 1
		if at+i < s.Len() {
			if s.Bit(at + i) {
				v |= 1
			}
			n++
		}
	}
	return v, n
}

// Groups splits the whole stream into width-bit groups. The last group may
// carry fewer than width meaningful bits; its count is returned as tail.
func (s *Stream) Groups(width int) (groups []uint8, tail int) {
	total := s.Len()
	groups = make([]uint8, (total+width-1)/width)
	for i := range groups {
		groups[i], tail = s.Group(i*width, width)
	}
	return groups, tail
}

// Ungroup is the inverse of Groups: it expands width-bit groups into bools,
// most significant bit first, keeping only the first n bits.
func Ungroup(groups []uint8, width, n int) []bool {
	bits := make([]bool, 0, len(groups)*width)
	for _, g := range groups {
		for i := width - 1; i >= 0; i-- {
			bits = append(bits, (g>>uint(i))&1 == 1)
		}
	}
	if n < len(bits) {
		bits = bits[:n]
	}
	return bits
}
