package bitconv

// BytesToBools expands b into bits, most significant bit of each byte first.
func BytesToBools(b []byte) []bool {
	bits := make([]bool, len(b)*8)
	for i := range bits {
		bits[i] = b[i/8]&(0x80>>uint(i%8)) != 0
	}
	return bits
}

// BoolsToBytes packs bits most significant bit first. A trailing partial
// byte is padded with zero bits.
func BoolsToBytes(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}
