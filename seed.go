package steg

import (
	"crypto/hkdf"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

const seedInfo = "lsb_zero-Seed-V1"

// SeedFromPassphrase derives a seed from a passphrase with HKDF-SHA256 so
// that users can remember a phrase instead of a number. salt may be nil.
func SeedFromPassphrase(passphrase, salt []byte) (uint64, error) {
	key, err := hkdf.Key(sha256.New, passphrase, salt, seedInfo, 8)
	if err != nil {
		return 0, fmt.Errorf("derive seed: %w", err)
	}
	return binary.BigEndian.Uint64(key), nil
}
