// Package digest provides the closed set of hash algorithms whose digest is
// stored in the embedded header. The numeric tag of every algorithm is written
// into each image, so tags are append-only.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"errors"
	"fmt"
	"hash"
	"strings"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
)

type Algorithm uint8

const (
	BLAKE3 Algorithm = iota
	SHA256
	SHA512
	SHA1
	MD5
	BLAKE2b256
	SHA3_256

	numAlgorithms
)

var algorithms = [numAlgorithms]struct {
	name    string
	aliases []string
	size    int
	newHash func() hash.Hash
}{
	BLAKE3:     {"BLAKE3", nil, 32, func() hash.Hash { return blake3.New() }},
	SHA256:     {"SHA256", []string{"SHA-256"}, sha256.Size, sha256.New},
	SHA512:     {"SHA512", []string{"SHA-512"}, sha512.Size, sha512.New},
	SHA1:       {"SHA1", []string{"SHA-1"}, sha1.Size, sha1.New},
	MD5:        {"MD5", nil, md5.Size, md5.New},
	BLAKE2b256: {"BLAKE2B", []string{"BLAKE2B-256", "BLAKE2B256"}, blake2b.Size256, newBlake2b256},
	SHA3_256:   {"SHA3-256", []string{"SHA3", "SHA3_256", "SHA3256"}, 32, func() hash.Hash { return sha3.New256() }},
}

func newBlake2b256() hash.Hash {
	// an unkeyed hash never fails
	h, _ := blake2b.New256(nil)
	return h
}

// All returns every supported algorithm in tag order.
func All() []Algorithm {
	all := make([]Algorithm, numAlgorithms)
	for i := range all {
		all[i] = Algorithm(i)
	}
	return all
}

// FromTag resolves the tag byte read from a header.
func FromTag(tag uint8) (Algorithm, error) {
	a := Algorithm(tag)
	if !a.Valid() {
		return 0, fmt.Errorf("%w: tag %d", ErrUnknownAlgorithm, tag)
	}
	return a, nil
}

// Parse accepts algorithm names case-insensitively, e.g. "blake3", "sha-256".
func Parse(name string) (Algorithm, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, alg := range algorithms {
		if alg.name == upper {
			return Algorithm(i), nil
		}
		for _, alias := range alg.aliases {
			if alias == upper {
				return Algorithm(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

func (a Algorithm) Valid() bool {
	return a < numAlgorithms
}

func (a Algorithm) Tag() uint8 {
	return uint8(a)
}

// Size returns the digest length in bytes.
func (a Algorithm) Size() int {
	if !a.Valid() {
		return 0
	}
	return algorithms[a].size
}

func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
	return algorithms[a].name
}

// New returns a fresh hasher. It panics for an invalid algorithm.
func (a Algorithm) New() hash.Hash {
	if !a.Valid() {
		panic(fmt.Sprintf("digest: invalid algorithm %d", uint8(a)))
	}
	return algorithms[a].newHash()
}

// Sum hashes data in one call.
func (a Algorithm) Sum(data []byte) []byte {
	h := a.New()
	_, _ = h.Write(data)
	return h.Sum(nil)
}

// MarshalText lets an Algorithm be used directly in YAML or flag values.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: tag %d", ErrUnknownAlgorithm, uint8(a))
	}
	return []byte(strings.ToLower(a.String())), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Equal compares two digests in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
