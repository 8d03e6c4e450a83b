package steg

import (
	"fmt"
	"log/slog"

	"github.com/yyyoichi/lsb_zero/internal/digest"
	"github.com/yyyoichi/lsb_zero/internal/lsb"
)

// DefaultSeed is the seed used when WithSeed is not given.
const DefaultSeed uint64 = 42

type Option func(*Steg) error

// Algorithm identifies the digest stored with the payload.
type Algorithm = digest.Algorithm

const (
	BLAKE3     = digest.BLAKE3
	SHA256     = digest.SHA256
	SHA512     = digest.SHA512
	SHA1       = digest.SHA1
	MD5        = digest.MD5
	BLAKE2b256 = digest.BLAKE2b256
	SHA3_256   = digest.SHA3_256
)

// ParseAlgorithm accepts names such as "blake3", "sha256" or "SHA-1".
func ParseAlgorithm(name string) (Algorithm, error) {
	return digest.Parse(name)
}

// WithLSBs sets how many low bits of every channel carry data, from 1 to 8.
// More bits raise capacity and visible noise. Extraction must use the same
// value as embedding.
func WithLSBs(n int) Option {
	return func(s *Steg) error {
		if err := lsb.ValidateLSBs(n); err != nil {
			return err
		}
		s.lsbs = n
		return nil
	}
}

// WithSeed sets the seed of the channel visiting order. Extraction must use
// the same seed as embedding.
func WithSeed(seed uint64) Option {
	return func(s *Steg) error {
		s.seed = seed
		return nil
	}
}

// WithHash selects the digest algorithm used when embedding. Extraction reads
// the algorithm from the image and ignores this option.
func WithHash(alg Algorithm) Option {
	return func(s *Steg) error {
		if !alg.Valid() {
			return fmt.Errorf("%w: tag %d", ErrUnknownAlgorithm, alg.Tag())
		}
		s.hash = alg
		return nil
	}
}

// WithAlpha makes the alpha channel addressable in EmbedImage and
// ExtractImage. Only use it when the output format keeps fully transparent
// colour values intact.
func WithAlpha() Option {
	return func(s *Steg) error {
		s.alpha = true
		return nil
	}
}

// WithWorkers limits the number of goroutines writing and reading bits.
func WithWorkers(n int) Option {
	return func(s *Steg) error {
		s.workers = n
		return nil
	}
}

// WithLogger sets the logger used for debug output. Logging is discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Steg) error {
		s.logger = logger
		return nil
	}
}
