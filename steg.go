// Package steg hides a payload in the least significant bits of an image's
// channel values and recovers it with an integrity check.
package steg

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"unicode/utf8"

	"github.com/yyyoichi/lsb_zero/internal/digest"
	"github.com/yyyoichi/lsb_zero/internal/lsb"
)

// MaxExtensionLen is the longest extension accepted for embedding.
const MaxExtensionLen = 255

var (
	ErrInsufficientCapacity = lsb.ErrInsufficientCapacity
	ErrUnknownAlgorithm     = lsb.ErrUnknownAlgorithm
	ErrIntegrityMismatch    = lsb.ErrIntegrityMismatch
	ErrMalformedHeader      = lsb.ErrMalformedHeader
	ErrInvalidLSBs          = lsb.ErrInvalidLSBs
	ErrInvalidContainer     = lsb.ErrInvalidContainer
	ErrInvalidExtension     = errors.New("invalid extension")
)

// Embed hides payload in a copy of c with the specified options.
// This is a convenience function that creates a Steg instance and calls its Embed method.
func Embed(ctx context.Context, payload []byte, extension string, c Container, opts ...Option) (Container, error) {
	s, err := New(opts...)
	if err != nil {
		return Container{}, err
	}
	return s.Embed(ctx, payload, extension, c)
}

// Extract recovers the payload and extension hidden in c with the specified options.
// This is a convenience function that creates a Steg instance and calls its Extract method.
func Extract(ctx context.Context, c Container, opts ...Option) ([]byte, string, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, "", err
	}
	return s.Extract(ctx, c)
}

type Steg struct {
	lsbs    int
	seed    uint64
	hash    digest.Algorithm
	alpha   bool
	workers int
	logger  *slog.Logger
}

// New initializes an embedder/extractor.
// Defaults: one bit per channel, seed 42, BLAKE3 digest, RGB channels only,
// one worker per CPU and no logging.
func New(opts ...Option) (*Steg, error) {
	s := new(Steg)
	if err := s.init(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Embed hides payload and extension in a copy of c.
//
// Process:
//  1. Hashes the payload with the configured algorithm.
//  2. Serialises the header (algorithm tag, extension length, payload length, digest).
//  3. Checks that header, extension and payload fit into the container.
//  4. Writes the bits, lsbs at a time, into channels visited in seeded order.
//
// Returns ErrInsufficientCapacity if the container is too small.
func (s *Steg) Embed(ctx context.Context, payload []byte, extension string, c Container) (Container, error) {
	if len(extension) > MaxExtensionLen || !utf8.ValidString(extension) {
		return Container{}, fmt.Errorf("%w: %q", ErrInvalidExtension, extension)
	}
	s.logger.DebugContext(ctx, "embedding",
		"payload_bytes", len(payload),
		"extension", extension,
		"hash", s.hash,
		"required_bits", lsb.Required(s.hash, len(extension), len(payload)),
		"capacity_bits", c.Capacity(s.lsbs))

	out, h, err := lsb.Embed(ctx, c, payload, extension, s.hash, s.params())
	if err != nil {
		return Container{}, err
	}
	s.logger.DebugContext(ctx, "embedded", "header_bits", h.Bits())
	return out, nil
}

// Extract recovers payload and extension from c.
//
// Process:
//  1. Re-derives the channel order from the seed.
//  2. Reads the fixed header prefix, resolves the digest size from the algorithm tag, then reads the digest.
//  3. Reads the declared extension and payload.
//  4. Verifies the payload digest.
//
// A wrong seed, a wrong bit depth, a damaged image and an image without
// embedded data all fail, usually with ErrIntegrityMismatch.
func (s *Steg) Extract(ctx context.Context, c Container) ([]byte, string, error) {
	payload, ext, h, err := lsb.Extract(ctx, c, s.params())
	if err != nil {
		s.logger.DebugContext(ctx, "extraction failed", "error", err)
		return nil, "", err
	}
	s.logger.DebugContext(ctx, "extracted",
		"hash", h.Algorithm,
		"extension", ext,
		"payload_bytes", h.PayloadLen)
	return payload, ext, nil
}

// EmbedImage converts src, embeds into it and returns the resulting image.
// The result must be stored in a lossless format.
func (s *Steg) EmbedImage(ctx context.Context, src image.Image, payload []byte, extension string) (image.Image, error) {
	out, err := s.Embed(ctx, payload, extension, FromImage(src, s.alpha))
	if err != nil {
		return nil, err
	}
	return out.Image()
}

// ExtractImage converts src and extracts from it.
func (s *Steg) ExtractImage(ctx context.Context, src image.Image) ([]byte, string, error) {
	return s.Extract(ctx, FromImage(src, s.alpha))
}

// Capacity returns the number of bits c can hold with the configured bit depth.
func (s *Steg) Capacity(c Container) uint64 {
	return c.Capacity(s.lsbs)
}

// MaxPayload returns the largest payload, in bytes, that fits into c
// together with the header and an extension of extensionLen bytes.
// It returns 0 when not even an empty payload fits.
func (s *Steg) MaxPayload(c Container, extensionLen int) uint64 {
	overhead := lsb.Required(s.hash, extensionLen, 0)
	capacity := s.Capacity(c)
	if capacity < overhead {
		return 0
	}
	return (capacity - overhead) / 8
}

func (s *Steg) params() lsb.Params {
	return lsb.Params{LSBs: s.lsbs, Seed: s.seed, Workers: s.workers}
}

func (s *Steg) init(opts ...Option) error {
	s.lsbs = 1
	s.seed = DefaultSeed
	s.hash = digest.BLAKE3
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return nil
}
