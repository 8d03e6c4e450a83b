package digest

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsAreStable(t *testing.T) {
	// tags are written into images; renumbering breaks old embeds
	assert.Equal(t, uint8(0), BLAKE3.Tag())
	assert.Equal(t, uint8(1), SHA256.Tag())
	assert.Equal(t, uint8(2), SHA512.Tag())
	assert.Equal(t, uint8(3), SHA1.Tag())
	assert.Equal(t, uint8(4), MD5.Tag())
	assert.Equal(t, uint8(5), BLAKE2b256.Tag())
	assert.Equal(t, uint8(6), SHA3_256.Tag())
}

func TestSum(t *testing.T) {
	test := []struct {
		alg  Algorithm
		data string
		exp  string
	}{
		{BLAKE3, "", "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
		{SHA256, "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{SHA1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{MD5, "abc", "900150983cd24fb0d6963f7d28e17f72"},
	}
	for _, tt := range test {
		t.Run(tt.alg.String(), func(t *testing.T) {
			assert.Equal(t, tt.exp, hex.EncodeToString(tt.alg.Sum([]byte(tt.data))))
		})
	}
}

func TestSize(t *testing.T) {
	for _, alg := range All() {
		t.Run(alg.String(), func(t *testing.T) {
			assert.Len(t, alg.Sum([]byte("hello")), alg.Size())
			assert.Equal(t, alg.Size(), alg.New().Size())
		})
	}
	assert.Equal(t, 16, MD5.Size())
	assert.Equal(t, 20, SHA1.Size())
	assert.Equal(t, 64, SHA512.Size())
	assert.Zero(t, Algorithm(200).Size())
}

func TestFromTag(t *testing.T) {
	for _, alg := range All() {
		got, err := FromTag(alg.Tag())
		require.NoError(t, err)
		assert.Equal(t, alg, got)
	}
	for _, tag := range []uint8{7, 8, 100, 255} {
		_, err := FromTag(tag)
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	}
}

func TestParse(t *testing.T) {
	test := []struct {
		name string
		exp  Algorithm
	}{
		{"blake3", BLAKE3},
		{"BLAKE3", BLAKE3},
		{"sha256", SHA256},
		{"SHA-256", SHA256},
		{" sha512 ", SHA512},
		{"sha1", SHA1},
		{"md5", MD5},
		{"blake2b", BLAKE2b256},
		{"sha3-256", SHA3_256},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.exp, got)
		})
	}
	_, err := Parse("crc32")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestText(t *testing.T) {
	for _, alg := range All() {
		text, err := alg.MarshalText()
		require.NoError(t, err)
		var got Algorithm
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, alg, got)
	}
	_, err := Algorithm(99).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestEqual(t *testing.T) {
	d := SHA256.Sum([]byte("payload"))
	assert.True(t, Equal(d, SHA256.Sum([]byte("payload"))))
	assert.False(t, Equal(d, SHA256.Sum([]byte("payloae"))))
	assert.False(t, Equal(d, d[:16]))
}
