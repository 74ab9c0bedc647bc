// Package types defines identifiers shared across intcode packages.
package types

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/zeebo/blake3"
)

// DigestSize is the length of an image digest in bytes.
const DigestSize = 32

var (
	// ErrInvalidDigest is returned when a digest has invalid length.
	ErrInvalidDigest = errors.New("invalid digest: must be 32 bytes")
)

// Digest is the blake3 fingerprint of a program image.
type Digest [DigestSize]byte

// ComputeDigest hashes the little-endian encoding of every cell.
func ComputeDigest(cells []int64) Digest {
	h := blake3.New()
	var buf [8]byte
	for _, x := range cells {
		binary.LittleEndian.PutUint64(buf[:], uint64(x))
		_, _ = h.Write(buf[:])
	}

	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// DigestFromBase58 parses a base58-encoded digest.
func DigestFromBase58(s string) (Digest, error) {
	var d Digest
	data, err := base58.Decode(s)
	if err != nil {
		return d, fmt.Errorf("base58 decode: %w", err)
	}
	if len(data) != DigestSize {
		return d, ErrInvalidDigest
	}
	copy(d[:], data)
	return d, nil
}

// String returns the base58-encoded representation.
func (d Digest) String() string {
	return base58.Encode(d[:])
}

// Hex returns the hex-encoded representation.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// IsZero returns true if the digest is all zeros.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := DigestFromBase58(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
