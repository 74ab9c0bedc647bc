package types

import (
	"errors"
	"math"
	"testing"
)

// TestComputeDigest tests digest stability and sensitivity.
func TestComputeDigest(t *testing.T) {
	a := ComputeDigest([]int64{1, 0, 0, 3, 99})
	b := ComputeDigest([]int64{1, 0, 0, 3, 99})
	c := ComputeDigest([]int64{1, 0, 0, 3, 98})
	neg := ComputeDigest([]int64{-1})
	max := ComputeDigest([]int64{math.MaxInt64})

	if a != b {
		t.Error("equal images produced different digests")
	}
	if a == c {
		t.Error("different images produced equal digests")
	}
	if neg == max {
		t.Error("-1 and max int64 produced equal digests")
	}
	if a.IsZero() {
		t.Error("IsZero() = true for a real digest")
	}
	if !(Digest{}).IsZero() {
		t.Error("IsZero() = false for the zero digest")
	}
	if len(a.Hex()) != 2*DigestSize {
		t.Errorf("len(Hex()) = %d, want %d", len(a.Hex()), 2*DigestSize)
	}
}

// TestDigestBase58 tests the string form.
func TestDigestBase58(t *testing.T) {
	d := ComputeDigest([]int64{104, 1125899906842624, 99})

	parsed, err := DigestFromBase58(d.String())
	if err != nil {
		t.Fatalf("DigestFromBase58() failed: %v", err)
	}
	if parsed != d {
		t.Errorf("DigestFromBase58(%s) = %s", d, parsed)
	}

	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() failed: %v", err)
	}
	var back Digest
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText() failed: %v", err)
	}
	if back != d {
		t.Errorf("UnmarshalText() = %s, want %s", back, d)
	}

	if _, err := DigestFromBase58("3mJr7AoUXx2Wqd"); !errors.Is(err, ErrInvalidDigest) {
		t.Errorf("short digest error = %v, want ErrInvalidDigest", err)
	}
	if _, err := DigestFromBase58("0OIl"); err == nil {
		t.Error("DigestFromBase58() accepted characters outside the alphabet")
	}
}
