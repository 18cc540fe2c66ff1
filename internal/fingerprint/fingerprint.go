// Package fingerprint computes content identifiers for the bit string a
// BitVector is built from: a fast xxhash for log correlation, and a
// stronger blake3 digest for the verify subcommand's round-trip check.
package fingerprint

import (
	"github.com/cespare/xxhash/v2"
	"lukechampine.com/blake3"
)

// Fast returns an xxhash of s, cheap enough to compute on every run and
// log as a correlation ID.
func Fast(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Checksum returns a blake3 digest of s, used by the verify subcommand to
// confirm a BitVector round-trips to the exact input it was built from by
// comparing digests rather than the strings themselves.
func Checksum(s string) [32]byte {
	return blake3.Sum256([]byte(s))
}
