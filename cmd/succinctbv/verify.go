package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/just1developer/succinctbv/internal/bitvector"
	"github.com/just1developer/succinctbv/internal/fingerprint"
)

// runVerify rebuilds the bit string from a BitVector's Access queries and
// checks a blake3 digest against the original input, spot-checking the
// round-trip property (spec.md §8) by comparing digests rather than the
// strings themselves.
func runVerify(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: succinctbv verify <input-file>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("succinctbv verify: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	if _, err := r.ReadString('\n'); err != nil { // discard command count
		return fmt.Errorf("succinctbv verify: reading command count: %w", err)
	}
	bitsLine, err := r.ReadString('\n')
	if err != nil && bitsLine == "" {
		return fmt.Errorf("succinctbv verify: reading bit string: %w", err)
	}
	bits := strings.TrimRight(bitsLine, "\r\n")

	wantSum := fingerprint.Checksum(bits)

	bv := bitvector.NewBuilt(bits)
	rebuilt := make([]byte, bv.NumBits())
	for i := uint64(0); i < bv.NumBits(); i++ {
		rebuilt[i] = byte('0') + byte(bv.Access(i))
	}
	gotSum := fingerprint.Checksum(string(rebuilt))

	if wantSum != gotSum {
		return fmt.Errorf("succinctbv verify: round-trip mismatch: input checksum %x, rebuilt checksum %x", wantSum, gotSum)
	}

	fmt.Printf("OK bits=%s checksum=%x\n", strconv.FormatUint(bv.NumBits(), 10), gotSum)
	return nil
}
