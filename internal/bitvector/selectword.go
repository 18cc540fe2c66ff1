package bitvector

import (
	"math/bits"

	"github.com/just1developer/succinctbv/internal/cpufeatures"
)

// useFastSelectInWord is decided once at load time: true on CPUs whose
// POPCNT/BMI1 support makes clearing the lowest set bit repeatedly cheaper
// than the portable decrement loop below.
var useFastSelectInWord = cpufeatures.FastBitOps()

// selectInWord returns the 0-based position of the rank-th (1-indexed) set
// bit in w. The caller guarantees w has at least rank set bits.
func selectInWord(w uint64, rank uint64) uint64 {
	if useFastSelectInWord {
		return selectInWordFast(w, rank)
	}
	return selectInWordPortable(w, rank)
}

// selectInWordPortable is the spec's mandated fallback (§4.4 Step D):
// decrement rank for every set bit seen while shifting w right one bit at a
// time, counting how many shifts were needed. Correct on any architecture.
func selectInWordPortable(w uint64, rank uint64) uint64 {
	var idx uint64
	for {
		rank -= w & 1
		if rank == 0 {
			return idx
		}
		w >>= 1
		idx++
	}
}

// selectInWordFast isolates the rank-th set bit by clearing the lowest set
// bit rank-1 times, then counts trailing zeros of what remains.
func selectInWordFast(w uint64, rank uint64) uint64 {
	for i := uint64(1); i < rank; i++ {
		w &= w - 1
	}
	return uint64(bits.TrailingZeros64(w))
}
