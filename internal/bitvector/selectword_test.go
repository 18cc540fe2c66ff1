package bitvector

import (
	"math/bits"
	"testing"
)

func TestSelectInWordStrategiesAgree(t *testing.T) {
	words := []uint64{
		0x1,
		0x8000000000000000,
		0xAAAAAAAAAAAAAAAA,
		0x5555555555555555,
		0xFFFFFFFFFFFFFFFF,
		0x0000000100000001,
	}
	for _, w := range words {
		n := bits.OnesCount64(w)
		for rank := uint64(1); rank <= uint64(n); rank++ {
			portable := selectInWordPortable(w, rank)
			fast := selectInWordFast(w, rank)
			if portable != fast {
				t.Fatalf("word=%#x rank=%d: portable=%d fast=%d disagree", w, rank, portable, fast)
			}
		}
	}
}
