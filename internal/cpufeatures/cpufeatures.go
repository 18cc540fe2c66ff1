// Package cpufeatures reports which CPU extensions the running process can
// use to pick a faster bit-manipulation strategy at startup. It wraps
// klauspost/cpuid/v2 so the rest of the module never imports it directly.
package cpufeatures

import "github.com/klauspost/cpuid/v2"

// FastBitOps reports whether the CPU has hardware support (POPCNT plus
// either BMI1 or a comparably fast trailing-zero count) that makes a
// clear-lowest-set-bit select loop cheaper than the portable
// decrement-while-shifting reference procedure.
func FastBitOps() bool {
	return cpuid.CPU.Supports(cpuid.POPCNT) && (cpuid.CPU.Supports(cpuid.BMI1) || cpuid.CPU.Supports(cpuid.TBM))
}
