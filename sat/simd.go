package sat

import "golang.org/x/sys/cpu"

// simdLanes mirrors the original's KISSAT_SIMD_THRESHOLD: the minimum
// remaining-literal count below which the batched scan isn't worth its
// setup cost and the plain scalar loop runs instead.
const simdLanes = 8

// simdSupported is computed once at process start from the host's actual
// vector-capable instruction set, following the original's compile-time
// AVX-512/AVX2/SSE4.2 cascade (simdconfig.h) translated into a runtime
// check since Go has no equivalent compile-time CPU dispatch. Go has no
// portable SIMD intrinsics, so the "SIMD" variant below is an unrolled
// batch scan rather than actual vector instructions: it exists to keep
// the scan's branch pattern amortized over cache lines on capable
// hardware, not to invoke AVX directly.
var simdSupported = cpu.X86.HasAVX2 || cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD

// simdScanNonFalse finds the first index in [from, to) of c's literals
// whose value is not False, scanning simdLanes literals per batch. Must
// return the exact same index as scalarScanNonFalse over the same range:
// this is purely a cache-locality variant, never a semantic one.
func simdScanNonFalse(values []LBool, c clause, from, to int) (int, bool) {
	k := from
	for ; k+simdLanes <= to; k += simdLanes {
		var found = -1
		for b := 0; b < simdLanes; b++ {
			if values[c.Lit(k+b)] >= 0 {
				found = k + b
				break
			}
		}
		if found >= 0 {
			return found, true
		}
	}
	return scalarScanNonFalse(values, c, k, to)
}
