package simd

import "unsafe"

const (
	// Lanes is the number of int32 lanes tested per block (one 256-bit register).
	Lanes = 8
	// VectorBytes is the alignment a block load requires.
	VectorBytes = Lanes * 4
)

const (
	kernelGeneric = "generic"
	kernelSWAR    = "swar"
)

// Lane masks for two int32 lanes packed in a uint64.
const (
	lo32 = 0x0000000100000001
	hi32 = 0x8000000080000000
)

// anyEqual8Impl is the implementation function pointer.
var anyEqual8Impl = anyEqual8Generic

var activeKernel = kernelGeneric

// selectKernels wires the block kernel. SWAR is plain Go on 64-bit words and
// needs no CPU extension; only an explicit generic override turns it off.
func selectKernels() {
	forceGeneric := hasOverride && activeISA == Generic
	if swarEnabled && !forceGeneric {
		anyEqual8Impl = anyEqual8SWAR
		activeKernel = kernelSWAR
		return
	}
	anyEqual8Impl = anyEqual8Generic
	activeKernel = kernelGeneric
}

// AnyEqual8 reports whether any lane of block equals v.
//
// It answers for the block as a whole, the way a vector compare followed by
// a movemask does; callers locate the matching lanes themselves.
// block must be VectorBytes aligned.
func AnyEqual8(block *[Lanes]int32, v int32) bool {
	return anyEqual8Impl(block, v)
}

// Aligned reports whether the first element of s sits on a VectorBytes
// boundary. An empty slice is aligned.
func Aligned(s []int32) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%VectorBytes == 0
}

// anyEqual8Generic compares lane by lane and reduces without branching.
func anyEqual8Generic(block *[Lanes]int32, v int32) bool {
	m := boolToUint(block[0] == v) |
		boolToUint(block[1] == v) |
		boolToUint(block[2] == v) |
		boolToUint(block[3] == v) |
		boolToUint(block[4] == v) |
		boolToUint(block[5] == v) |
		boolToUint(block[6] == v) |
		boolToUint(block[7] == v)
	return m != 0
}

// anyEqual8SWAR views the block as four uint64 words of two lanes each.
// XOR with the broadcast value zeroes matching lanes, and the zero-lane
// test (x - lo) & ^x & hi is non-zero iff some lane is zero.
func anyEqual8SWAR(block *[Lanes]int32, v int32) bool {
	w := (*[Lanes / 2]uint64)(unsafe.Pointer(block))
	b := broadcast(v)

	x0 := w[0] ^ b
	x1 := w[1] ^ b
	x2 := w[2] ^ b
	x3 := w[3] ^ b

	m := ((x0 - lo32) &^ x0) |
		((x1 - lo32) &^ x1) |
		((x2 - lo32) &^ x2) |
		((x3 - lo32) &^ x3)
	return m&hi32 != 0
}

// broadcast replicates v into both halves of a word.
func broadcast(v int32) uint64 {
	return uint64(uint32(v)) * lo32
}

// boolToUint converts a bool to 0 or 1 without branching.
func boolToUint(b bool) uint {
	if b {
		return 1
	}
	return 0
}
