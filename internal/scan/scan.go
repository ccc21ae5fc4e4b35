// Package scan implements the per-chunk equality scanners.
//
// A Scanner walks one partition.Chunk of a read-only array and returns the
// matching indices in increasing order. Scalar and Vectorized return the
// same indices for the same input; they differ only in how a block of
// non-matching elements is skipped.
package scan

import (
	"errors"
	"fmt"

	"github.com/elafarge/simd-benchmarking/internal/partition"
	"github.com/elafarge/simd-benchmarking/internal/simd"
)

var (
	// ErrMisaligned is reported when a vectorized chunk does not start on a
	// simd.VectorBytes boundary.
	ErrMisaligned = errors.New("scan: chunk start is not vector aligned")
	// ErrBadStep is reported for a non-positive step, or a step other than 1
	// given to the vectorized scanner.
	ErrBadStep = errors.New("scan: unsupported step")
	// ErrOutOfBounds is reported when a chunk exceeds the array.
	ErrOutOfBounds = errors.New("scan: chunk out of bounds")
)

// ContractViolation is the panic value raised when a Scanner is called
// outside its preconditions.
type ContractViolation struct {
	Scanner string
	Chunk   partition.Chunk
	Step    int
	Err     error
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("%s scanner: chunk %d [%d, %d) step %d: %v",
		e.Scanner, e.Chunk.Index, e.Chunk.Start, e.Chunk.End, e.Step, e.Err)
}

func (e *ContractViolation) Unwrap() error { return e.Err }

// Acceptor gates every candidate match before it is recorded.
// Returning false stops the scan of the current chunk.
type Acceptor interface {
	TryAccept() bool
}

// Scanner scans a chunk for value.
type Scanner interface {
	// Scan returns the indices c.Start, c.Start+step, ... below c.End whose
	// element equals value, in increasing order. acc may be nil.
	Scan(array []int32, c partition.Chunk, step int, value int32, acc Acceptor) []int
	// Name identifies the scanner in logs and reports.
	Name() string
}

// Scalar tests one element at a time.
type Scalar struct{}

// Name implements Scanner.
func (Scalar) Name() string { return "scalar" }

// Scan implements Scanner.
func (s Scalar) Scan(array []int32, c partition.Chunk, step int, value int32, acc Acceptor) []int {
	checkChunk(s.Name(), array, c, step)

	var out []int
	for i := c.Start; i < c.End; i += step {
		if array[i] == value {
			if acc != nil && !acc.TryAccept() {
				return out
			}
			out = append(out, i)
		}
		// i+step must not wrap past MaxInt.
		if step >= c.End-i {
			break
		}
	}
	return out
}

// Vectorized tests simd.Lanes contiguous elements at once and only looks at
// individual elements of blocks that contain a match.
//
// It requires step 1 and, when the chunk holds at least one full block,
// &array[c.Start] aligned to simd.VectorBytes.
type Vectorized struct{}

// Name implements Scanner.
func (Vectorized) Name() string { return "vectorized" }

// Scan implements Scanner.
func (v Vectorized) Scan(array []int32, c partition.Chunk, step int, value int32, acc Acceptor) []int {
	checkChunk(v.Name(), array, c, step)
	if step != 1 {
		panic(&ContractViolation{Scanner: v.Name(), Chunk: c, Step: step, Err: ErrBadStep})
	}
	if c.Len() >= simd.Lanes && !simd.Aligned(array[c.Start:]) {
		panic(&ContractViolation{Scanner: v.Name(), Chunk: c, Step: step, Err: ErrMisaligned})
	}

	var out []int
	i := c.Start
	for ; i+simd.Lanes <= c.End; i += simd.Lanes {
		block := (*[simd.Lanes]int32)(array[i : i+simd.Lanes])
		if !simd.AnyEqual8(block, value) {
			continue
		}
		for j := i; j < i+simd.Lanes; j++ {
			if array[j] != value {
				continue
			}
			if acc != nil && !acc.TryAccept() {
				return out
			}
			out = append(out, j)
		}
	}

	// Tail shorter than a block.
	for ; i < c.End; i++ {
		if array[i] != value {
			continue
		}
		if acc != nil && !acc.TryAccept() {
			return out
		}
		out = append(out, i)
	}
	return out
}

func checkChunk(name string, array []int32, c partition.Chunk, step int) {
	if step < 1 {
		panic(&ContractViolation{Scanner: name, Chunk: c, Step: step, Err: ErrBadStep})
	}
	if c.Start < 0 || c.End < c.Start || c.End > len(array) {
		panic(&ContractViolation{Scanner: name, Chunk: c, Step: step, Err: ErrOutOfBounds})
	}
}
