// Package verify cross-checks the index lists produced by the different
// search variants of one benchmark run.
//
// A failed check returns a *Mismatch whose Code is the process exit status
// the CLI reports: 12 for differing sizes, 13 for differing values and 14
// for a k-limited search that returned the wrong number of indices.
package verify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/elafarge/simd-benchmarking/internal/conv"
)

// Check names a verification step.
type Check string

const (
	CheckSize   Check = "size"
	CheckValues Check = "values"
	CheckLimit  Check = "limit"
)

// Exit codes reported for each failed check.
const (
	ExitSize   = 12
	ExitValues = 13
	ExitLimit  = 14
)

// ErrMismatch matches every *Mismatch with errors.Is.
var ErrMismatch = errors.New("verify: results differ")

// Mismatch describes a failed check.
type Mismatch struct {
	Check  Check
	Detail string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("verify: %s check failed: %s", m.Check, m.Detail)
}

func (m *Mismatch) Unwrap() error {
	return ErrMismatch
}

// Code returns the exit status for the failed check.
func (m *Mismatch) Code() int {
	switch m.Check {
	case CheckSize:
		return ExitSize
	case CheckValues:
		return ExitValues
	case CheckLimit:
		return ExitLimit
	default:
		return 1
	}
}

// Result is one variant's output.
type Result struct {
	Name    string
	Indices []int
}

// Equal checks that every result matches the first one, sizes first and
// then values. Results are expected in increasing index order.
func Equal(results ...Result) error {
	if len(results) < 2 {
		return nil
	}

	ref := results[0]
	for _, r := range results[1:] {
		if len(r.Indices) != len(ref.Indices) {
			return &Mismatch{Check: CheckSize, Detail: sizes(results)}
		}
	}

	refSet, err := bitmap(ref.Indices)
	if err != nil {
		return err
	}
	for _, r := range results {
		if i := firstUnordered(r.Indices); i >= 0 {
			return &Mismatch{
				Check:  CheckValues,
				Detail: fmt.Sprintf("%s is not strictly increasing at position %d", r.Name, i),
			}
		}
	}
	for _, r := range results[1:] {
		set, err := bitmap(r.Indices)
		if err != nil {
			return err
		}
		if !set.Equals(refSet) {
			return &Mismatch{
				Check:  CheckValues,
				Detail: fmt.Sprintf("%s differs from %s: %s", r.Name, ref.Name, firstDifference(ref.Indices, r.Indices)),
			}
		}
	}
	return nil
}

// Limit checks the outputs of k-limited searches against the unbounded
// result full. Each must hold exactly min(k, len(full)) distinct indices,
// all drawn from full. Which indices are kept is not checked.
func Limit(k int, full []int, capped ...Result) error {
	if k < 0 {
		return nil
	}
	want := min(k, len(full))

	fullSet, err := bitmap(full)
	if err != nil {
		return err
	}
	for _, r := range capped {
		if len(r.Indices) != want {
			return &Mismatch{
				Check:  CheckLimit,
				Detail: fmt.Sprintf("k = %d, %s returned %d indices, want %d", k, r.Name, len(r.Indices), want),
			}
		}
		set, err := bitmap(r.Indices)
		if err != nil {
			return err
		}
		if set.GetCardinality() != uint64(len(r.Indices)) {
			return &Mismatch{Check: CheckLimit, Detail: fmt.Sprintf("%s returned duplicate indices", r.Name)}
		}
		if set.AndCardinality(fullSet) != set.GetCardinality() {
			return &Mismatch{Check: CheckLimit, Detail: fmt.Sprintf("%s returned indices that do not match", r.Name)}
		}
	}
	return nil
}

func bitmap(indices []int) (*roaring.Bitmap, error) {
	u, err := conv.IntsToUint32s(indices)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	return roaring.BitmapOf(u...), nil
}

func sizes(results []Result) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("%s=%d", r.Name, len(r.Indices))
	}
	return strings.Join(parts, " ")
}

func firstUnordered(s []int) int {
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			return i
		}
	}
	return -1
}

func firstDifference(a, b []int) string {
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return fmt.Sprintf("position %d holds %d != %d", i, b[i], a[i])
		}
	}
	return "lengths differ"
}
