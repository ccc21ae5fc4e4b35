package simdbmk

import (
	"errors"
	"fmt"

	"github.com/elafarge/simd-benchmarking/internal/partition"
)

var (
	// ErrInvalidRange is returned when [Start, End) does not fit the array.
	ErrInvalidRange = errors.New("invalid search range")

	// ErrInvalidStep is returned when Step is negative.
	ErrInvalidStep = errors.New("step must be positive")

	// ErrInvalidMode is returned for an unknown scan mode.
	ErrInvalidMode = errors.New("invalid scan mode")

	// ErrInvalidWorkerCount is returned when the capability probe reports
	// fewer than one worker.
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")
)

// ErrRange describes a range that does not fit the array.
//
// It matches ErrInvalidRange with errors.Is.
type ErrRange struct {
	Start int
	End   int
	Len   int
}

func (e *ErrRange) Error() string {
	return fmt.Sprintf("invalid search range [%d, %d) for array of length %d", e.Start, e.End, e.Len)
}

func (e *ErrRange) Unwrap() error { return ErrInvalidRange }

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, partition.ErrNoWorkers) {
		return fmt.Errorf("%w: %w", ErrInvalidWorkerCount, err)
	}
	return err
}
