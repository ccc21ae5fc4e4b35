package simdbmk

import (
	"fmt"
	"strings"
	"time"

	"github.com/elafarge/simd-benchmarking/array"
	"github.com/elafarge/simd-benchmarking/internal/budget"
	"github.com/elafarge/simd-benchmarking/internal/forkjoin"
	"github.com/elafarge/simd-benchmarking/internal/merge"
	"github.com/elafarge/simd-benchmarking/internal/partition"
	"github.com/elafarge/simd-benchmarking/internal/scan"
)

// Mode selects the equality test used to scan a chunk.
type Mode uint8

const (
	// ModeScalar compares one element at a time.
	ModeScalar Mode = iota
	// ModeVectorized compares blocks of eight elements and skips blocks
	// without a match.
	ModeVectorized
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	switch m {
	case ModeScalar:
		return "scalar"
	case ModeVectorized:
		return "vectorized"
	default:
		return "unknown"
	}
}

// ParseMode parses "scalar" or "vectorized" (also "vect", "simd").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar", "naive":
		return ModeScalar, nil
	case "vectorized", "vect", "simd":
		return ModeVectorized, nil
	default:
		return ModeScalar, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func (m Mode) scanner() scan.Scanner {
	if m == ModeVectorized {
		return scan.Vectorized{}
	}
	return scan.Scalar{}
}

// Request describes one search.
type Request struct {
	// Array is read by every worker and must not change during the search.
	Array []int32
	// Start and End bound the half-open range [Start, End) to search.
	Start int
	End   int
	// Step is the stride between tested indices. Zero means 1.
	Step  int
	Value int32
	Mode  Mode
	// K caps the number of returned indices. Negative means no cap.
	K int
}

func (r Request) normalized() Request {
	if r.Step == 0 {
		r.Step = 1
	}
	return r
}

func (r Request) validate() error {
	if r.Start < 0 || r.End < r.Start || r.End > len(r.Array) {
		return &ErrRange{Start: r.Start, End: r.End, Len: len(r.Array)}
	}
	if r.Step < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidStep, r.Step)
	}
	if r.Mode != ModeScalar && r.Mode != ModeVectorized {
		return fmt.Errorf("%w: %d", ErrInvalidMode, r.Mode)
	}
	return nil
}

// Result is the outcome of a search.
type Result struct {
	// Indices holds the matches in chunk order. Without a cap it is sorted
	// ascending. It is never nil.
	Indices []int
	// Mode is the scan mode that actually ran.
	Mode Mode
	// Workers is the number of chunks the range was split into.
	Workers int
}

// Count returns the number of matches.
func (r *Result) Count() int {
	return len(r.Indices)
}

// Searcher runs fork-join searches. It is safe for concurrent use.
type Searcher struct {
	probe   func() int
	logger  *Logger
	metrics MetricsCollector
}

// New creates a Searcher.
func New(optFns ...Option) *Searcher {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Searcher{
		probe:   opts.probe,
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}
}

// Search is shorthand for New(optFns...).Search(req).
func Search(req Request, optFns ...Option) (*Result, error) {
	return New(optFns...).Search(req)
}

// Search splits [req.Start, req.End) into one chunk per worker, scans the
// chunks in parallel and concatenates their matches in chunk order.
//
// It blocks until every worker has returned. Zero matches is a valid
// result, not an error.
func (s *Searcher) Search(req Request) (*Result, error) {
	start := time.Now()
	req = req.normalized()

	res, err := s.search(req)
	err = translateError(err)

	elapsed := time.Since(start)
	if err != nil {
		s.metrics.RecordSearch(req.Mode, 0, 0, elapsed, err)
	} else {
		s.metrics.RecordSearch(res.Mode, res.Workers, res.Count(), elapsed, nil)
	}
	s.logger.LogSearch(req, res, elapsed, err)

	return res, err
}

func (s *Searcher) search(req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	workers := s.probe()
	if workers < 1 {
		return nil, fmt.Errorf("%w: probe reported %d", ErrInvalidWorkerCount, workers)
	}

	mode := s.effectiveMode(req)
	res := &Result{Indices: []int{}, Mode: mode, Workers: workers}
	if req.K == 0 {
		return res, nil
	}

	chunks, err := partition.Split(req.Start, req.End, workers)
	if err != nil {
		return nil, err
	}

	var acc scan.Acceptor
	if b := budget.New(req.K); b != nil {
		acc = b
	}

	scanner := mode.scanner()
	partials, err := forkjoin.Run(len(chunks), func(i int) ([]int, error) {
		c := chunks[i]
		c.Start = c.First(req.Start, req.Step)
		return scanner.Scan(req.Array, c, req.Step, req.Value, acc), nil
	})
	if err != nil {
		return nil, err
	}

	res.Indices = merge.Concat(partials, req.K)
	return res, nil
}

// effectiveMode downgrades a vectorized request whose block alignment
// cannot be guaranteed.
func (s *Searcher) effectiveMode(req Request) Mode {
	if req.Mode != ModeVectorized {
		return req.Mode
	}
	switch {
	case req.Step != 1:
		s.logger.LogFallback(req, "step")
		return ModeScalar
	case !array.IsAligned(req.Array, req.Start):
		s.logger.LogFallback(req, "unaligned")
		return ModeScalar
	}
	return ModeVectorized
}

// Find scans [req.Start, req.End) on the calling goroutine as a single
// chunk. It applies the same validation, mode fallback and cap as Search
// and serves as its sequential reference.
func Find(req Request) ([]int, error) {
	req = req.normalized()
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.K == 0 {
		return []int{}, nil
	}

	s := &Searcher{logger: NoopLogger()}
	mode := s.effectiveMode(req)

	var acc scan.Acceptor
	if b := budget.New(req.K); b != nil {
		acc = b
	}

	c := partition.Chunk{Start: req.Start, End: req.End}
	out := mode.scanner().Scan(req.Array, c, req.Step, req.Value, acc)
	if out == nil {
		out = []int{}
	}
	return out, nil
}
