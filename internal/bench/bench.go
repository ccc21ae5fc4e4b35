package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	simdbmk "github.com/elafarge/simd-benchmarking"
	"github.com/elafarge/simd-benchmarking/array"
	"github.com/elafarge/simd-benchmarking/blobstore"
	"github.com/elafarge/simd-benchmarking/dataset"
	"github.com/elafarge/simd-benchmarking/internal/simd"
	"github.com/elafarge/simd-benchmarking/internal/verify"
)

// Variant identifies one of the timed searches.
type Variant int

const (
	Naive Variant = iota
	Vect
	MTNaive
	MTVect
	numVariants
)

var variantNames = [numVariants]string{"naive", "vect", "mt_naive", "mt_vect"}

func (v Variant) String() string {
	if v < 0 || v >= numVariants {
		return "unknown"
	}
	return variantNames[v]
}

// Variants lists every variant in report order.
func Variants() []Variant {
	return []Variant{Naive, Vect, MTNaive, MTVect}
}

// Config describes one benchmark run.
type Config struct {
	// Size is the array length.
	Size int
	// Min and Max bound the generated values, inclusive.
	Min, Max int32
	// Lookup is the searched value.
	Lookup int32
	// K caps the result count of the extra limited runs. Negative skips them.
	K int
	// Workers is the fork-join width. Zero uses GOMAXPROCS.
	Workers int
	// Repeat is the number of timed repetitions per variant.
	Repeat int
	// Seed feeds the generator. Zero seeds from the clock.
	Seed int64

	// Dataset names a stored array to search. A missing dataset is
	// generated and saved under that name.
	Dataset     string
	Store       blobstore.BlobStore
	Compression dataset.Compression

	Logger *simdbmk.Logger
	// OnVariant is called after each variant finishes.
	OnVariant func(v Variant, t Timing, matches int)
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.Size < 0:
		return fmt.Errorf("bench: negative size %d", c.Size)
	case c.Min > c.Max:
		return fmt.Errorf("bench: %w: [%d, %d]", array.ErrInvalidBounds, c.Min, c.Max)
	case c.Workers < 0:
		return fmt.Errorf("bench: negative worker count %d", c.Workers)
	case c.Dataset != "" && c.Store == nil:
		return errors.New("bench: dataset requires a store")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Repeat < 1 {
		c.Repeat = 1
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Logger == nil {
		c.Logger = simdbmk.NoopLogger()
	}
	return c
}

// Run executes one benchmark. On a verification failure it returns the
// report together with a *verify.Mismatch.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	arr, err := loadArray(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := simdbmk.New(simdbmk.WithWorkers(cfg.Workers), simdbmk.WithLogger(cfg.Logger))
	info := simd.Info()
	rep := &Report{
		RunID:   uuid.New(),
		Size:    len(arr),
		Lookup:  cfg.Lookup,
		K:       cfg.K,
		Seed:    cfg.Seed,
		ISA:     info.ISA.String(),
		Kernel:  info.Kernel,
		Started: time.Now(),
	}

	full := Request(arr, cfg.Lookup, -1)
	var results [numVariants][]int
	for _, v := range Variants() {
		samples := make([]time.Duration, 0, cfg.Repeat)
		for range cfg.Repeat {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			start := time.Now()
			res, err := runVariant(s, v, full)
			samples = append(samples, time.Since(start))
			if err != nil {
				return nil, fmt.Errorf("bench: %s: %w", v, err)
			}
			results[v] = res.Indices
			rep.Modes[v] = res.Mode
			rep.Workers = max(rep.Workers, res.Workers)
		}
		rep.Timings[v] = summarize(samples)
		if cfg.OnVariant != nil {
			cfg.OnVariant(v, rep.Timings[v], len(results[v]))
		}
	}
	rep.Matches = len(results[Naive])
	rep.Factors = computeFactors(rep.Timings)

	if cfg.K >= 0 {
		capped := Request(arr, cfg.Lookup, cfg.K)
		var limited []verify.Result
		for _, v := range []Variant{MTNaive, MTVect} {
			res, err := runVariant(s, v, capped)
			if err != nil {
				return nil, fmt.Errorf("bench: %s k=%d: %w", v, cfg.K, err)
			}
			limited = append(limited, verify.Result{Name: v.String(), Indices: res.Indices})
		}
		if err := verify.Limit(cfg.K, results[Naive], limited...); err != nil {
			return rep, err
		}
		rep.LimitChecked = true
	}

	named := make([]verify.Result, 0, numVariants)
	for _, v := range Variants() {
		named = append(named, verify.Result{Name: v.String(), Indices: results[v]})
	}
	if err := verify.Equal(named...); err != nil {
		return rep, err
	}
	rep.Verified = true
	return rep, nil
}

// Request builds the whole-array search the benchmark times.
func Request(arr []int32, value int32, k int) simdbmk.Request {
	return simdbmk.Request{Array: arr, End: len(arr), Step: 1, Value: value, K: k}
}

func runVariant(s *simdbmk.Searcher, v Variant, req simdbmk.Request) (*simdbmk.Result, error) {
	switch v {
	case Naive, Vect:
		req.Mode = simdbmk.ModeScalar
		if v == Vect {
			req.Mode = simdbmk.ModeVectorized
		}
		indices, err := simdbmk.Find(req)
		if err != nil {
			return nil, err
		}
		return &simdbmk.Result{Indices: indices, Mode: req.Mode, Workers: 1}, nil
	case MTNaive:
		req.Mode = simdbmk.ModeScalar
	case MTVect:
		req.Mode = simdbmk.ModeVectorized
	default:
		return nil, fmt.Errorf("unknown variant %d", v)
	}
	return s.Search(req)
}

func loadArray(ctx context.Context, cfg Config) ([]int32, error) {
	if cfg.Dataset == "" {
		return array.Generate(cfg.Size, cfg.Min, cfg.Max, cfg.Seed)
	}

	arr, err := dataset.Load(ctx, cfg.Store, cfg.Dataset)
	if err == nil {
		cfg.Logger.Info("dataset loaded", "name", cfg.Dataset, "size", len(arr))
		return arr, nil
	}
	if !errors.Is(err, blobstore.ErrNotFound) {
		return nil, err
	}

	arr, err = array.Generate(cfg.Size, cfg.Min, cfg.Max, cfg.Seed)
	if err != nil {
		return nil, err
	}
	if err := dataset.Save(ctx, cfg.Store, cfg.Dataset, arr, cfg.Compression); err != nil {
		return nil, err
	}
	cfg.Logger.Info("dataset generated", "name", cfg.Dataset, "size", len(arr), "compression", cfg.Compression.String())
	return arr, nil
}
