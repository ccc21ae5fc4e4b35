package bench

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"golang.org/x/time/rate"

	simdbmk "github.com/elafarge/simd-benchmarking"
)

// PowerSizes returns floor(10^p) for every p, skipping duplicates.
func PowerSizes(powers []float64) []int {
	var sizes []int
	for _, p := range powers {
		n := int(math.Floor(math.Pow(10, p)))
		if len(sizes) > 0 && sizes[len(sizes)-1] == n {
			continue
		}
		sizes = append(sizes, n)
	}
	return sizes
}

// PowerRange returns the powers from, from+step, ... up to to inclusive.
func PowerRange(from, to, step float64) []float64 {
	if step <= 0 {
		step = 1
	}
	var out []float64
	for i := 0; ; i++ {
		p := from + float64(i)*step
		if p > to+1e-9 {
			break
		}
		out = append(out, p)
	}
	return out
}

// Sweep runs one benchmark per size and writes a CSV row for each to w.
// Runs start no more often than once per interval, which lets the machine
// settle between large sizes. A failed run aborts the sweep.
func Sweep(ctx context.Context, cfg Config, sizes []int, interval time.Duration, w io.Writer) ([]*Report, error) {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	limiter := rate.NewLimiter(limit, 1)
	if cfg.Logger == nil {
		cfg.Logger = simdbmk.NoopLogger()
	}

	reports := make([]*Report, 0, len(sizes))
	for i, n := range sizes {
		if err := limiter.Wait(ctx); err != nil {
			return reports, err
		}

		run := cfg
		run.Size = n
		if cfg.Dataset != "" {
			run.Dataset = fmt.Sprintf("%s-%d.sbmk", cfg.Dataset, n)
		}
		cfg.Logger.Info("sweep step", "size", n, "step", i+1, "of", len(sizes))

		rep, err := Run(ctx, run)
		if err != nil {
			return reports, fmt.Errorf("bench: sweep n=%d: %w", n, err)
		}
		reports = append(reports, rep)
		if err := rep.WriteCSV(w, i == 0); err != nil {
			return reports, err
		}
	}
	return reports, nil
}
