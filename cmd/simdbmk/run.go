package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/elafarge/simd-benchmarking/dataset"
	"github.com/elafarge/simd-benchmarking/internal/bench"
	"github.com/elafarge/simd-benchmarking/internal/config"
	"github.com/elafarge/simd-benchmarking/internal/verify"
)

// benchConfig turns resolved settings into a bench.Config, opening the
// store only when a dataset is requested.
func benchConfig(cmd *cobra.Command, cfg *config.Config) (bench.Config, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return bench.Config{}, err
	}
	bc := bench.Config{
		Size:    cfg.Size,
		Min:     cfg.Min,
		Max:     cfg.Max,
		Lookup:  cfg.Lookup,
		K:       cfg.Limit,
		Workers: cfg.Workers,
		Repeat:  cfg.Repeat,
		Seed:    cfg.Seed,
		Dataset: cfg.Dataset,
		Logger:  logger,
	}
	if cfg.Dataset == "" {
		return bc, nil
	}
	if bc.Compression, err = dataset.ParseCompression(cfg.Compression); err != nil {
		return bench.Config{}, err
	}
	if bc.Store, err = openStore(cmd.Context(), cfg.Store); err != nil {
		return bench.Config{}, err
	}
	return bc, nil
}

func runBenchmark(cmd *cobra.Command, s *settings) error {
	cfg, err := s.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	bc, err := benchConfig(cmd, cfg)
	if err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout(), s.noColor)
	if bc.Dataset != "" {
		p.title("Let's load the dataset %s", bc.Dataset)
	} else {
		p.title("Let's generate a test array of size %d", bc.Size)
	}
	p.title("Ok let's see where %d is in the array", bc.Lookup)
	bc.OnVariant = func(v bench.Variant, t bench.Timing, matches int) {
		p.info("%-9s %s microseconds, %d matches", v.String()+":", p.value(itoa64(t.Micros())), matches)
	}

	rep, err := bench.Run(cmd.Context(), bc)
	var mismatch *verify.Mismatch
	if err != nil && !errors.As(err, &mismatch) {
		return err
	}

	p.info("")
	if bc.K >= 0 {
		p.title("Checking that a limit of k = %d behaves", bc.K)
		if mismatch != nil && mismatch.Check == verify.CheckLimit {
			p.fail("%s", mismatch.Detail)
			return mismatch
		}
		p.ok("The k-factor works as expected (the kept occurrences are not necessarily the first k)")
	}

	p.title("Test for equality of the arrays")
	if mismatch != nil {
		p.fail("%s", mismatch.Detail)
		return mismatch
	}
	p.ok("All have the same size")
	p.ok("All have the same values")

	p.info("")
	p.title("Performance factors")
	if err := rep.WriteTable(cmd.OutOrStdout()); err != nil {
		return err
	}

	p.info("")
	p.title("Simple output for benchmarking scripts")
	return rep.WriteCSV(cmd.OutOrStdout(), true)
}
