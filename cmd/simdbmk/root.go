package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	simdbmk "github.com/elafarge/simd-benchmarking"
	"github.com/elafarge/simd-benchmarking/internal/config"
)

// settings binds the persistent flags. Only flags the user set override
// the file and environment values.
type settings struct {
	configPath string
	noColor    bool

	size        int
	min, max    int32
	limit       int
	lookup      int32
	workers     int
	repeat      int
	seed        int64
	dataset     string
	store       string
	compression string
	logLevel    string
	logFormat   string
}

func (s *settings) register(fs *pflag.FlagSet) {
	d := config.LoadDefaults()
	fs.StringVar(&s.configPath, "config", "", "YAML config file")
	fs.BoolVar(&s.noColor, "no-color", false, "Disable ANSI colors (also honors NO_COLOR)")

	fs.IntVarP(&s.size, "size", "n", d.Size, "Size of the generated array")
	fs.Int32VarP(&s.min, "min", "a", d.Min, "Smallest generated value")
	fs.Int32VarP(&s.max, "max", "b", d.Max, "Largest generated value")
	fs.IntVarP(&s.limit, "limit-search", "k", d.Limit, "Cap on returned occurrences for the limit check (-1: no limit)")
	fs.Int32VarP(&s.lookup, "lookup", "f", d.Lookup, "Value to search for")
	fs.IntVar(&s.workers, "workers", d.Workers, "Worker count for the threaded variants (0: GOMAXPROCS)")
	fs.IntVar(&s.repeat, "repeat", d.Repeat, "Timed repetitions per variant")
	fs.Int64Var(&s.seed, "seed", d.Seed, "Generator seed (0: clock)")
	fs.StringVar(&s.dataset, "dataset", d.Dataset, "Dataset name to load, generated and saved when missing")
	fs.StringVar(&s.store, "store", d.Store, "Dataset store: file://DIR, mem://, s3://BUCKET/PREFIX, minio://HOST:PORT/BUCKET/PREFIX")
	fs.StringVar(&s.compression, "compression", d.Compression, "Dataset compression: none, lz4, zstd")
	fs.StringVar(&s.logLevel, "log-level", d.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&s.logFormat, "log-format", d.LogFormat, "Log format: text, json")
}

// resolve layers flags over config file and environment.
func (s *settings) resolve(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, err
	}

	overrides := map[string]func(){
		"size":         func() { cfg.Size = s.size },
		"min":          func() { cfg.Min = s.min },
		"max":          func() { cfg.Max = s.max },
		"limit-search": func() { cfg.Limit = s.limit },
		"lookup":       func() { cfg.Lookup = s.lookup },
		"workers":      func() { cfg.Workers = s.workers },
		"repeat":       func() { cfg.Repeat = s.repeat },
		"seed":         func() { cfg.Seed = s.seed },
		"dataset":      func() { cfg.Dataset = s.dataset },
		"store":        func() { cfg.Store = s.store },
		"compression":  func() { cfg.Compression = s.compression },
		"log-level":    func() { cfg.LogLevel = s.logLevel },
		"log-format":   func() { cfg.LogFormat = s.logFormat },
	}
	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*simdbmk.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return simdbmk.NewJSONLogger(level), nil
	}
	return simdbmk.NewTextLogger(level), nil
}

func newRootCmd() *cobra.Command {
	s := &settings{}

	root := &cobra.Command{
		Use:   "simdbmk",
		Short: "SIMD and multi-threading linear search benchmark",
		Long: `simdbmk measures the speedup that vectorized comparisons and
fork-join parallelism bring to a linear search over an int32 array.

It times four variants (naive, vect, mt_naive, mt_vect), checks that they
return the same indices and prints the speedup factors. A verification
failure exits with status 12 (sizes), 13 (values) or 14 (k limit).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd, s)
		},
	}
	s.register(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the benchmark once (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runBenchmark(cmd, s)
			},
		},
		newSweepCmd(s),
		newGenCmd(s),
		newISACmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "simdbmk v%s (%s) built %s\n", version, commit, buildTime)
			},
		},
	)
	return root
}
