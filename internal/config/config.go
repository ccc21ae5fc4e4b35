// Package config resolves the simdbmk CLI settings.
//
// Precedence (highest to lowest):
//  1. Command-line flags
//  2. Environment variables (SIMDBMK_*)
//  3. Config file (YAML)
//  4. Built-in defaults
//
// Environment Variables:
//   - SIMDBMK_SIZE=1000000
//   - SIMDBMK_MIN=0
//   - SIMDBMK_MAX=100
//   - SIMDBMK_LIMIT=-1
//   - SIMDBMK_LOOKUP=12
//   - SIMDBMK_WORKERS=8
//   - SIMDBMK_REPEAT=3
//   - SIMDBMK_STORE="file://./data"
//   - SIMDBMK_LOG_LEVEL="info"
//   - SIMDBMK_LOG_FORMAT="text"
//
// The vectorized kernel itself is selected with SIMDBMK_SIMD, which is read
// by the search library at startup rather than here.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a benchmark run.
type Config struct {
	Size    int
	Min     int32
	Max     int32
	Limit   int
	Lookup  int32
	Workers int
	Repeat  int
	Seed    int64

	Dataset     string
	Store       string
	Compression string

	LogLevel  string
	LogFormat string
}

// LoadDefaults returns the settings of the original benchmark program.
func LoadDefaults() *Config {
	return &Config{
		Size:        1_000_000,
		Min:         0,
		Max:         100,
		Limit:       -1,
		Lookup:      12,
		Workers:     0,
		Repeat:      1,
		Store:       "file://./data",
		Compression: "zstd",
		LogLevel:    "warn",
		LogFormat:   "text",
	}
}

// yamlConfig mirrors Config with pointers so an explicit zero in the file
// is distinguishable from an absent key.
type yamlConfig struct {
	Size        *int    `yaml:"size"`
	Min         *int32  `yaml:"min"`
	Max         *int32  `yaml:"max"`
	Limit       *int    `yaml:"limit"`
	Lookup      *int32  `yaml:"lookup"`
	Workers     *int    `yaml:"workers"`
	Repeat      *int    `yaml:"repeat"`
	Seed        *int64  `yaml:"seed"`
	Dataset     *string `yaml:"dataset"`
	Store       *string `yaml:"store"`
	Compression *string `yaml:"compression"`
	Log         struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"log"`
}

// Load applies the config file at path (if any) and then the environment
// on top of the defaults. An empty path skips the file. Flags are applied
// by the caller afterwards.
func Load(path string) (*Config, error) {
	cfg := LoadDefaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.applyYAML(data); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyYAML(data []byte) error {
	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	set(&c.Size, y.Size)
	set(&c.Min, y.Min)
	set(&c.Max, y.Max)
	set(&c.Limit, y.Limit)
	set(&c.Lookup, y.Lookup)
	set(&c.Workers, y.Workers)
	set(&c.Repeat, y.Repeat)
	set(&c.Seed, y.Seed)
	set(&c.Dataset, y.Dataset)
	set(&c.Store, y.Store)
	set(&c.Compression, y.Compression)
	set(&c.LogLevel, y.Log.Level)
	set(&c.LogFormat, y.Log.Format)
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// applyEnv reads SIMDBMK_* variables through lookup. Malformed numbers are
// errors rather than silently ignored.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	envInt := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	envInt32 := func(key string, dst *int32) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = int32(n)
		}
	}
	envString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	envInt("SIMDBMK_SIZE", &c.Size)
	envInt32("SIMDBMK_MIN", &c.Min)
	envInt32("SIMDBMK_MAX", &c.Max)
	envInt("SIMDBMK_LIMIT", &c.Limit)
	envInt32("SIMDBMK_LOOKUP", &c.Lookup)
	envInt("SIMDBMK_WORKERS", &c.Workers)
	envInt("SIMDBMK_REPEAT", &c.Repeat)
	envString("SIMDBMK_STORE", &c.Store)
	envString("SIMDBMK_LOG_LEVEL", &c.LogLevel)
	envString("SIMDBMK_LOG_FORMAT", &c.LogFormat)

	return errors.Join(errs...)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Size < 0 {
		errs = append(errs, fmt.Errorf("size must be >= 0, got %d", c.Size))
	}
	if c.Min > c.Max {
		errs = append(errs, fmt.Errorf("min (%d) must not exceed max (%d)", c.Min, c.Max))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.Repeat < 1 {
		errs = append(errs, fmt.Errorf("repeat must be >= 1, got %d", c.Repeat))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.LogFormat))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf("size=%d range=[%d,%d] lookup=%d k=%d workers=%d repeat=%d store=%s",
		c.Size, c.Min, c.Max, c.Lookup, c.Limit, c.Workers, c.Repeat, c.Store)
}
