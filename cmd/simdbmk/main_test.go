package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elafarge/simd-benchmarking/internal/verify"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseStoreURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    storeURL
		wantErr bool
	}{
		{"file://", storeURL{Scheme: "file", Dir: "./data"}, false},
		{"file:///tmp/sets", storeURL{Scheme: "file", Dir: "/tmp/sets"}, false},
		{"./local", storeURL{Scheme: "file", Dir: "./local"}, false},
		{"mem://", storeURL{Scheme: "mem"}, false},
		{"s3://bench/datasets/v1", storeURL{Scheme: "s3", Bucket: "bench", Prefix: "datasets/v1"}, false},
		{"s3://bench", storeURL{Scheme: "s3", Bucket: "bench"}, false},
		{"minio://localhost:9000/bench/sets", storeURL{Scheme: "minio", Host: "localhost:9000", Bucket: "bench", Prefix: "sets"}, false},
		{"s3://", storeURL{}, true},
		{"minio://localhost:9000", storeURL{}, true},
		{"gs://bucket", storeURL{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseStoreURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 12, exitCode(&verify.Mismatch{Check: verify.CheckSize}))
	assert.Equal(t, 13, exitCode(&verify.Mismatch{Check: verify.CheckValues}))
	assert.Equal(t, 14, exitCode(&verify.Mismatch{Check: verify.CheckLimit}))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "-n", "5000", "-k", "3", "--repeat", "1", "--workers", "3", "--no-color", "--store", "mem://")
	require.NoError(t, err)

	for _, want := range []string{
		"-- Let's generate a test array of size 5000 --",
		"-- Ok let's see where 12 is in the array --",
		"The k-factor works as expected",
		"All have the same size",
		"All have the same values",
		"vect_bis",
		"T_NAIVE T_VECT T_MT_NAIVE T_MT_VECT",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[")
}

func TestRootRunsBenchmark(t *testing.T) {
	out, err := execute(t, "--size", "100", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "All have the same values")
	assert.NotContains(t, out, "k-factor")
}

func TestRunInvalidConfig(t *testing.T) {
	_, err := execute(t, "run", "--min", "10", "--max", "1")
	assert.ErrorContains(t, err, "min (10) must not exceed max (1)")

	_, err = execute(t, "run", "--log-level", "loud", "-n", "10")
	assert.ErrorContains(t, err, "log level")
}

func TestConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simdbmk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("size: 64\nlookup: 3\nmax: 5\n"), 0o600))

	out, err := execute(t, "--config", path, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "array of size 64 --")
	assert.Contains(t, out, "where 3 is")

	out, err = execute(t, "--config", path, "-n", "128", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "array of size 128 --")
}

func TestGenThenRunDataset(t *testing.T) {
	dir := t.TempDir()
	store := "file://" + dir

	out, err := execute(t, "gen", "-n", "2048", "--store", store, "--dataset", "u.sbmk", "--compression", "lz4", "--seed", "9", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "saved u.sbmk: 2048 values")
	assert.FileExists(t, filepath.Join(dir, "u.sbmk"))

	out, err = execute(t, "run", "--store", store, "--dataset", "u.sbmk", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Let's load the dataset u.sbmk")
	assert.Contains(t, out, "All have the same values")
}

func TestGenRejectsUnknownCompression(t *testing.T) {
	_, err := execute(t, "gen", "-n", "8", "--store", "mem://", "--compression", "brotli")
	assert.Error(t, err)
}

func TestSweepCommand(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "benchmark.csv")
	_, err := execute(t, "sweep", "1", "2", "--out", csvPath, "--no-color")
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[1], " 10"))
	assert.True(t, strings.HasSuffix(lines[2], " 100"))
}

func TestVersionAndISA(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "simdbmk v"+version)

	out, err = execute(t, "isa")
	require.NoError(t, err)
	for _, want := range []string{"isa", "kernel", "SIMDBMK_SIMD", "gomaxprocs"} {
		assert.Contains(t, out, want)
	}
}

func TestPrinterColors(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf, color: true}
	p.ok("fine")
	p.fail("bad")
	assert.Contains(t, buf.String(), ansiGreen+"  - fine"+ansiReset)
	assert.Contains(t, buf.String(), ansiBold+ansiRed+"  - bad"+ansiReset)

	buf.Reset()
	p = newPrinter(&buf, true)
	p.title("plain")
	assert.Equal(t, "-- plain --\n", buf.String())
}
