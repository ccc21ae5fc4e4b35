// Command simdbmk benchmarks scalar, vectorized and multi-threaded linear
// search over a random int32 array and checks that all variants agree.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/elafarge/simd-benchmarking/internal/verify"
)

var (
	version   = "0.1.0"
	commit    = "dev"
	buildTime = "unknown" // Set via ldflags: -X main.buildTime=$(date +%Y%m%d-%H%M%S)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps verification failures to the historical exit statuses.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var m *verify.Mismatch
	if errors.As(err, &m) {
		return m.Code()
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return 1
}
