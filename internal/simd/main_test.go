package simd

import (
	"fmt"
	"os"
	"runtime"
	"testing"
)

// TestMain prints ISA diagnostics so CI logs show which kernel ran.
func TestMain(m *testing.M) {
	info := Info()

	fmt.Printf("=== SIMD ISA Diagnostics ===\n")
	fmt.Printf("GOOS=%s GOARCH=%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("%s=%q\n", EnvOverride, os.Getenv(EnvOverride))
	fmt.Printf("Active ISA: %s\n", info.ISA)
	fmt.Printf("Kernel: %s\n", info.Kernel)
	fmt.Printf("Override: %v\n", info.Overridden)
	fmt.Printf("CPU Features: %v\n", info.Features)
	fmt.Printf("============================\n\n")

	os.Exit(m.Run())
}
