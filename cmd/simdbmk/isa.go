package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/liggitt/tabwriter"
	"github.com/spf13/cobra"

	"github.com/elafarge/simd-benchmarking/internal/simd"
)

func newISACmd() *cobra.Command {
	return &cobra.Command{
		Use:   "isa",
		Short: "Print the detected SIMD capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := simd.Info()
			features := strings.Join(info.Features, ",")
			if features == "" {
				features = "none"
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 8, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "arch\t%s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(tw, "cpu isa\t%s\n", info.ISA)
			fmt.Fprintf(tw, "kernel\t%s (portable Go)\n", info.Kernel)
			fmt.Fprintf(tw, "accelerated\t%t\n", info.Accelerated())
			fmt.Fprintf(tw, "overridden\t%t (%s)\n", info.Overridden, simd.EnvOverride)
			fmt.Fprintf(tw, "features\t%s\n", features)
			fmt.Fprintf(tw, "gomaxprocs\t%d\n", runtime.GOMAXPROCS(0))
			return tw.Flush()
		},
	}
}
