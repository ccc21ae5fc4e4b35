package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/elafarge/simd-benchmarking/internal/bench"
)

func newSweepCmd(s *settings) *cobra.Command {
	var (
		from, to, step float64
		out            string
		interval       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sweep [POWER...]",
		Short: "Run the benchmark for sizes 10^p and write one CSV row per size",
		Long: `sweep runs the benchmark for every array size floor(10^p). Powers are
taken from the arguments when given, otherwise from --from to --to in
steps of --step.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			bc, err := benchConfig(cmd, cfg)
			if err != nil {
				return err
			}

			powers := bench.PowerRange(from, to, step)
			if len(args) > 0 {
				powers = powers[:0]
				for _, a := range args {
					var p float64
					if _, err := fmt.Sscanf(a, "%g", &p); err != nil {
						return fmt.Errorf("power %q: %w", a, err)
					}
					powers = append(powers, p)
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			p := newPrinter(cmd.ErrOrStderr(), s.noColor)
			bc.OnVariant = nil
			sizes := bench.PowerSizes(powers)
			if len(sizes) == 0 {
				return fmt.Errorf("no sizes in [10^%g, 10^%g]", from, to)
			}
			p.title("Sweeping %d sizes from %d to %d", len(sizes), sizes[0], sizes[len(sizes)-1])

			reports, err := bench.Sweep(cmd.Context(), bc, sizes, interval, w)
			for _, r := range reports {
				p.ok("n=%d ran successfully (vect x%.2f, mt_vect x%.2f)", r.Size, r.Factors.Vect, r.Factors.MTVect)
			}
			return err
		},
	}

	cmd.Flags().Float64Var(&from, "from", 3, "First power of ten")
	cmd.Flags().Float64Var(&to, "to", 7, "Last power of ten")
	cmd.Flags().Float64Var(&step, "step", 1, "Power increment")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "CSV output path (- for stdout)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Minimum delay between runs")
	return cmd
}
