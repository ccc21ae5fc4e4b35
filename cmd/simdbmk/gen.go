package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elafarge/simd-benchmarking/array"
	"github.com/elafarge/simd-benchmarking/dataset"
)

func newGenCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "Generate an array and save it as a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := s.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			c, err := dataset.ParseCompression(cfg.Compression)
			if err != nil {
				return err
			}
			name := cfg.Dataset
			if name == "" {
				name = fmt.Sprintf("uniform-%d.sbmk", cfg.Size)
			}

			store, err := openStore(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			seed := cfg.Seed
			if seed == 0 {
				seed = newSeed()
			}
			arr, err := array.Generate(cfg.Size, cfg.Min, cfg.Max, seed)
			if err != nil {
				return err
			}
			if err := dataset.Save(cmd.Context(), store, name, arr, c); err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), s.noColor)
			p.ok("saved %s: %d values in [%d, %d], %s, seed %d", p.value(name), len(arr), cfg.Min, cfg.Max, c, seed)
			p.info("%s", array.Format(arr, 10))
			return nil
		},
	}
}
