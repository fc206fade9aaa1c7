package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atria-go/atria/app"
	"github.com/atria-go/atria/service"
)

func newRangeCmd() *cobra.Command {
	var query string
	var exclude string
	var countOnly bool

	cmd := &cobra.Command{
		Use:   "range <input>",
		Short: "Build a tree and answer a range (or range-count) query against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return fmt.Errorf("--query is required")
			}

			cfg, err := loadMergedConfig(cmd)
			if err != nil {
				return err
			}

			built, err := buildEngineFromArg(cmd, cfg, args[0])
			if err != nil {
				return err
			}

			vec, err := parseQueryVector(query)
			if err != nil {
				return err
			}
			excl, err := parseExcludeRange(exclude)
			if err != nil {
				return err
			}
			rangeConfig := service.ConfigToRangeConfig(cfg, excl)

			writer := newResultWriter(cmd, cfg)
			uc := app.NewRangeUseCase(writer)
			ctx := cmd.Context()
			req := app.RangeRequest{Engine: built.Engine, Query: vec, Config: rangeConfig}

			if countOnly {
				count, err := uc.ExecuteCount(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", count)
				return nil
			}
			return uc.Execute(ctx, req)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Query point as comma-separated coordinates")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Inclusive index band \"first:last\" to exclude from results")
	cmd.Flags().BoolVar(&countOnly, "count-only", false, "Report only the match count, not the neighbor list")
	return cmd
}
