package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atria-go/atria/app"
	"github.com/atria-go/atria/service"
)

func newKNNCmd() *cobra.Command {
	var queries []string
	var exclude string

	cmd := &cobra.Command{
		Use:   "knn <input>",
		Short: "Build a tree and answer k-nearest-neighbor queries against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(queries) == 0 {
				return fmt.Errorf("at least one --query is required")
			}

			cfg, err := loadMergedConfig(cmd)
			if err != nil {
				return err
			}

			built, err := buildEngineFromArg(cmd, cfg, args[0])
			if err != nil {
				return err
			}

			excl, err := parseExcludeRange(exclude)
			if err != nil {
				return err
			}
			queryConfig := service.ConfigToQueryConfig(cfg, cfg.Query.K, excl)

			writer := newResultWriter(cmd, cfg)
			uc := app.NewKNNUseCase(writer, nil)
			ctx := cmd.Context()

			if len(queries) == 1 {
				vec, err := parseQueryVector(queries[0])
				if err != nil {
					return err
				}
				return uc.Execute(ctx, app.KNNRequest{Engine: built.Engine, Query: vec, Config: queryConfig})
			}

			vecs := make([][]float64, len(queries))
			for i, q := range queries {
				vec, err := parseQueryVector(q)
				if err != nil {
					return err
				}
				vecs[i] = vec
			}
			_, err = uc.ExecuteBatch(ctx, app.BatchRequest{Engine: built.Engine, Queries: vecs, Config: queryConfig})
			return err
		},
	}

	cmd.Flags().StringArrayVar(&queries, "query", nil, "Query point as comma-separated coordinates; repeat for a batch")
	cmd.Flags().StringVar(&exclude, "exclude", "", "Inclusive index band \"first:last\" to exclude from results")
	return cmd
}
