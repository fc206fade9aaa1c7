package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "build <input>",
		Aliases: []string{"stats"},
		Short:   "Build an ATRIA tree over a point set and report its shape",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMergedConfig(cmd)
			if err != nil {
				return err
			}

			result, err := buildEngineFromArg(cmd, cfg, args[0])
			if err != nil {
				return err
			}

			writer := newResultWriter(cmd, cfg)
			if err := writer.ReportTreeInfo(result.Info); err != nil {
				return fmt.Errorf("failed to report tree info: %w", err)
			}
			return nil
		},
	}
	return cmd
}
