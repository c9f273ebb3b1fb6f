package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/every-penny/internal/cli"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the budget dashboard",
		Long:  `Show per-category budget rollups with current-period spending and totals.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, store, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			dashboard, err := eng.GetDashboard(ctx, currentUser())
			if err != nil {
				return fmt.Errorf("failed to build dashboard: %w", err)
			}

			fmt.Println(cli.RenderDashboard(dashboard, currency()))
			return nil
		},
	}
}
