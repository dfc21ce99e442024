package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/billfold/billfold/internal/cli"
	"github.com/billfold/billfold/internal/summary"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [month]",
		Short: "Show a month's totals and bill status",
		Long: `Show income, recurring and misc spending, net flow, and the payment
status of every active bill for a month. Defaults to the current month.

Examples:
  billfold summary
  billfold summary 2026-08`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := time.Now().Format("2006-01")
			if len(args) == 1 {
				month = args[0]
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sum, err := summary.ForMonth(cmd.Context(), store, month)
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderSummary(sum))
			return nil
		},
	}
}
