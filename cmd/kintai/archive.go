package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newArchiveCmd() *cobra.Command {
	var year, month int

	prev := time.Now().AddDate(0, -1, 0)
	year, month = prev.Year(), int(prev.Month())

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive every active employee's monthly report to storage",
		Long: `archive renders the monthly workbook of each active employee and stores it
under reports/YYYY-MM/. Months that are already archived are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			result, err := b.reports.ArchiveMonth(cmd.Context(), year, month)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: archived %d, skipped %d\n", result.Period, result.Archived, result.Skipped)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", year, "Year to archive (default: previous month)")
	cmd.Flags().IntVar(&month, "month", month, "Month to archive, 1-12 (default: previous month)")

	return cmd
}
