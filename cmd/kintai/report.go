package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var (
		req    report.MonthlyReportRequest
		out    string
		format string
	)

	now := time.Now()
	req.Year, req.Month = now.Year(), int(now.Month())

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render an employee's monthly report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			switch format {
			case "xlsx":
				file, err := b.reports.MonthlyReportXLSX(cmd.Context(), req)
				if err != nil {
					return err
				}
				if out == "" {
					out = file.Filename
				}
				if err := writeFile(out, file.Data); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			case "json":
				resp, err := b.reports.MonthlyReport(cmd.Context(), req)
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(resp, "", "  ")
				if err != nil {
					return err
				}
				if out == "" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return err
				}
				return writeFile(out, data)
			default:
				return fmt.Errorf("unsupported format %q: use xlsx or json", format)
			}
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.EmployeeID, "employee", "", "Employee ID")
	f.IntVar(&req.Year, "year", req.Year, "Report year")
	f.IntVar(&req.Month, "month", req.Month, "Report month, 1-12")
	f.StringVarP(&out, "out", "o", "", "Output file (default: generated name for xlsx, stdout for json)")
	f.StringVar(&format, "format", "xlsx", "Output format: xlsx, json")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}
