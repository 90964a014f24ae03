package main

import (
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	timesheetsvc "github.com/cmlabs-hris/kintai-backend-go/internal/service/timesheet"
	"github.com/spf13/cobra"
)

type calcOptions struct {
	clockIn    string
	clockOut   string
	breakStart string
	breakEnd   string
	settings   timesheet.Settings
}

func newCalcCmd() *cobra.Command {
	opts := calcOptions{settings: timesheet.DefaultSettings()}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute one day's hours from clock times",
		Example: `  kintai calc --in 09:00 --out 18:00 --break-start 12:00 --break-end 13:00
  kintai calc --in 22:00 --out 06:00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := computeDay(opts)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.clockIn, "in", "", "Clock-in time, HH:MM")
	f.StringVar(&opts.clockOut, "out", "", "Clock-out time, HH:MM")
	f.StringVar(&opts.breakStart, "break-start", "", "Break start time, HH:MM")
	f.StringVar(&opts.breakEnd, "break-end", "", "Break end time, HH:MM")
	f.Float64Var(&opts.settings.StandardDayHours, "standard-hours", timesheet.DefaultStandardDayHours, "Hours in a standard work day")
	f.IntVar(&opts.settings.NightStartHour, "night-start", timesheet.DefaultNightStartHour, "First hour of the night window")
	f.IntVar(&opts.settings.NightEndHour, "night-end", timesheet.DefaultNightEndHour, "Hour the night window ends")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// computeDay parses the flags strictly; unlike stored records a malformed
// value here is an error.
func computeDay(opts calcOptions) (timesheet.DayStats, error) {
	if err := opts.settings.Validate(); err != nil {
		return timesheet.DayStats{}, err
	}

	var clocks [4]*timesheet.Clock
	for i, raw := range []struct{ name, value string }{
		{"in", opts.clockIn},
		{"out", opts.clockOut},
		{"break-start", opts.breakStart},
		{"break-end", opts.breakEnd},
	} {
		c, err := timesheetsvc.ParseClock(raw.value)
		if err != nil {
			return timesheet.DayStats{}, fmt.Errorf("--%s: %w", raw.name, err)
		}
		clocks[i] = c
	}

	calc := timesheetsvc.NewCalculator(opts.settings)
	return calc.Compute(clocks[0], clocks[1], clocks[2], clocks[3]), nil
}
