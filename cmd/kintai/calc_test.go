package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalcCmd_DayShift(t *testing.T) {
	out, err := runRoot(t, "calc", "--in", "09:00", "--out", "18:00", "--break-start", "12:00", "--break-end", "13:00")
	require.NoError(t, err)

	var stats timesheet.DayStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.InDelta(t, 8.0, stats.NetHours, 1e-9)
	assert.InDelta(t, 0.5, stats.OvertimeHours, 1e-9)
	assert.Zero(t, stats.NightHours)
}

func TestCalcCmd_OvernightShift(t *testing.T) {
	out, err := runRoot(t, "calc", "--in", "22:00", "--out", "06:00")
	require.NoError(t, err)

	var stats timesheet.DayStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.InDelta(t, 8.0, stats.NetHours, 1e-9)
	assert.InDelta(t, 7.0, stats.NightHours, 1e-9)
}

func TestCalcCmd_CustomSettings(t *testing.T) {
	out, err := runRoot(t, "calc", "--in", "09:00", "--out", "18:00", "--standard-hours", "8", "--night-start", "17", "--night-end", "6")
	require.NoError(t, err)

	var stats timesheet.DayStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.InDelta(t, 1.0, stats.OvertimeHours, 1e-9)
	assert.InDelta(t, 1.0, stats.NightHours, 1e-9)
}

func TestCalcCmd_Errors(t *testing.T) {
	_, err := runRoot(t, "calc", "--in", "9:00", "--out", "18:00")
	assert.ErrorIs(t, err, timesheet.ErrMalformedTime)

	_, err = runRoot(t, "calc", "--in", "09:00")
	assert.Error(t, err)

	_, err = runRoot(t, "calc", "--in", "09:00", "--out", "18:00", "--night-start", "24")
	assert.ErrorIs(t, err, timesheet.ErrInvalidSettings)
}
