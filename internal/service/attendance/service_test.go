package attendance

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/kintai-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/kintai-backend-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "0b7c6f0e-4a57-4c55-9d43-6b1c2b1f9a10"

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

type attendanceFixture struct {
	svc   attendance.AttendanceService
	repo  *memory.AttendanceRepository
	files *memory.Storage
	clock *testClock
	tokyo *time.Location
}

func newFixture(t *testing.T, requirePhoto bool) *attendanceFixture {
	t.Helper()
	tokyo := time.FixedZone("JST", 9*60*60)

	f := &attendanceFixture{
		repo:  memory.NewAttendanceRepository(nil),
		files: memory.NewStorage(),
		clock: &testClock{now: time.Date(2024, 3, 1, 0, 2, 0, 0, time.UTC)}, // 09:02 in Tokyo
		tokyo: tokyo,
	}
	employees := memory.NewEmployeeRepository(employee.Employee{
		ID: testEmployeeID, FullName: "Sato Hanako", PayBasis: employee.PayBasisHourly,
	})
	f.svc = NewAttendanceService(f.repo, employees, file.NewFileService(f.files), timesheet.DefaultSettings(), tokyo, requirePhoto, WithClock(f.clock.Now))
	return f
}

func (f *attendanceFixture) at(hour, minute int) {
	f.clock.now = time.Date(2024, 3, 1, hour, minute, 0, 0, f.tokyo)
}

func TestAttendanceService_FullDay(t *testing.T) {
	f := newFixture(t, false)
	ctx := staffContext(t, testEmployeeID)

	f.at(9, 2)
	resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", resp.Date)
	require.NotNil(t, resp.ClockIn)
	assert.Equal(t, "09:02", *resp.ClockIn)
	assert.Equal(t, attendance.StatusWorking, resp.Status)

	f.at(12, 0)
	resp, err = f.svc.StartBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnBreak, resp.Status)

	f.at(13, 0)
	_, err = f.svc.EndBreak(ctx)
	require.NoError(t, err)

	f.at(18, 2)
	resp, err = f.svc.ClockOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusFinished, resp.Status)
	assert.InDelta(t, 8.0, resp.Stats.NetHours, 1e-9)
	assert.InDelta(t, 0.5, resp.Stats.OvertimeHours, 1e-9)

	today, err := f.svc.GetToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusFinished, today.Status)
	require.NotNil(t, today.Attendance)
	assert.Equal(t, "18:02", *today.Attendance.ClockOut)
}

func TestAttendanceService_UsesConfiguredTimezoneForDate(t *testing.T) {
	f := newFixture(t, false)
	ctx := staffContext(t, testEmployeeID)

	// 23:30 UTC on Feb 29 is already Mar 1 in Tokyo.
	f.clock.now = time.Date(2024, 2, 29, 23, 30, 0, 0, time.UTC)
	resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", resp.Date)
	assert.Equal(t, "08:30", *resp.ClockIn)
}

func TestAttendanceService_NightShiftClosesAfterMidnight(t *testing.T) {
	f := newFixture(t, false)
	ctx := staffContext(t, testEmployeeID)

	f.at(23, 0)
	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	f.clock.now = time.Date(2024, 3, 2, 0, 30, 0, 0, f.tokyo)
	resp, err := f.svc.StartBreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", resp.Date)

	f.clock.now = time.Date(2024, 3, 2, 1, 0, 0, 0, f.tokyo)
	_, err = f.svc.EndBreak(ctx)
	require.NoError(t, err)

	today, err := f.svc.GetToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusWorking, today.Status)

	f.clock.now = time.Date(2024, 3, 2, 2, 0, 0, 0, f.tokyo)
	resp, err = f.svc.ClockOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", resp.Date)
	assert.Equal(t, attendance.StatusFinished, resp.Status)
	require.NotNil(t, resp.ClockOut)
	assert.Equal(t, "02:00", *resp.ClockOut)
	assert.InDelta(t, 2.5, resp.Stats.NetHours, 1e-9)

	// A finished shift from the previous day does not carry over.
	f.clock.now = time.Date(2024, 3, 2, 3, 0, 0, 0, f.tokyo)
	_, err = f.svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestAttendanceService_StateRules(t *testing.T) {
	f := newFixture(t, false)
	ctx := staffContext(t, testEmployeeID)

	_, err := f.svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = f.svc.StartBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = f.svc.EndBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrBreakNotStarted)

	_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	_, err = f.svc.ClockIn(ctx, attendance.ClockInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	_, err = f.svc.EndBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrBreakNotStarted)

	_, err = f.svc.StartBreak(ctx)
	require.NoError(t, err)
	_, err = f.svc.StartBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyStarted)

	_, err = f.svc.EndBreak(ctx)
	require.NoError(t, err)
	_, err = f.svc.EndBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyEnded)

	_, err = f.svc.ClockOut(ctx)
	require.NoError(t, err)
	_, err = f.svc.ClockOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestAttendanceService_ClockInPhoto(t *testing.T) {
	f := newFixture(t, true)
	ctx := staffContext(t, testEmployeeID)

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{})
	assert.ErrorIs(t, err, attendance.ErrPhotoRequired)

	header := &multipart.FileHeader{
		Filename: "selfie.PNG",
		Size:     4,
		Header:   textproto.MIMEHeader{"Content-Type": {"image/png"}},
	}
	resp, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{File: nopFile{bytes.NewReader([]byte("\x89PNG"))}, FileHeader: header})
	require.NoError(t, err)

	key := "attendance/" + testEmployeeID + "/2024-03-01/clock_in.png"
	assert.Contains(t, f.files.Keys(), key)
	require.NotNil(t, resp.PhotoURL)
	assert.Equal(t, "http://files.test/"+key, *resp.PhotoURL)

	require.NoError(t, f.svc.DeleteAttendance(ctx, resp.ID))
	assert.NotContains(t, f.files.Keys(), key)
}

func TestAttendanceService_RequiresEmployeeClaim(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.ClockIn(staffContext(t, ""), attendance.ClockInRequest{})
	assert.ErrorIs(t, err, attendance.ErrEmployeeRequired)

	_, err = f.svc.ClockIn(staffContext(t, "4d1c1d1e-0000-4000-8000-000000000000"), attendance.ClockInRequest{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_UpdateAttendance(t *testing.T) {
	f := newFixture(t, false)
	ctx := staffContext(t, testEmployeeID)

	created, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	out, empty := "17:30", ""
	resp, err := f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: created.ID, ClockOut: &out, BreakStart: &empty})
	require.NoError(t, err)
	assert.Equal(t, "17:30", *resp.ClockOut)
	assert.Nil(t, resp.BreakStart)
	assert.InDelta(t, 8.0+28.0/60, resp.Stats.NetHours, 1e-9)

	bad := "25:00"
	_, err = f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: created.ID, ClockIn: &bad})
	assert.Error(t, err)

	_, err = f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: "missing", ClockOut: &out})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceService_ListAttendance(t *testing.T) {
	f := newFixture(t, false)
	ctx := staffContext(t, testEmployeeID)

	_, err := f.svc.ClockIn(ctx, attendance.ClockInRequest{})
	require.NoError(t, err)

	resp, err := f.svc.ListAttendance(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Len(t, resp.Attendances, 1)
}

func staffContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	ctx, err := jwt.NewContext(context.Background(), jwt.NewJWTService("test-secret", "1h"),
		jwt.Claims{Subject: "u-" + employeeID, EmployeeID: employeeID, Role: jwt.RoleStaff})
	require.NoError(t, err)
	return ctx
}

type nopFile struct {
	*bytes.Reader
}

func (nopFile) Close() error { return nil }
