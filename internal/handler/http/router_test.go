package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/kintai-backend-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/kintai-backend-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/kintai-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/service/file"
	"github.com/cmlabs-hris/kintai-backend-go/internal/service/monthly"
	payrollService "github.com/cmlabs-hris/kintai-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/kintai-backend-go/internal/service/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	staffEmployeeID   = "3b9d2a6e-7c41-4f08-9e5d-1a2b3c4d5e6f"
)

type testServer struct {
	handler    http.Handler
	tokens     jwt.Service
	attendance *memory.AttendanceRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	employees := memory.NewEmployeeRepository(employee.Employee{
		ID: staffEmployeeID, FullName: "Sato Hanako", PayBasis: employee.PayBasisHourly, Salary: decimal.NewFromInt(1200),
	})
	records := memory.NewAttendanceRepository(employees)
	files := memory.NewStorage()
	settings := timesheet.DefaultSettings()
	loader := monthly.NewLoader(employees, records, settings)
	tokens := jwt.NewJWTService(handlerTestSecret, "1h")

	now := func() time.Time { return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC) }

	router := NewRouter(RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}}, tokens, Handlers{
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(records, employees, file.NewFileService(files), settings, time.UTC, false, attendanceService.WithClock(now))),
		Employee:   NewEmployeeHandler(employeeService.NewEmployeeService(memory.PassthroughTx, employees)),
		Report:     NewReportHandler(reportService.NewReportService(loader, employees, records, files)),
		Payroll:    NewPayrollHandler(payrollService.NewPayrollService(loader, time.UTC)),
	})

	return &testServer{handler: router, tokens: tokens, attendance: records}
}

func (s *testServer) token(t *testing.T, c jwt.Claims) string {
	t.Helper()
	tok, _, err := s.tokens.GenerateAccessToken(c)
	require.NoError(t, err)
	return tok
}

func (s *testServer) staffToken(t *testing.T) string {
	return s.token(t, jwt.Claims{Subject: "u-staff", EmployeeID: staffEmployeeID, Role: jwt.RoleStaff})
}

func (s *testServer) adminToken(t *testing.T) string {
	return s.token(t, jwt.Claims{Subject: "u-admin", Role: jwt.RoleAdmin})
}

func (s *testServer) do(t *testing.T, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/attendance/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/today", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminRoutesRejectStaff(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/employees", s.staffToken(t), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestRouter_ClockFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.staffToken(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, "2024-02-01", created.Date)
	assert.Equal(t, "09:00", *created.ClockIn)

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/break-end", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var today attendance.TodayResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &today))
	assert.Equal(t, attendance.StatusWorking, today.Status)
}

func TestRouter_AdminCorrectsAttendance(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", s.staffToken(t), nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))

	rec = s.do(t, http.MethodPatch, "/api/v1/attendance/"+created.ID, s.adminToken(t), strings.NewReader(`{"clock_out":"18:00"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated attendance.AttendanceResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &updated))
	assert.InDelta(t, 9.0, updated.Stats.NetHours, 1e-9)

	rec = s.do(t, http.MethodPatch, "/api/v1/attendance/"+created.ID, s.adminToken(t), strings.NewReader(`{"clock_out":"18:75"}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec).Error.Details, "clock_out")
}

func TestRouter_CreateEmployee(t *testing.T) {
	s := newTestServer(t)
	body := `{"full_name":"Suzuki Ichiro","pay_basis":"monthly","salary":"300000","transportation":"10000","pin":"1234"}`

	rec := s.do(t, http.MethodPost, "/api/v1/employees", s.adminToken(t), bytes.NewBufferString(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created employee.EmployeeResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, "300000.00", created.Salary)

	rec = s.do(t, http.MethodPost, "/api/v1/employees", s.adminToken(t), bytes.NewBufferString(body))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/employees?limit=1", s.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_items":2`)
}

func TestRouter_MonthlyReport(t *testing.T) {
	s := newTestServer(t)
	in, out := "22:00", "06:00"
	s.attendance.Seed(attendance.Attendance{
		EmployeeID: staffEmployeeID, Date: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), ClockIn: &in, ClockOut: &out,
	})

	rec := s.do(t, http.MethodGet, "/api/v1/reports/monthly?employee_id="+staffEmployeeID+"&year=2024&month=2", s.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Totals timesheet.MonthlyTotals `json:"totals"`
		Grid   timesheet.ReportGrid    `json:"grid"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &data))
	assert.Len(t, data.Grid.Rows, 29)
	assert.InDelta(t, 8.0, data.Totals.TotalNet, 1e-9)
	assert.InDelta(t, 7.0, data.Totals.TotalNight, 1e-9)

	rec = s.do(t, http.MethodGet, "/api/v1/reports/monthly/export?employee_id="+staffEmployeeID+"&year=2024&month=2", s.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, spreadsheet.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment;")

	rec = s.do(t, http.MethodGet, "/api/v1/reports/monthly?employee_id="+staffEmployeeID+"&year=2024&month=feb", s.adminToken(t), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_PayrollEstimate(t *testing.T) {
	s := newTestServer(t)
	in, out := "09:00", "17:00"
	s.attendance.Seed(attendance.Attendance{
		EmployeeID: staffEmployeeID, Date: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), ClockIn: &in, ClockOut: &out,
	})

	rec := s.do(t, http.MethodGet, "/api/v1/payroll/estimate?employee_id="+staffEmployeeID+"&year=2024&month=2", s.adminToken(t), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"amount":"9600"`)

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/estimate?employee_id="+staffEmployeeID+"&year=2024&month=2", s.staffToken(t), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
