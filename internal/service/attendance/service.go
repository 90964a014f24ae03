package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/kintai-backend-go/internal/service/file"
	timesheetsvc "github.com/cmlabs-hris/kintai-backend-go/internal/service/timesheet"
)

const clockLayout = "15:04"

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	files        file.FileService
	calc         timesheetsvc.Calculator
	loc          *time.Location
	requirePhoto bool
	now          func() time.Time
}

// Option customises an AttendanceServiceImpl.
type Option func(*AttendanceServiceImpl)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *AttendanceServiceImpl) { a.now = now }
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	settings timesheet.Settings,
	loc *time.Location,
	requirePhoto bool,
	opts ...Option,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	a := &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		files:                fileService,
		calc:                 timesheetsvc.NewCalculator(settings),
		loc:                  loc,
		requirePhoto:         requirePhoto,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if a.requirePhoto && !req.HasPhoto() {
		return attendance.AttendanceResponse{}, attendance.ErrPhotoRequired
	}

	employeeID, err := a.currentEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, clock := a.localNow()

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	var photoKey *string
	if req.HasPhoto() {
		stored, err := a.files.UploadClockInPhoto(ctx, employeeID, date, req.File, req.FileHeader.Filename)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		photoKey = &stored
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		ClockIn:    &clock,
		PhotoKey:   photoKey,
	})
	if err != nil {
		if photoKey != nil {
			if delErr := a.files.DeleteFile(ctx, *photoKey); delErr != nil {
				slog.Warn("failed to remove orphaned clock-in photo",
					slog.String("key", *photoKey),
					slog.Any("error", delErr),
				)
			}
		}
		if errors.Is(err, attendance.ErrAlreadyClockedIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return a.toResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	return a.mutateToday(ctx, func(att *attendance.Attendance, clock string) error {
		if att == nil || att.ClockIn == nil {
			return attendance.ErrNotClockedIn
		}
		if att.ClockOut != nil {
			return attendance.ErrAlreadyClockedOut
		}
		att.ClockOut = &clock
		return nil
	})
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context) (attendance.AttendanceResponse, error) {
	return a.mutateToday(ctx, func(att *attendance.Attendance, clock string) error {
		if att == nil || att.ClockIn == nil {
			return attendance.ErrNotClockedIn
		}
		if att.BreakStart != nil {
			return attendance.ErrBreakAlreadyStarted
		}
		att.BreakStart = &clock
		return nil
	})
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context) (attendance.AttendanceResponse, error) {
	return a.mutateToday(ctx, func(att *attendance.Attendance, clock string) error {
		if att == nil || att.BreakStart == nil {
			return attendance.ErrBreakNotStarted
		}
		if att.BreakEnd != nil {
			return attendance.ErrBreakAlreadyEnded
		}
		att.BreakEnd = &clock
		return nil
	})
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	employeeID, err := a.currentEmployee(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	date, _ := a.localNow()
	att, err := a.currentRecord(ctx, employeeID, date)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	resp := attendance.TodayResponse{
		Date:   date.Format("2006-01-02"),
		Status: att.Status(),
	}
	if att != nil {
		resp.Date = att.Date.Format("2006-01-02")
		r := a.toResponse(*att)
		resp.Attendance = &r
	}
	return resp, nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	rows, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, a.toResponse(row))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	applyField(&att.ClockIn, req.ClockIn)
	applyField(&att.ClockOut, req.ClockOut)
	applyField(&att.BreakStart, req.BreakStart)
	applyField(&att.BreakEnd, req.BreakEnd)

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return a.toResponse(att), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	if att.PhotoKey != nil {
		if err := a.files.DeleteFile(ctx, *att.PhotoKey); err != nil {
			slog.Warn("failed to delete attendance photo",
				slog.String("attendance_id", id),
				slog.Any("error", err),
			)
		}
	}
	return nil
}

// mutateToday loads today's record, applies fn and persists the result.
func (a *AttendanceServiceImpl) mutateToday(ctx context.Context, fn func(att *attendance.Attendance, clock string) error) (attendance.AttendanceResponse, error) {
	employeeID, err := a.currentEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, clock := a.localNow()

	att, err := a.currentRecord(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := fn(att, clock); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := a.AttendanceRepository.Update(ctx, *att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return a.toResponse(*att), nil
}

// currentRecord returns the record of date or, when there is none, a shift
// still open from the previous day so night shifts can be closed after midnight.
func (a *AttendanceServiceImpl) currentRecord(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	att, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att != nil {
		return att, nil
	}

	prev, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("failed to get previous attendance: %w", err)
	}
	if prev != nil && prev.ClockIn != nil && prev.ClockOut == nil {
		return prev, nil
	}
	return nil, nil
}

func (a *AttendanceServiceImpl) currentEmployee(ctx context.Context) (string, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	if claims.EmployeeID == "" {
		return "", attendance.ErrEmployeeRequired
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, claims.EmployeeID); err != nil {
		return "", err
	}
	return claims.EmployeeID, nil
}

// localNow returns the working date (as a UTC midnight) and the HH:MM wall clock
// in the configured timezone.
func (a *AttendanceServiceImpl) localNow() (time.Time, string) {
	local := a.now().In(a.loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return date, local.Format(clockLayout)
}

func (a *AttendanceServiceImpl) toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		EmployeeName: att.EmployeeName,
		Date:         att.Date.Format("2006-01-02"),
		ClockIn:      att.ClockIn,
		ClockOut:     att.ClockOut,
		BreakStart:   att.BreakStart,
		BreakEnd:     att.BreakEnd,
		Status:       att.Status(),
		Stats:        a.calc.ComputeRecord(att.DayRecord()),
		CreatedAt:    att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    att.UpdatedAt.Format(time.RFC3339),
	}
	if att.PhotoKey != nil {
		url := a.files.FileURL(*att.PhotoKey)
		resp.PhotoURL = &url
	}
	return resp
}

// applyField sets dst from an optional patch value; "" clears it.
func applyField(dst **string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		*dst = nil
		return
	}
	s := *v
	*dst = &s
}
