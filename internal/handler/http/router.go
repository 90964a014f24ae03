package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the values the router needs from configuration.
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// UploadsDir is served under /uploads for authenticated users when set.
	UploadsDir string
}

type Handlers struct {
	Attendance AttendanceHandler
	Employee   EmployeeHandler
	Report     ReportHandler
	Payroll    PayrollHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Tokens are issued by the identity provider; this service only verifies them.
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/clock-in", h.Attendance.ClockIn)
			r.Post("/clock-out", h.Attendance.ClockOut)
			r.Post("/break-start", h.Attendance.StartBreak)
			r.Post("/break-end", h.Attendance.EndBreak)
			r.Get("/today", h.Attendance.Today)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.Attendance.List)
				r.Patch("/{id}", h.Attendance.Update)
				r.Delete("/{id}", h.Attendance.Delete)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Use(middleware.AdminOnly)
			r.Get("/", h.Employee.ListEmployees)
			r.Post("/", h.Employee.CreateEmployee)
			r.Get("/{id}", h.Employee.GetEmployee)
			r.Delete("/{id}", h.Employee.DeleteEmployee)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(middleware.AdminOnly)
			r.Get("/monthly", h.Report.GetMonthlyReport)
			r.Get("/monthly/export", h.Report.ExportMonthlyReport)
			r.Get("/attendance/export", h.Report.ExportAttendance)
			r.Post("/archive", h.Report.ArchiveMonth)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.With(middleware.RequireRole(jwt.RoleStaff, jwt.RoleAdmin)).Get("/me", h.Payroll.MyEstimate)
			r.With(middleware.AdminOnly).Get("/estimate", h.Payroll.Estimate)
		})
	})

	if opts.UploadsDir != "" {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
		})
	}

	return r
}
