package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the settings the router takes from configuration.
type RouterOptions struct {
	AppName        string
	Version        string
	Env            string
	AllowedOrigins []string
	LogLevel       slog.Level
	// AccessLog receives the request log; nil discards it
	AccessLog io.Writer
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	reportHandler ReportHandler,
	monitoringHandler MonitoringHandler,
) *chi.Mux {
	r := chi.NewRouter()

	accessLog := opts.AccessLog
	if accessLog == nil {
		accessLog = io.Discard
	}
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(accessLog, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/hello", monitoringHandler.Hello)
	r.Get("/health", monitoringHandler.Health)

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				// Own data or admin
				r.With(middleware.SelfOrAdmin("employeeId")).Post("/submit/{employeeId}", attendanceHandler.Submit)
				r.Route("/employee/{employeeId}", func(r chi.Router) {
					r.Use(middleware.SelfOrAdmin("employeeId"))
					r.Get("/", attendanceHandler.ListByEmployee)
					r.Get("/days", attendanceHandler.ListPresentDates)
				})

				// Admin only
				r.Route("/admin", func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/all", attendanceHandler.ListAll)
					r.Get("/employees-attendance", attendanceHandler.ListEmployeesAttendance)
					r.Get("/weekly", attendanceHandler.ListWeeks)
					r.Put("/weekly/update", attendanceHandler.CorrectWeek)
					r.Put("/update/{recordId}", attendanceHandler.Update)
					r.Get("/report", reportHandler.ExportMonthlyAttendance)
					r.Get("/report/summary", reportHandler.MonthlyAttendance)
					r.Delete("/{recordId}", attendanceHandler.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.AdminOnly).Get("/", employeeHandler.List)
				r.With(middleware.SelfOrAdmin("id")).Get("/by-id/{id}", employeeHandler.Get)
				r.With(middleware.SelfOrAdmin("id")).Put("/{id}/department", employeeHandler.UpdateDepartment)
			})
		})
	})
	return r
}
