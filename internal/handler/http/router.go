package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shiftline/timeclock-backend-go/internal/config"
	"github.com/shiftline/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/shiftline/timeclock-backend-go/internal/pkg/jwt"
)

type RouterDeps struct {
	JWTService       jwt.Service
	AuthHandler      AuthHandler
	EmployeeHandler  EmployeeHandler
	TimeclockHandler TimeclockHandler
	ShiftHandler     ShiftHandler
	ScheduleHandler  ScheduleHandler
	PolicyHandler    PolicyHandler
}

func NewRouter(cfg *config.Config, deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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
	r.Use(httprate.LimitByIP(100, time.Minute))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", deps.AuthHandler.Login)
			r.Post("/refresh", deps.AuthHandler.Refresh)
			r.Post("/logout", deps.AuthHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Route("/timeclock", func(r chi.Router) {
				r.Post("/clock-in", deps.TimeclockHandler.ClockIn)
				r.Post("/clock-out", deps.TimeclockHandler.ClockOut)
				r.Post("/breaks/start", deps.TimeclockHandler.StartMealBreak)
				r.Post("/breaks/end", deps.TimeclockHandler.EndMealBreak)
				r.Get("/status", deps.TimeclockHandler.Status)
				r.Get("/my-shifts", deps.TimeclockHandler.MyShifts)
			})

			r.Get("/schedules/upcoming", deps.ScheduleHandler.ListUpcoming)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", deps.EmployeeHandler.List)
					r.Post("/", deps.EmployeeHandler.Create)
					r.Get("/{id}", deps.EmployeeHandler.Get)
				})

				r.Route("/shifts", func(r chi.Router) {
					r.Get("/", deps.ShiftHandler.List)
					r.Get("/export", deps.ShiftHandler.ExportTimesheets)
					r.Get("/{id}", deps.ShiftHandler.Get)
					r.Put("/{id}/times", deps.ShiftHandler.EditTimes)
					r.Get("/{id}/edit-logs", deps.ShiftHandler.ListEditLogs)
				})

				r.Post("/schedules", deps.ScheduleHandler.Save)

				r.Route("/policy", func(r chi.Router) {
					r.Get("/", deps.PolicyHandler.Get)
					r.Put("/", deps.PolicyHandler.Update)
				})
			})
		})
	})

	return r
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
