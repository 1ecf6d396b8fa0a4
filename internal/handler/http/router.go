package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/workforce-hub/attendance-backend/internal/config"
	"github.com/workforce-hub/attendance-backend/internal/handler/http/middleware"
	"github.com/workforce-hub/attendance-backend/internal/handler/http/response"
	"github.com/workforce-hub/attendance-backend/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	punchLimiter := httprate.Limit(
		cfg.RateLimit.PunchRequests,
		cfg.RateLimit.PunchWindow,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			if userID := middleware.UserIDFromContext(r.Context()); userID != "" {
				return userID, nil
			}
			return httprate.KeyByIP(r)
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w, "Too many punch attempts, try again later")
		}),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/sign-up", authHandler.SignUp)
			r.Post("/sign-in", authHandler.SignIn)
		})

		// The stream authenticates with its own short-lived token.
		r.Get("/events/stream", eventsHandler.Stream)

		r.Group(func(r chi.Router) {
			// Bearer header only: revocation and sign-out key on the header token.
			r.Use(jwtauth.Verify(jwtService.JWTAuth(), jwtauth.TokenFromHeader))
			r.Use(middleware.AuthRequired(jwtService))

			r.Delete("/auth/sign-out", authHandler.SignOut)
			r.Post("/events/token", eventsHandler.Token)

			r.Route("/attendance", func(r chi.Router) {
				r.With(punchLimiter).Post("/punch-in", attendanceHandler.PunchIn)
				r.With(punchLimiter).Post("/punch-out", attendanceHandler.PunchOut)
				r.Get("/punch-in/today", attendanceHandler.TodayPunchIn)
				r.Get("/punch-out/today", attendanceHandler.TodayPunchOut)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/daily", attendanceHandler.Daily)
					r.Get("/users/{id}/report", attendanceHandler.UserReport)
					r.Get("/users/{id}/report.xlsx", attendanceHandler.ExportUserReport)
					r.Route("/requests", func(r chi.Router) {
						r.Get("/", attendanceHandler.ListPending)
						r.Post("/accept", attendanceHandler.Accept)
						r.Post("/reject", attendanceHandler.Reject)
					})
				})
			})
		})
	})

	return r
}
