package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/workforce-hub/attendance-backend/internal/config"
	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	appHTTP "github.com/workforce-hub/attendance-backend/internal/handler/http"
	"github.com/workforce-hub/attendance-backend/internal/pkg/cron"
	"github.com/workforce-hub/attendance-backend/internal/pkg/database"
	"github.com/workforce-hub/attendance-backend/internal/pkg/email"
	"github.com/workforce-hub/attendance-backend/internal/pkg/jwt"
	"github.com/workforce-hub/attendance-backend/internal/pkg/metrics"
	"github.com/workforce-hub/attendance-backend/internal/pkg/sse"
	"github.com/workforce-hub/attendance-backend/internal/repository/postgresql"
	attendanceService "github.com/workforce-hub/attendance-backend/internal/service/attendance"
	serviceAuth "github.com/workforce-hub/attendance-backend/internal/service/auth"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	punchInRepo := postgresql.NewPunchInRepository(db)
	punchOutRepo := postgresql.NewPunchOutRepository(db)

	// Infrastructure
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	prometheus.MustRegister(metrics.NewStreamGauge(hub.TotalSubscribers))
	mailer, err := email.NewEmailService(cfg.Mail)
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}

	// Services
	geofence := attendance.Geofence{
		Latitude:     cfg.Attendance.OfficeLatitude,
		Longitude:    cfg.Attendance.OfficeLongitude,
		RadiusMeters: cfg.Attendance.RadiusMeters,
	}
	attendanceSvc := attendanceService.NewAttendanceService(punchInRepo, punchOutRepo, userRepo, hub, geofence, cfg.Location())
	authSvc := serviceAuth.NewAuthService(userRepo, jwtService)

	// Scheduled jobs
	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, userRepo, hub, mailer, cfg.Attendance.DigestInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Handlers
	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		appHTTP.NewAuthHandler(authSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewEventsHandler(hub, jwtService),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with the process context instead of holding Shutdown open.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", server.Addr, "env", cfg.App.Env,
			"office_lat", geofence.Latitude, "office_lon", geofence.Longitude, "radius_m", geofence.RadiusMeters,
			"timezone", cfg.Attendance.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
