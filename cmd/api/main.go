package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendly/ems-backend-go/internal/config"
	appHTTP "github.com/attendly/ems-backend-go/internal/handler/http"
	"github.com/attendly/ems-backend-go/internal/pkg/cron"
	"github.com/attendly/ems-backend-go/internal/pkg/database"
	"github.com/attendly/ems-backend-go/internal/pkg/email"
	"github.com/attendly/ems-backend-go/internal/pkg/jwt"
	"github.com/attendly/ems-backend-go/internal/pkg/mailqueue"
	"github.com/attendly/ems-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly/ems-backend-go/internal/service/attendance"
	serviceAuth "github.com/attendly/ems-backend-go/internal/service/auth"
	employeeService "github.com/attendly/ems-backend-go/internal/service/employee"
	notificationService "github.com/attendly/ems-backend-go/internal/service/notification"
	reportService "github.com/attendly/ems-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.JWT.ResetExpiration)

	renderer, err := email.NewTemplateRenderer(cfg.App.FrontendURL)
	if err != nil {
		fmt.Println("Error loading email templates:", err)
		os.Exit(1)
	}
	mailer := email.NewMailer(cfg.SMTP)
	queue := mailqueue.New(mailer, mailqueue.Config{
		Workers: cfg.Queue.Workers,
		Buffer:  cfg.Queue.Buffer,
	}, slog.Default())

	notifier := notificationService.NewNotificationService(renderer, queue)
	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, notifier)
	empService := employeeService.NewEmployeeService(userRepo, attendanceRepo, notifier)
	attService := attendanceService.NewAttendanceService(attendanceRepo, userRepo, notifier)
	repService := reportService.NewReportService(reportRepo, userRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo).RegisterJobs(scheduler)
	scheduler.Start()

	authHandler := appHTTP.NewAuthHandler(JWTService, authService)
	employeeHandler := appHTTP.NewEmployeeHandler(empService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attService)
	reportHandler := appHTTP.NewReportHandler(repService)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		reportHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	case sig := <-stop:
		slog.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	scheduler.Stop()
	// Let queued notifications drain before the process exits.
	if err := queue.Shutdown(shutdownCtx); err != nil {
		slog.Error("notification queue shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
