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

	"github.com/shiftpulse/shiftpulse-backend-go/internal/config"
	appHTTP "github.com/shiftpulse/shiftpulse-backend-go/internal/handler/http"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/cron"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/database"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/jwt"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/sse"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftpulse/shiftpulse-backend-go/internal/service/attendance"
	notificationService "github.com/shiftpulse/shiftpulse-backend-go/internal/service/notification"
	performanceService "github.com/shiftpulse/shiftpulse-backend-go/internal/service/performance"
	shiftService "github.com/shiftpulse/shiftpulse-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "shiftpulse"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	shiftRepo := postgresql.NewShiftRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	notifService := notificationService.NewNotificationService(notificationRepo, hub, logger, notificationService.Config{})

	performanceSvc := performanceService.NewPerformanceService(db, attendanceRepo, shiftRepo, assignmentRepo, summaryRepo, notifService)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, shiftRepo, assignmentRepo, performanceSvc, notifService)
	shiftSvc := shiftService.NewShiftService(db, shiftRepo, assignmentRepo, attendanceRepo, performanceSvc)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	performanceHandler := appHTTP.NewPerformanceHandler(performanceSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifService)

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		shiftHandler,
		performanceHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler()
	if cfg.Cron.Enabled {
		interval, err := time.ParseDuration(cfg.Cron.SummaryRefreshInterval)
		if err != nil {
			fmt.Println("Invalid CRON_SUMMARY_REFRESH_INTERVAL:", err)
			return
		}
		refreshJob := performanceService.NewSummaryRefreshJob(attendanceRepo, performanceSvc, logger)
		scheduler.AddJob("monthly-summary-refresh", interval, refreshJob.Run)
		scheduler.Start()
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server started", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	scheduler.Stop()
	notifService.Stop()
}
