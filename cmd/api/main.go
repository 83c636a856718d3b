package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hrms-lite/internal/api/http"
	"github.com/spec-kit/hrms-lite/internal/api/http/handlers"
	"github.com/spec-kit/hrms-lite/internal/config"
	"github.com/spec-kit/hrms-lite/internal/events"
	"github.com/spec-kit/hrms-lite/internal/observability"
	"github.com/spec-kit/hrms-lite/internal/persistence"
	"github.com/spec-kit/hrms-lite/internal/repository"
	"github.com/spec-kit/hrms-lite/internal/service"
	"github.com/spec-kit/hrms-lite/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongo", zap.Error(err))
	}
	defer db.Close(context.Background())

	if cfg.Mongo.EnsureIndexes {
		if err := persistence.EnsureIndexes(ctx, db, logger); err != nil {
			logger.Warn("failed to ensure indexes", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	employeeRepo := repository.NewEmployeeRepository(db.Employees())
	attendanceRepo := repository.NewAttendanceRepository(db.Attendance())

	dispatcher := events.NewInMemoryDispatcher()
	summaryCache := persistence.NewSummaryCache(redis, cfg.Cache.SummaryTTL(), logger)

	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo:   employeeRepo,
		AttendanceRepo: attendanceRepo,
		Dispatcher:     dispatcher,
		Cache:          summaryCache,
	})
	attendanceService := service.NewAttendanceService(service.AttendanceDependencies{
		EmployeeRepo:   employeeRepo,
		AttendanceRepo: attendanceRepo,
		Dispatcher:     dispatcher,
		Cache:          summaryCache,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, db, redis),
		Employees:  handlers.NewEmployeesHandler(employeeService),
		Attendance: handlers.NewAttendanceHandler(attendanceService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
