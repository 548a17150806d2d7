package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/campusdesk/student-api/config"
	"github.com/campusdesk/student-api/internal/handler"
	"github.com/campusdesk/student-api/internal/repository"
	"github.com/campusdesk/student-api/internal/router"
	"github.com/campusdesk/student-api/internal/service"
	"github.com/campusdesk/student-api/pkg/database"
	"github.com/campusdesk/student-api/pkg/logger"
	"github.com/campusdesk/student-api/pkg/notify"
	"github.com/campusdesk/student-api/pkg/sessionstore"
)

func main() {
	reset := flag.Bool("reset", false, "drop and recreate all tables before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(cfg); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("Starting student record API",
		zap.String("environment", cfg.App.Environment),
		zap.String("port", cfg.App.Port),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if *reset {
		log.Warn("Resetting database schema")
		if err := database.Reset(db); err != nil {
			log.Fatal("Failed to reset database", zap.Error(err))
		}
	} else if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := database.Seed(db, cfg.Seed); err != nil {
		log.Fatal("Failed to seed database", zap.Error(err))
	}

	var store sessionstore.Store
	if cfg.Redis.Enabled {
		redisStore, err := sessionstore.NewRedisStore(cfg, log)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory sessions", zap.Error(err))
			store = sessionstore.NewMemoryStore()
		} else {
			store = redisStore
			defer redisStore.Close()
		}
	} else {
		store = sessionstore.NewMemoryStore()
	}

	// Repositories
	adminRepo := repository.NewAdminRepository(db)
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	emailTokenRepo := repository.NewEmailTokenRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	markRepo := repository.NewMarkRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	notifier := notify.NewNotifier(cfg.App.Name, log)
	activityService := service.NewActivityService(activityRepo)
	sessionService := service.NewSessionService(store, sessionRepo, cfg.Session.TTL)
	authService := service.NewAuthService(adminRepo, userRepo, otpRepo, emailTokenRepo, sessionService, activityService, notifier)
	studentService := service.NewStudentService(studentRepo, activityService)
	markService := service.NewMarkService(markRepo, studentRepo, activityService)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, activityService)
	dashboardService := service.NewDashboardService(studentRepo, userRepo, markRepo, attendanceRepo, activityRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, sessionService, cfg.Session.CookieName, cfg.Session.TTL, cfg.Session.Secure)
	studentHandler := handler.NewStudentHandler(studentService)
	markHandler := handler.NewMarkHandler(markService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	adminHandler := handler.NewAdminHandler(userRepo, studentRepo, markRepo, attendanceRepo, activityService)
	healthHandler := handler.NewHealthHandler(db, cfg.App.Name)

	engine := router.NewRouter(
		authHandler,
		studentHandler,
		markHandler,
		attendanceHandler,
		dashboardHandler,
		adminHandler,
		healthHandler,
		sessionService,
		cfg,
	).SetupRoutes()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.App.Timeout,
		WriteTimeout: cfg.App.Timeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
