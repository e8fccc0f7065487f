package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/waste3d/coursehub/config"
	"github.com/waste3d/coursehub/internal/application/usecase"
	"github.com/waste3d/coursehub/internal/infrastructure/cache"
	"github.com/waste3d/coursehub/internal/infrastructure/repository"
	"github.com/waste3d/coursehub/internal/infrastructure/security"
	"github.com/waste3d/coursehub/internal/logger"
	"github.com/waste3d/coursehub/internal/middleware"
	handlers "github.com/waste3d/coursehub/internal/transport/http"
)

func main() {
	// 1. Конфиг и логгер
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer log.Sync()

	// 2. Postgres
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to DB", "error", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("failed to migrate DB", "error", err)
	}

	// 3. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
	}
	log.Info("connected to Redis", "addr", cfg.RedisAddr)

	// 4. Репозитории и юзкейсы
	courseRepo := repository.NewCourseRepository(db, cache.NewCourseCache(rdb), log)
	studentRepo := repository.NewStudentRepository(db)
	userRepo := repository.NewUserRepository(db)

	authUseCase := usecase.NewAuthUseCase(
		userRepo,
		cache.NewTokenCache(rdb),
		security.NewPasswordHasher(),
		security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret),
		log,
	)
	enrollmentUseCase := usecase.NewEnrollmentUseCase(studentRepo, courseRepo, log)
	progressUseCase := usecase.NewProgressUseCase(courseRepo, studentRepo)

	// 5. Хендлеры и роутер
	secureCookie := cfg.LogMode == "prod"
	router := handlers.NewRouter(handlers.Handlers{
		Auth:       handlers.NewAuthHandler(authUseCase, secureCookie),
		Course:     handlers.NewCourseHandler(courseRepo, studentRepo, authUseCase),
		Lesson:     handlers.NewLessonHandler(courseRepo, progressUseCase, authUseCase),
		Enrollment: handlers.NewEnrollmentHandler(enrollmentUseCase),
	}, handlers.RouterDeps{
		Validator:      authUseCase,
		Limiter:        middleware.NewRateLimiter(rdb),
		Log:            log,
		AllowedOrigins: cfg.Origins(),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("coursehub is running", "addr", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to serve", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	if err := rdb.Close(); err != nil {
		log.Warn("redis close", "error", err)
	}
}
