package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-backend/config"
	_ "portfolio-backend/docs" // Important for Swagger
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/redis"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"

	"go.uber.org/zap"
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Owner-scoped portfolio content with passkey registration and public read endpoints.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	if err := logger.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	audit := security.InitSecurityLogger(logger.Log, "portfolio-backend", cfg.AppEnv)
	logger.Log.Info("Starting portfolio backend",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
	)

	// 3. Setup Redis (optional: rate limits and login lockout degrade without it)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", zap.Error(err))
		}
	}
	defer redis.Close()

	// 4. Setup Storage (Postgres connects lazily on first use)
	repos, err := repository.Open(cfg, logger.Log)
	if err != nil {
		logger.Log.Fatal("Failed to open storage", zap.Error(err))
	}
	defer repos.Close()

	// 5. Setup Email Service
	emailService := email.NewEmailService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
		ToEmail:   cfg.ContactEmailTo,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	// 6. Setup UseCases
	validate := validation.New()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	tracker := security.NewLoginTracker(redis.Client(), security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, audit)

	authUC := usecase.NewAuthUsecase(
		repos.Users,
		repos.Passkeys,
		repos.Transactor,
		security.NewArgon2(security.DefaultArgon2Params()),
		tokens,
		tracker,
		validate,
		audit,
	)

	var redisCheck usecase.HealthCheck
	if redis.Client() != nil {
		redisCheck = redis.HealthCheck
	}
	healthUC := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
		"storage": repos.Ping,
		"redis":   redisCheck,
	})

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		JobUC:       usecase.NewJobUsecase(repos.Jobs, validate, audit),
		EducationUC: usecase.NewEducationUsecase(repos.Educations, validate, audit),
		ProjectUC:   usecase.NewProjectUsecase(repos.Projects, validate, audit),
		ServiceUC:   usecase.NewServiceUsecase(repos.Services, validate, audit),
		ContactUC:   usecase.NewContactUsecase(emailService, validate),
		HealthUC:    healthUC,
		Tokens:      tokens,
		Redis:       redis.Client(),
		Audit:       audit,
		Logger:      logger.Log,
		Config:      cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
