package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Pankajnegi356/recruitment-portal/internal/app"
	"github.com/Pankajnegi356/recruitment-portal/internal/config"
	"github.com/Pankajnegi356/recruitment-portal/internal/database"
	apphttp "github.com/Pankajnegi356/recruitment-portal/internal/http"
	"github.com/Pankajnegi356/recruitment-portal/internal/http/handlers"
	"github.com/Pankajnegi356/recruitment-portal/internal/http/metrics"
	httpmw "github.com/Pankajnegi356/recruitment-portal/internal/http/middleware"
	"github.com/Pankajnegi356/recruitment-portal/internal/http/response"
	"github.com/Pankajnegi356/recruitment-portal/internal/integration/mailer"
	"github.com/Pankajnegi356/recruitment-portal/internal/observability"
	"github.com/Pankajnegi356/recruitment-portal/internal/repository/postgres"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	jobRepo := postgres.NewJobRepository(db)
	candidateRepo := postgres.NewCandidateRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	assessmentRepo := postgres.NewAssessmentRepository(db)
	activityRepo := postgres.NewActivityRepository(db)

	mailerClient := mailer.NewClient(cfg.MailerBaseURL, &http.Client{Timeout: cfg.MailerTimeout})

	jobService := app.NewJobService(jobRepo, activityRepo)
	candidateService := app.NewCandidateService(candidateRepo, jobRepo, assessmentRepo, activityRepo, cfg.FallbackStage)
	intakeService := app.NewIntakeService(jobRepo, candidateRepo, applicationRepo, activityRepo, mailerClient, logger, app.IntakeConfig{
		NotifyEmail:   cfg.NotifyEmail,
		AdminBaseURL:  cfg.AdminBaseURL,
		MailerTimeout: cfg.MailerTimeout,
	})

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		limiter = httpmw.NewRedisLimiter(redis.NewClient(opts))
	}

	applyHandler := handlers.NewApplyHandler(intakeService, limiter, cfg.ApplyRateLimit, cfg.ApplyRateWindow)
	jobHandler := handlers.NewJobHandler(jobService, candidateService, applicationRepo)
	candidateHandler := handlers.NewCandidateHandler(candidateService, activityRepo, applicationRepo)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		ApplyHandler:     applyHandler,
		JobHandler:       jobHandler,
		CandidateHandler: candidateHandler,
		MetricsHandler:   handlers.NewMetricsHandler(collector),
		Metrics:          collector,
		RequestTimeout:   cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
