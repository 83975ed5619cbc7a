package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/skarbek/treasury-server-go/internal/config"
	"github.com/skarbek/treasury-server-go/internal/database"
	"github.com/skarbek/treasury-server-go/internal/handler"
	"github.com/skarbek/treasury-server-go/internal/jobs"
	"github.com/skarbek/treasury-server-go/internal/mail"
	"github.com/skarbek/treasury-server-go/internal/middleware"
	"github.com/skarbek/treasury-server-go/internal/redis"
	"github.com/skarbek/treasury-server-go/internal/repository"
	"github.com/skarbek/treasury-server-go/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	parentRepo := repository.NewParentRepository(db.DB)
	campaignRepo := repository.NewCampaignRepository(db.DB)
	contribRepo := repository.NewContributionRepository(db.DB)
	adminSessionRepo := repository.NewAdminSessionRepository(db.DB)
	parentSessionRepo := repository.NewParentSessionRepository(db.DB)

	var mailer mail.Mailer = mail.NewLogMailer()
	if cfg.MailerConfigured() {
		mailer = mail.NewGmailMailer(mail.GmailConfig{
			ClientID:       cfg.GmailClientID,
			ClientSecret:   cfg.GmailClientSecret,
			RefreshToken:   cfg.GmailRefreshToken,
			SenderEmail:    cfg.GmailSenderEmail,
			ParentLoginURL: cfg.ParentLoginURL,
		})
		log.Info().Msg("gmail mailer configured")
	}

	authService := service.NewAuthService(
		parentRepo, adminSessionRepo, parentSessionRepo,
		service.AdminCredential{
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
		},
		cfg.TokenSecret,
	)
	ledgerService := service.NewLedgerService(contribRepo, campaignRepo, parentRepo)
	parentService := service.NewParentService(
		parentRepo, campaignRepo, parentSessionRepo, ledgerService, authService,
	)
	adminService := service.NewAdminService(
		parentRepo, campaignRepo, parentSessionRepo, ledgerService, mailer,
	)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	loginLimiter := middleware.NewLoginRateLimitMiddleware(
		service.NewRateLimiter(redisClient.Client),
	)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	adminHandler := handler.NewAdminHandler(
		adminService, ledgerService, authService, authMiddleware, loginLimiter.Handler,
	)
	parentHandler := handler.NewParentHandler(
		parentService, authService, authMiddleware, loginLimiter.Handler,
	)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)
	r.Use(securityHeadersMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Mount("/", adminHandler.Routes())
	})

	r.Route("/api/parents", func(r chi.Router) {
		r.Mount("/", parentHandler.Routes())
	})

	cleanupJob := jobs.NewCleanupJob(adminSessionRepo, parentSessionRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
