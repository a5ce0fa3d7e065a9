package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventlottery/config"
	_ "eventlottery/docs"
	"eventlottery/internal/adapters/auth"
	"eventlottery/internal/adapters/email"
	"eventlottery/internal/adapters/randdraw"
	httpdelivery "eventlottery/internal/delivery/http"
	"eventlottery/internal/delivery/http/controllers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/domain"
	"eventlottery/internal/repository/postgres"
	"eventlottery/internal/services"
)

// @title Event Lottery API
// @version 1.0
// @description Waitlist, lottery draw, invitation, and organizer rating API for capacity-limited events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to reach database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to postgres")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	loginCodeRepo := postgres.NewLoginCodeRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	listRepo := postgres.NewInvitationListRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Adapters
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipTLS,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	var sampler domain.Sampler
	if cfg.LotterySeed != 0 {
		logger.Warn("lottery sampler running with a fixed seed", "seed", cfg.LotterySeed)
		sampler = randdraw.New(cfg.LotterySeed)
	} else {
		sampler = randdraw.NewTimeSeeded()
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	userService := services.NewUserService(userRepo, loginCodeRepo, tokenIssuer, cfg.TokenExpiry, emailService)
	eventService := services.NewEventService(eventRepo, 5*time.Second)
	waitlistService := services.NewWaitlistService(eventRepo)
	invitationService := services.NewInvitationService(listRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	lotteryService := services.NewLotteryService(eventRepo, listRepo, userRepo, emailService, sampler, logger)
	ratingService := services.NewRatingService(userRepo, eventRepo, listRepo, notificationService, emailService, nil, logger)

	// Controllers
	authController := controllers.NewAuthController(logger, userService)
	eventController := controllers.NewEventController(logger, eventService, lotteryService, invitationService, ratingService)
	entrantController := controllers.NewEntrantController(logger, waitlistService, invitationService)
	ratingController := controllers.NewRatingController(logger, ratingService)
	notificationController := controllers.NewNotificationController(logger, notificationService)

	mux := httpdelivery.NewRouter(
		tokenVerifier,
		authController,
		eventController,
		entrantController,
		ratingController,
		notificationController,
	)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
