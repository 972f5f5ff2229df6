package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/devakhil7/plyr-sub003/config"
	"github.com/devakhil7/plyr-sub003/db"
	"github.com/devakhil7/plyr-sub003/handlers"
	"github.com/devakhil7/plyr-sub003/live"
	"github.com/devakhil7/plyr-sub003/middleware"
	"github.com/devakhil7/plyr-sub003/repositories"
	api "github.com/devakhil7/plyr-sub003/routes"
	"github.com/devakhil7/plyr-sub003/services"
	"github.com/devakhil7/plyr-sub003/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(cfg.R2)
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("websocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	venueRepo := repositories.NewPostgresVenueRepository(dbConn)
	bookingRepo := repositories.NewPostgresBookingRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	scheduleRepo := repositories.NewPostgresScheduleRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	paymentRepo := repositories.NewPostgresPaymentRepository(dbConn)
	logger.Info("repositories initialized")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, uploader)
	venueService := services.NewVenueService(venueRepo, uploader)
	bookingService := services.NewBookingService(bookingRepo, venueRepo, hub, logger)
	tournamentService := services.NewTournamentService(dbConn, tournamentRepo, teamRepo, scheduleRepo, uploader, hub, logger, rng)
	matchService := services.NewMatchService(matchRepo, hub, logger)
	paymentService := services.NewPaymentService(dbConn, paymentRepo, bookingRepo, teamRepo, tournamentRepo, cfg.RazorpayKeySecret, logger)
	logger.Info("services initialized")

	// Pending bookings whose start time passes without a host decision are
	// swept to lapsed in the background. Reads are already clock-resolved;
	// the sweep just keeps the stored rows in line with what clients see.
	go func() {
		ticker := time.NewTicker(cfg.BookingSweepInterval)
		defer ticker.Stop()
		logger.Info("booking lapse sweep started", slog.Duration("interval", cfg.BookingSweepInterval))

		if _, err := bookingService.LapseOverdue(context.Background()); err != nil {
			logger.Error("booking lapse sweep: initial run failed", slog.Any("error", err))
		}
		for range ticker.C {
			if _, err := bookingService.LapseOverdue(context.Background()); err != nil {
				logger.Error("booking lapse sweep failed", slog.Any("error", err))
			}
		}
	}()

	auth := middleware.NewAuth(cfg.JWTSecretKey)

	authHandler := handlers.NewAuthHandler(authService, auth)
	userHandler := handlers.NewUserHandler(userService)
	venueHandler := handlers.NewVenueHandler(venueService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	matchHandler := handlers.NewMatchHandler(matchService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	webSocketHandler := handlers.NewWebSocketHandler(hub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		auth,
		authHandler,
		userHandler,
		venueHandler,
		bookingHandler,
		tournamentHandler,
		matchHandler,
		paymentHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
