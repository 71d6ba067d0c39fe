package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawnder-backend/internal/config"
	"pawnder-backend/internal/events"
	"pawnder-backend/internal/handlers"
	"pawnder-backend/internal/metrics"
	"pawnder-backend/internal/notify"
	"pawnder-backend/internal/repository"
	"pawnder-backend/internal/security"
	"pawnder-backend/internal/services"
	"pawnder-backend/internal/storage"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultConfigPath = "config.yaml"

func Run() {
	// Load configuration
	configPath := os.Getenv("PAWNDER_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Open key/value store
	store, err := storage.Open(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to open storage")
	}
	defer store.Close()
	log.Info().Str("driver", cfg.Storage.Driver).Msg("Storage opened")

	publisher := events.NewPublisher(cfg.Events)
	defer publisher.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(store)
	sessionRepo := repository.NewSessionRepository(store)
	dogRepo := repository.NewDogRepository(store)
	feedRepo := repository.NewFeedRepository(store)
	likeRepo := repository.NewLikeRepository(store)
	matchRepo := repository.NewMatchRepository(store)
	messageRepo := repository.NewMessageRepository(store)

	// Initialize services
	wsHub := services.NewWSHub()
	feedService := services.NewFeedService(feedRepo, dogRepo, cfg.Feed.Size, nil)
	authService := services.NewAuthService(
		userRepo,
		sessionRepo,
		feedService,
		security.NewArgon2Hasher(nil),
		cfg.JWT.Secret,
		cfg.JWT.TTL,
	)
	dogService := services.NewDogService(dogRepo)
	matchService := services.NewMatchService(
		likeRepo,
		matchRepo,
		dogRepo,
		userRepo,
		dogService,
		feedService,
		wsHub,
		publisher,
		newPushNotifier(cfg.APNs),
	)
	messageService := services.NewMessageService(messageRepo, matchService, publisher)
	mediaService, err := services.NewMediaService(context.Background(), cfg.AWS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create media service")
	}
	if !mediaService.Enabled() {
		log.Warn().Msg("No S3 bucket configured, photo uploads disabled")
	}

	// Initialize handlers
	h := handlers.Set{
		Auth:      handlers.NewAuthHandler(authService),
		Dogs:      handlers.NewDogHandler(dogService),
		Photos:    handlers.NewPhotoHandler(mediaService),
		Feed:      handlers.NewFeedHandler(feedService),
		Matches:   handlers.NewMatchHandler(matchService, messageService),
		WebSocket: handlers.NewWebSocketHandler(wsHub, authService),
	}

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)
	r.Use(metrics.HTTPMiddleware)

	// Routes
	handlers.Mount(r, h, authService)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newPushNotifier returns an APNs client, or nil when APNs is not configured
func newPushNotifier(cfg config.APNsConfig) services.PushNotifier {
	if cfg.KeyPath == "" {
		return nil
	}

	client, err := notify.NewAPNs(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("APNs disabled")
		return nil
	}

	log.Info().Bool("production", cfg.Production).Msg("APNs enabled")
	return client
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

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

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
