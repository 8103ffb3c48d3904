package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"comments-api/config"
	"comments-api/controllers"
	"comments-api/database"
	"comments-api/jobs"
	"comments-api/logger"
	"comments-api/middleware"
	"comments-api/repositories"
	"comments-api/routes"
	"comments-api/services"
)

// app holds the wired router and the resources that must be released on exit.
type app struct {
	router  *gin.Engine
	closers []func()
}

// newApp builds repositories, controllers and the router for cfg.Storage.
// The returned app owns the limiter cleanup job and, for mongo, the client.
func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{}

	var (
		comments repositories.CommentRepository
		users    repositories.UserRepository
		ping     func(ctx context.Context) error
	)

	switch cfg.Storage {
	case "memory":
		log.Warn().Msg("Using in-memory storage, data is lost on restart")
		comments = repositories.NewMemoryCommentRepository()
		users = repositories.NewMemoryUserRepository()
	default:
		client, err := database.Initialize(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect from database")
			}
		})

		db := client.Database(cfg.Mongo.Database)
		if err := database.Migrate(ctx, db); err != nil {
			a.Close()
			return nil, fmt.Errorf("create indexes: %w", err)
		}

		comments = repositories.NewMongoCommentRepository(db)
		users = repositories.NewMongoUserRepository(db)
		ping = database.Pinger(client)
		log.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")
	}

	authService := services.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	cleanupJob := jobs.NewLimiterCleanupJob(limiter, 10*time.Minute, log)
	cleanupJob.Start()
	a.closers = append(a.closers, cleanupJob.Stop)

	a.router = routes.SetupRouter(cfg, routes.Dependencies{
		Comments: controllers.NewCommentController(comments, log),
		Auth:     controllers.NewAuthController(users, authService, log),
		Health:   controllers.NewHealthController(ping, log),
		Tokens:   authService,
		Limiter:  limiter,
	}, log)

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.Log.Level, cfg.IsDevelopment())

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      a.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting comments API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Dur("timeout", cfg.Server.ShutdownTimeout).Msg("Server shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
