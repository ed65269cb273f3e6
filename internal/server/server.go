// Package server defines the Server container that composes the app's main
// dependencies and runs the HTTP server.
//
// It owns the lifecycle of:
//   - configuration
//   - logger and the optional New Relic service
//   - database pool
//   - redis client and the view cache on top of it
//   - the login session store
//   - background job service (asynq)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/go-invoicing/internal/config"
	"github.com/deppfellow/go-invoicing/internal/database"
	"github.com/deppfellow/go-invoicing/internal/lib/cache"
	"github.com/deppfellow/go-invoicing/internal/lib/job"
	"github.com/gorilla/sessions"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/go-invoicing/internal/logger"
)

// RedisPingTimeout bounds the start-up Redis check.
const RedisPingTimeout = 5 * time.Second

// Server is the application container. It is not the HTTP server itself;
// that lives in httpServer and is configured by SetupHTTPServer.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	DB    *database.Database
	Redis *redis.Client

	// Cache holds rendered views; mutations revalidate it.
	Cache *cache.ViewCache

	// Sessions stores the signed login cookie.
	Sessions *sessions.CookieStore

	// Job runs background workers and enqueues tasks. Nil when
	// notifications are not configured.
	Job *job.JobService

	httpServer *http.Server
}

// New initializes the core dependencies and starts the job workers.
//
// Redis is optional at start-up: a failed ping is logged and the view cache
// degrades to always missing.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to Redis, continuing without it")
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Cache:         cache.NewViewCache(redisClient, cfg.Cache),
		Sessions:      NewSessionStore(cfg.Auth, cfg.Primary.Env),
	}

	if cfg.Integration.NotificationsEnabled() {
		jobService := job.NewJobService(logger, cfg)
		if err := jobService.Start(); err != nil {
			return nil, fmt.Errorf("failed to start job server: %w", err)
		}
		server.Job = jobService
	}

	return server, nil
}

// NewSessionStore builds the cookie store for login sessions.
func NewSessionStore(cfg config.AuthConfig, env string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.SecureCookie || env == "production"
	store.Options.SameSite = http.SameSiteLaxMode
	if cfg.SessionMaxAge > 0 {
		store.Options.MaxAge = cfg.SessionMaxAge
	}
	return store
}

// SetupHTTPServer configures the net/http server around handler.
// Config timeouts are whole seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until the server is shut down.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then closes the job workers, Redis and the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.Redis.Close(); err != nil {
		s.Logger.Warn().Err(err).Msg("failed to close Redis client")
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
