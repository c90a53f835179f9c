// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"jokeapi/src/app/http/handler"
	"jokeapi/src/app/http/view"
	"jokeapi/src/app/middleware"
	"jokeapi/src/core/ports"
	"jokeapi/src/core/usecase"
	"jokeapi/src/infra/config"
	"jokeapi/src/infra/logger"
)

// Dependencies are the stores and adapters the server is built on.
type Dependencies struct {
	Jokes  ports.JokeRepository
	Keys   ports.KeyRepository
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	KeyGen ports.KeyGenerator
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server

	gate *usecase.AccessGate

	// Handlers
	healthHandler *handler.HealthHandler
	jokeHandler   *handler.JokeHandler
	apiKeyHandler *handler.APIKeyHandler
	userHandler   *handler.UserHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, deps Dependencies) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router without default middleware
	router := gin.New()
	router.SetHTMLTemplate(view.Templates())

	// Only listed proxies may speak for the client; the limiter keys on ClientIP
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Warn("ignoring trusted proxies", "error", err)
		_ = router.SetTrustedProxies(nil)
	}

	// Create services
	keyService := usecase.NewKeyService(deps.Keys, deps.KeyGen, logger.WithComponent(log, "keys"))
	jokeService := usecase.NewJokeService(deps.Jokes, logger.WithComponent(log, "jokes"))
	userService := usecase.NewUserService(deps.Users, deps.Hasher, keyService, logger.WithComponent(log, "users"))
	healthService := usecase.NewHealthService(logger.WithComponent(log, "health"), map[string]ports.ExternalService{
		"jokes": deps.Jokes,
		"keys":  deps.Keys,
		"users": deps.Users,
	})

	s := &Server{
		cfg:           cfg,
		log:           log,
		router:        router,
		gate:          usecase.NewAccessGate(keyService),
		healthHandler: handler.NewHealthHandler(healthService),
		jokeHandler:   handler.NewJokeHandler(jokeService),
		apiKeyHandler: handler.NewAPIKeyHandler(keyService),
		userHandler:   handler.NewUserHandler(userService),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.Logging(s.log, "/register", "/apikeys", handler.APIKeyViewPath))

	if s.cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(s.cfg.RateLimit.Requests, s.cfg.RateLimit.Window, s.log)
		s.router.Use(limiter.Middleware())
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check endpoints (no auth required)
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)

	// Key issuance and registration (no auth required)
	s.router.POST("/apikeys", s.apiKeyHandler.Issue)
	s.router.GET("/register", s.userHandler.RegisterPage)
	s.router.POST("/register", s.userHandler.Register)
	s.router.GET(handler.APIKeyViewPath, s.userHandler.APIKeyPage)

	jokes := s.router.Group("/jokes", middleware.APIKeyAuth(s.gate))
	{
		jokes.GET("", s.jokeHandler.List)
		jokes.GET("/random", s.jokeHandler.Random)
		jokes.GET("/genre/:genre", s.jokeHandler.ByGenre)
		jokes.GET("/:id", s.jokeHandler.Get)
		jokes.POST("/add", s.jokeHandler.Add)
		jokes.PUT("/edit/:id", s.jokeHandler.Edit)
		jokes.DELETE("/delete/:id", s.jokeHandler.Delete)
	}

	// Handle 404
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":       "NOT_FOUND",
				"message":    "The requested resource was not found",
				"request_id": middleware.GetRequestID(c),
			},
		})
	})
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until ctx is done or the server fails.
// Cancelling ctx triggers a graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutdown requested", "reason", context.Cause(ctx))
	case err := <-errCh:
		return err
	}

	return s.Shutdown()
}

// NotifyContext returns a context cancelled on SIGINT or SIGTERM.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// WaitForReady waits until the server is ready to accept connections.
// Useful for integration tests.
func (s *Server) WaitForReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", s.cfg.Server.Addr()))
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}
