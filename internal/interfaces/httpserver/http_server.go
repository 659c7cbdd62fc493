package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hr-assistant-api/internal/config"
	"hr-assistant-api/internal/domain/user"
	"hr-assistant-api/internal/infrastructure/database"
	"hr-assistant-api/internal/infrastructure/observability"
	middleware "hr-assistant-api/internal/interfaces/httpserver/middlewares"
	"hr-assistant-api/internal/interfaces/httpserver/routes/auth"
	"hr-assistant-api/internal/interfaces/httpserver/routes/dialog"
	"hr-assistant-api/internal/interfaces/httpserver/routes/prompt"

	_ "hr-assistant-api/docs/swagger"
)

// ReadinessChecker reports whether a dependency can serve traffic.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

type HTTPServer struct {
	engine *gin.Engine
	config *config.Config
	log    zerolog.Logger
	ready  ReadinessChecker
}

func NewHttpServer(
	cfg *config.Config,
	log zerolog.Logger,
	db *database.Database,
	userService *user.Service,
	authRoute *auth.AuthRoute,
	dialogRoute *dialog.DialogRoute,
	promptRoute *prompt.PromptRoute,
) *HTTPServer {
	return newHTTPServer(cfg, log, db, userService, authRoute, dialogRoute, promptRoute)
}

func newHTTPServer(
	cfg *config.Config,
	log zerolog.Logger,
	ready ReadinessChecker,
	authenticator middleware.Authenticator,
	authRoute *auth.AuthRoute,
	dialogRoute *dialog.DialogRoute,
	promptRoute *prompt.PromptRoute,
) *HTTPServer {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := &HTTPServer{
		engine: gin.New(),
		config: cfg,
		log:    log,
		ready:  ready,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(log, observability.NewSanitizerFromConfig(cfg)))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	server.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "Hello"})
	})
	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	server.engine.GET("/readyz", server.readyz)
	if cfg.EnableSwagger {
		server.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	public := server.engine.Group("/")
	protected := server.engine.Group("/")
	protected.Use(middleware.AuthMiddleware(authenticator))

	authRoute.RegisterRouter(public, protected)
	dialogRoute.RegisterRouter(protected)
	promptRoute.RegisterRouter(protected)

	return server
}

func (s *HTTPServer) readyz(c *gin.Context) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.ready.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.log.Info().Msg("shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
