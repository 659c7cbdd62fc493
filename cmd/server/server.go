package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"hr-assistant-api/internal/config"
	"hr-assistant-api/internal/infrastructure/logger"
	"hr-assistant-api/internal/infrastructure/metrics"
	"hr-assistant-api/internal/infrastructure/observability"
	"hr-assistant-api/internal/interfaces/httpserver"
)

type Application struct {
	config          *config.Config
	log             zerolog.Logger
	httpServer      *httpserver.HTTPServer
	dataInitializer *DataInitializer
}

// @title HR Assistant API
// @version 1.0
// @description Chat backend for an HR assistant: accounts, persisted dialogs and answers from an OpenAI-compatible completion API.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func (application *Application) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := application.dataInitializer.Install(ctx); err != nil {
		return err
	}

	metricsServer := &http.Server{
		Addr:              application.config.MetricsAddr(),
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		application.log.Info().Str("addr", metricsServer.Addr).Msg("metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), application.config.ShutdownTimeout)
		defer cancel()
		return metricsServer.Shutdown(shutdownCtx)
	})
	eg.Go(func() error {
		err := application.httpServer.Run(ctx)
		cancel()
		return err
	})

	return eg.Wait()
}

// loadEnvFiles reads .env files without overriding variables already set.
func loadEnvFiles(log zerolog.Logger) {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to load env file")
			continue
		}
		log.Debug().Str("path", path).Msg("loaded env file")
	}
}

func main() {
	bootLog := logger.GetLogger()
	loadEnvFiles(bootLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := CreateApplication()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("create application")
	}
	defer cleanup()

	log := application.log
	otelShutdown, err := observability.Setup(ctx, application.config, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	log.Info().
		Str("service", application.config.ServiceName).
		Str("environment", application.config.Environment).
		Msg("starting")

	if err := application.Start(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}
