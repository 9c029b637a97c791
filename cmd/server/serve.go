package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"

	"github.com/xtding233/bowling-backend/internal/config"
	"github.com/xtding233/bowling-backend/internal/httpserver"
	"github.com/xtding233/bowling-backend/internal/metrics"
)

const (
	reloadInterval  = 2 * time.Second
	shutdownTimeout = 10 * time.Second
)

func serve(c *cli.Context) error {
	loader, settings, err := loadSettings(c)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := httpserver.New(httpserver.Options{
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		Tracer:         otel.GetTracerProvider().Tracer("github.com/xtding233/bowling-backend"),
		Logger:         log.Logger,
		CORSOrigins:    settings.CORSOrigins,
		RequestTimeout: settings.RequestTimeout,
		RateRPS:        settings.RateRPS,
		RateBurst:      settings.RateBurst,
		MinConfidence:  settings.MinConfidence,
	})

	hs := &http.Server{
		Addr:              settings.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Log level, rate limits and the sheet confidence threshold follow the
	// files. Address, CORS and timeouts need a restart.
	watcher := config.NewWatcher(reloadInterval, loader.Paths().Files(settings.Env)...)
	go watcher.Run(ctx, func(changed []string) {
		loader.Invalidate()
		next, err := loader.Load(settings.Env, os.Getenv)
		if err != nil {
			log.Error().Err(err).Strs("files", changed).Msg("config reload failed, keeping previous settings")
			return
		}
		zerolog.SetGlobalLevel(next.LogLevel)
		srv.SetRateLimit(next.RateRPS, next.RateBurst)
		srv.SetMinConfidence(next.MinConfidence)
		log.Info().
			Strs("files", changed).
			Str("log_level", next.LogLevel.String()).
			Float64("rate_rps", next.RateRPS).
			Int("rate_burst", next.RateBurst).
			Msg("config reloaded")
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", settings.Addr).Str("env", settings.Env).Msg("listening")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}
