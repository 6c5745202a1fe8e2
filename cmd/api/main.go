package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-lost-found/internal/bootstrap"
	"pet-lost-found/internal/domain/matching"
	"pet-lost-found/internal/platform/config"
	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/platform/metrics"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Build(ctx, cfg, log, metrics.New())
	if err != nil {
		log.Error("startup failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer rt.Close(log)

	if cfg.Matching.ScanInterval > 0 {
		go runPeriodicScan(ctx, rt.App.Scanner, cfg.Matching.ScanInterval, log)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rt.App.Handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}

// runPeriodicScan re-escanea lost reports activos cada intervalo hasta que ctx termina.
func runPeriodicScan(ctx context.Context, scanner *matching.Scanner, every time.Duration, log logger.Logger) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := scanner.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error("periodic scan failed", map[string]any{"error": err})
			}
		}
	}
}
