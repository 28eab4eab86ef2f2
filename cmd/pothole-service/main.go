package main

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"pothole-service/internal/certificate"
	"pothole-service/internal/config"
	"pothole-service/internal/export"
	"pothole-service/internal/http"
	"pothole-service/internal/logger"
	"pothole-service/internal/service"
	"pothole-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Environment)
	log.Info().Str("environment", cfg.Environment).Msg("starting pothole service")

	renderer, err := certificate.NewRenderer(cfg.Certificate, cfg.Share.SiteURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("certificate renderer unavailable")
	}

	var uploader export.Uploader
	r2, err := storage.NewR2ClientFromEnv()
	switch {
	case err == nil:
		uploader = r2
		log.Info().Msg("R2 storage configured, certificates will be published")
	case errors.Is(err, storage.ErrNotConfigured):
		log.Warn().Msg("R2 storage not configured, share links will omit hosted certificates")
	default:
		log.Warn().Err(err).Msg("R2 storage unavailable, share links will omit hosted certificates")
	}

	exporter := export.NewAdapter(cfg.Share.SiteURL, cfg.Share.MinistryHandle, uploader, log)
	reports := service.NewReportService(renderer, exporter, cfg.Geo, log)

	handler := http.NewHandler(reports, cfg, log)
	router := http.NewRouter(handler, cfg, log)

	srv := &stdhttp.Server{
		Addr:         net.JoinHostPort(cfg.HTTP.Host, strconv.Itoa(cfg.HTTP.Port)),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
