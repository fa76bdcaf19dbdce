package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/shipment-tracking-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/shipment-tracking-etl/internal/adapter/kafka"
	"github.com/couchcryptid/shipment-tracking-etl/internal/adapter/nominatim"
	"github.com/couchcryptid/shipment-tracking-etl/internal/adapter/sendgrid"
	"github.com/couchcryptid/shipment-tracking-etl/internal/config"
	"github.com/couchcryptid/shipment-tracking-etl/internal/observability"
	"github.com/couchcryptid/shipment-tracking-etl/internal/pipeline"
	"github.com/couchcryptid/shipment-tracking-etl/internal/resolver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	geocoder := nominatim.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent, cfg.GeocoderTimeout, logger, metrics)
	res := resolver.New(geocoder, logger, metrics)
	logger.Info("geocoder configured", "base_url", cfg.GeocoderBaseURL, "timeout", cfg.GeocoderTimeout)

	// Notifications are feature-flagged via NOTIFY_ENABLED / SENDGRID_API_KEY.
	var notifier pipeline.Notifier
	if cfg.NotifyEnabled {
		notifier = sendgrid.NewMailer(cfg.SendgridAPIKey, cfg.NotifyFromName, cfg.NotifyFromEmail, logger, metrics)
		logger.Info("email notifications enabled", "from", cfg.NotifyFromEmail)
	} else {
		logger.Info("email notifications disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(res, logger)

	p := pipeline.New(reader, transformer, writer, notifier, logger, metrics, cfg.BatchSize)

	chat := httpadapter.ChatWidgetConfig{
		Enabled:    cfg.ChatWidgetEnabled,
		Provider:   cfg.ChatProvider,
		PropertyID: cfg.ChatPropertyID,
		WidgetID:   cfg.ChatWidgetID,
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, res, chat, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start enrichment pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
