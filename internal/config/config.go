package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Geocoding provider configuration.
	GeocoderBaseURL   string
	GeocoderTimeout   time.Duration
	GeocoderUserAgent string

	// SendGrid notification configuration.
	SendgridAPIKey  string
	NotifyEnabled   bool
	NotifyFromName  string
	NotifyFromEmail string

	// Chat widget configuration, handed to the front-end loader verbatim.
	ChatWidgetEnabled bool
	ChatProvider      string
	ChatPropertyID    string
	ChatWidgetID      string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	geocoderTimeout, err := parseDurationEnv("GEOCODER_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	flushInterval, err := parseDurationEnv("BATCH_FLUSH_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	batchSize, err := parsePositiveIntEnv("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}

	sendgridKey := os.Getenv("SENDGRID_API_KEY")
	notifyEnabled := sendgridKey != ""
	if v := os.Getenv("NOTIFY_ENABLED"); v != "" {
		notifyEnabled = v == "true"
	}

	chatPropertyID := os.Getenv("CHAT_PROPERTY_ID")
	chatEnabled := chatPropertyID != ""
	if v := os.Getenv("CHAT_WIDGET_ENABLED"); v != "" {
		chatEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "raw-tracking-updates"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "enriched-tracking-events"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "shipment-tracking-etl"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		GeocoderBaseURL:   envOrDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderTimeout:   geocoderTimeout,
		GeocoderUserAgent: envOrDefault("GEOCODER_USER_AGENT", "shipment-tracking-etl/1.0"),

		SendgridAPIKey:  sendgridKey,
		NotifyEnabled:   notifyEnabled,
		NotifyFromName:  envOrDefault("NOTIFY_FROM_NAME", "Shipment Tracking"),
		NotifyFromEmail: envOrDefault("NOTIFY_FROM_EMAIL", "tracking@couchcryptid.dev"),

		ChatWidgetEnabled: chatEnabled,
		ChatProvider:      envOrDefault("CHAT_PROVIDER", "tawk"),
		ChatPropertyID:    chatPropertyID,
		ChatWidgetID:      os.Getenv("CHAT_WIDGET_ID"),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.GeocoderBaseURL == "" {
		return nil, errors.New("GEOCODER_BASE_URL is required")
	}
	if cfg.NotifyEnabled && cfg.SendgridAPIKey == "" {
		return nil, errors.New("NOTIFY_ENABLED is true but SENDGRID_API_KEY is not set")
	}
	if cfg.ChatWidgetEnabled && cfg.ChatPropertyID == "" {
		return nil, errors.New("CHAT_WIDGET_ENABLED is true but CHAT_PROPERTY_ID is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveIntEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
