package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/shipment-tracking-etl/internal/domain"
)

// maxResolveBatch caps a single resolve request so one call cannot fan out
// into an unbounded number of geocoding lookups.
const maxResolveBatch = 100

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ChatWidgetConfig is handed verbatim to the front-end chat loader, which
// injects the provider's script with these identifiers.
type ChatWidgetConfig struct {
	Enabled    bool   `json:"enabled"`
	Provider   string `json:"provider,omitempty"`
	PropertyID string `json:"property_id,omitempty"`
	WidgetID   string `json:"widget_id,omitempty"`
}

// Server exposes the API consumed by the map front-end plus health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(addr string, ready ReadinessChecker, resolver domain.AddressResolver, chat ChatWidgetConfig, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/v1/resolve", handleResolve(resolver))
	mux.HandleFunc("GET /api/v1/chat-widget", handleChatWidget(chat))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

type resolveRequest struct {
	Addresses []string `json:"addresses"`
}

type resolvedAddress struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayText string  `json:"display_text"`
}

type resolveResponse struct {
	Results []resolvedAddress `json:"results"`
}

// handleResolve resolves a batch of addresses, preserving input order.
// Resolution never fails per address, so the only error responses are for
// malformed requests.
func handleResolve(resolver domain.AddressResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resolveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if len(req.Addresses) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "addresses is required"})
			return
		}
		if len(req.Addresses) > maxResolveBatch {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("too many addresses: max %d per request", maxResolveBatch),
			})
			return
		}

		resolved := resolver.ResolveMany(r.Context(), req.Addresses)

		results := make([]resolvedAddress, len(resolved))
		for i, ra := range resolved {
			results[i] = resolvedAddress{
				Latitude:    ra.Coordinate.Lat,
				Longitude:   ra.Coordinate.Lon,
				DisplayText: ra.DisplayText,
			}
		}
		writeJSON(w, http.StatusOK, resolveResponse{Results: results})
	}
}

func handleChatWidget(chat ChatWidgetConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, chat)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
