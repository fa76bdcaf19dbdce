//go:build nominatim

package nominatim

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/shipment-tracking-etl/internal/observability"
)

// These tests hit the public Nominatim instance and are subject to its usage
// policy (max 1 req/s). Run with: go test -tags=nominatim ./internal/adapter/nominatim/ -v -count=1

func smokeClient() *Client {
	return &Client{
		baseURL:    "https://nominatim.openstreetmap.org",
		userAgent:  "shipment-tracking-etl/1.0 (smoke test)",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_Geocode(t *testing.T) {
	c := smokeClient()

	candidates, err := c.Geocode(context.Background(), "Austin, Texas")
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	lat, err := strconv.ParseFloat(candidates[0].Lat, 64)
	require.NoError(t, err)
	lon, err := strconv.ParseFloat(candidates[0].Lon, 64)
	require.NoError(t, err)

	assert.InDelta(t, 30.27, lat, 0.2, "lat should be near Austin")
	assert.InDelta(t, -97.74, lon, 0.2, "lon should be near Austin")
	assert.Contains(t, candidates[0].DisplayName, "Austin")
}
