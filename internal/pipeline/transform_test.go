package pipeline_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/shipment-tracking-etl/internal/domain"
	"github.com/couchcryptid/shipment-tracking-etl/internal/pipeline"
)

// stubResolver maps known addresses to fixed coordinates and everything else
// to the default fallback, mimicking the real resolver's never-fail contract.
type stubResolver struct {
	known map[string]domain.ResolvedAddress
}

func (s *stubResolver) ResolveOne(_ context.Context, address string) domain.ResolvedAddress {
	if ra, ok := s.known[address]; ok {
		return ra
	}
	return domain.ResolvedAddress{
		Coordinate:  domain.FallbackCoordinate(domain.RegionDefault),
		DisplayText: address,
	}
}

func (s *stubResolver) ResolveMany(ctx context.Context, addresses []string) []domain.ResolvedAddress {
	results := make([]domain.ResolvedAddress, len(addresses))
	for i, a := range addresses {
		results[i] = s.ResolveOne(ctx, a)
	}
	return results
}

func TestUpdateTransformer_Transform(t *testing.T) {
	base := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(base))
	defer domain.SetClock(nil)

	resolver := &stubResolver{known: map[string]domain.ResolvedAddress{
		"Berlin, Germany": {Coordinate: domain.Coordinate{Lat: 52.52, Lon: 13.405}, DisplayText: "Berlin, Deutschland"},
		"Austin, TX":      {Coordinate: domain.Coordinate{Lat: 30.27, Lon: -97.74}, DisplayText: "Austin, Texas, USA"},
	}}
	transformer := pipeline.NewTransformer(resolver, discardLogger())

	payload, err := json.Marshal(domain.TrackingUpdate{
		ShipmentID:      "SHP-000123",
		Carrier:         "DHL",
		Status:          domain.StatusInTransit,
		Origin:          "Berlin, Germany",
		Destination:     "Austin, TX",
		CurrentLocation: "mid-atlantic freighter",
		Time:            "1510",
	})
	require.NoError(t, err)

	raw := domain.RawEvent{Key: []byte("SHP-000123"), Value: payload, Timestamp: base}

	event, err := transformer.Transform(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "SHP-000123", event.ShipmentID)
	assert.Equal(t, "Berlin, Deutschland", event.Origin.DisplayText)
	assert.Equal(t, "Austin, Texas, USA", event.Destination.DisplayText)
	assert.Equal(t, "mid-atlantic freighter", event.CurrentLocation.DisplayText,
		"unknown addresses still resolve via fallback")
	require.Len(t, event.Route, 3)
	assert.Equal(t, domain.Coordinate{Lat: 52.52, Lon: 13.405}, event.Route[0])
	assert.Equal(t, time.Date(2026, time.March, 14, 15, 10, 0, 0, time.UTC), event.EventTime)
}

func TestUpdateTransformer_Transform_BadPayload(t *testing.T) {
	transformer := pipeline.NewTransformer(&stubResolver{}, discardLogger())

	_, err := transformer.Transform(context.Background(), domain.RawEvent{Value: []byte("not json")})
	require.Error(t, err)
}
