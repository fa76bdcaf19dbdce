package resolver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/shipment-tracking-etl/internal/domain"
	"github.com/couchcryptid/shipment-tracking-etl/internal/observability"
)

// --- mocks ---

type stubGeocoder struct {
	calls      int
	candidates []domain.Candidate
	err        error
	panicOn    string // query that triggers a panic, simulating a programming error
}

func (g *stubGeocoder) Geocode(_ context.Context, query string) ([]domain.Candidate, error) {
	g.calls++
	if g.panicOn != "" && query == g.panicOn {
		panic("boom: " + query)
	}
	if g.err != nil {
		return nil, g.err
	}
	return g.candidates, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newResolver(g domain.Geocoder) *Resolver {
	return New(g, discardLogger(), observability.NewMetricsForTesting())
}

// --- ResolveOne ---

func TestResolveOne_Authoritative(t *testing.T) {
	g := &stubGeocoder{candidates: []domain.Candidate{
		{Lat: "39.77", Lon: "-89.65", DisplayName: "Springfield, IL, USA"},
	}}
	r := newResolver(g)

	resolved := r.ResolveOne(context.Background(), "123 Main St, Springfield")

	assert.Equal(t, 39.77, resolved.Coordinate.Lat)
	assert.Equal(t, -89.65, resolved.Coordinate.Lon)
	assert.Equal(t, "Springfield, IL, USA", resolved.DisplayText)
}

func TestResolveOne_MissingDisplayNameFallsBackToQuery(t *testing.T) {
	g := &stubGeocoder{candidates: []domain.Candidate{
		{Lat: "48.8566", Lon: "2.3522"},
	}}
	r := newResolver(g)

	resolved := r.ResolveOne(context.Background(), "  Paris  ")

	assert.Equal(t, "Paris", resolved.DisplayText, "display falls back to the trimmed query")
}

func TestResolveOne_CacheHit(t *testing.T) {
	g := &stubGeocoder{candidates: []domain.Candidate{
		{Lat: "30.2672", Lon: "-97.7431", DisplayName: "Austin, Texas"},
	}}
	r := newResolver(g)

	first := r.ResolveOne(context.Background(), "Austin, TX")
	second := r.ResolveOne(context.Background(), "Austin, TX")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, g.calls, "second call must not hit the provider")
}

func TestResolveOne_CacheKeyIsRawInput(t *testing.T) {
	g := &stubGeocoder{candidates: []domain.Candidate{
		{Lat: "30.2672", Lon: "-97.7431", DisplayName: "Austin, Texas"},
	}}
	r := newResolver(g)

	r.ResolveOne(context.Background(), "Austin, TX")
	r.ResolveOne(context.Background(), " Austin, TX ")

	// Same address modulo whitespace, but the cache key is the raw input.
	assert.Equal(t, 2, g.calls)
}

func TestResolveOne_EmptyInput(t *testing.T) {
	g := &stubGeocoder{}
	r := newResolver(g)

	for _, input := range []string{"", "   "} {
		resolved := r.ResolveOne(context.Background(), input)

		assert.Equal(t, domain.FallbackCoordinate(domain.RegionDefault), resolved.Coordinate)
		assert.Equal(t, "Unknown Location", resolved.DisplayText)
	}
	assert.Zero(t, g.calls, "empty input must not reach the provider")
}

func TestResolveOne_ProviderErrorUsesRegionalFallback(t *testing.T) {
	g := &stubGeocoder{err: errors.New("status 500")}
	r := newResolver(g)

	resolved := r.ResolveOne(context.Background(), "some address in Germany")

	assert.Equal(t, domain.Coordinate{Lat: 54.526, Lon: 15.2551}, resolved.Coordinate)
	assert.Equal(t, "some address in Germany", resolved.DisplayText)
}

func TestResolveOne_NoCandidatesUsesFallback(t *testing.T) {
	g := &stubGeocoder{candidates: nil}
	r := newResolver(g)

	resolved := r.ResolveOne(context.Background(), "warehouse 9, Osaka, Japan")

	assert.Equal(t, domain.FallbackCoordinate(domain.RegionAsia), resolved.Coordinate)
	assert.Equal(t, "warehouse 9, Osaka, Japan", resolved.DisplayText)
}

func TestResolveOne_OutOfRangeCoordinateUsesFallback(t *testing.T) {
	g := &stubGeocoder{candidates: []domain.Candidate{
		{Lat: "200", Lon: "-89.65", DisplayName: "Nowhere"},
	}}
	r := newResolver(g)

	resolved := r.ResolveOne(context.Background(), "xyz")

	assert.Equal(t, domain.FallbackCoordinate(domain.RegionDefault), resolved.Coordinate)
	assert.Equal(t, "xyz", resolved.DisplayText)
}

func TestResolveOne_UnparsableCoordinateUsesFallback(t *testing.T) {
	g := &stubGeocoder{candidates: []domain.Candidate{
		{Lat: "not-a-number", Lon: "2.35", DisplayName: "Paris"},
	}}
	r := newResolver(g)

	resolved := r.ResolveOne(context.Background(), "xyz")

	assert.Equal(t, domain.FallbackCoordinate(domain.RegionDefault), resolved.Coordinate)
}

func TestResolveOne_FallbacksAreCached(t *testing.T) {
	g := &stubGeocoder{err: errors.New("status 500")}
	r := newResolver(g)

	r.ResolveOne(context.Background(), "somewhere in France")
	r.ResolveOne(context.Background(), "somewhere in France")

	assert.Equal(t, 1, g.calls, "a failing lookup must not be repeated for the same input")
}

// --- ResolveMany ---

func TestResolveMany_PreservesOrderAndLength(t *testing.T) {
	g := &stubGeocoder{candidates: []domain.Candidate{
		{Lat: "1", Lon: "2", DisplayName: "Place"},
	}}
	r := newResolver(g)

	resolved := r.ResolveMany(context.Background(), []string{"A", "B", "C"})

	require.Len(t, resolved, 3)
	for _, ra := range resolved {
		assert.Equal(t, "Place", ra.DisplayText)
	}
}

func TestResolveMany_PanicItemGetsDefaultFallback(t *testing.T) {
	g := &stubGeocoder{
		candidates: []domain.Candidate{{Lat: "1", Lon: "2", DisplayName: "Place"}},
		panicOn:    "B",
	}
	r := newResolver(g)

	resolved := r.ResolveMany(context.Background(), []string{"A", "B", "C"})

	require.Len(t, resolved, 3)
	assert.Equal(t, "Place", resolved[0].DisplayText)
	assert.Equal(t, domain.FallbackCoordinate(domain.RegionDefault), resolved[1].Coordinate)
	assert.Equal(t, "B", resolved[1].DisplayText)
	assert.Equal(t, "Place", resolved[2].DisplayText, "batch continues past the failing item")
}

func TestResolveMany_WarmCacheIssuesNoRequests(t *testing.T) {
	g := &stubGeocoder{candidates: []domain.Candidate{
		{Lat: "1", Lon: "2", DisplayName: "Place"},
	}}
	r := newResolver(g)

	addresses := []string{"A", "B", "C"}
	first := r.ResolveMany(context.Background(), addresses)
	callsAfterFirst := g.calls

	second := r.ResolveMany(context.Background(), addresses)

	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, g.calls, "warm-cache batch must be side-effect free")
}
