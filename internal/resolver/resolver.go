// Package resolver converts free-text shipment addresses into coordinates.
//
// Resolution never fails outright: the resolver consults a process-lifetime
// cache, then the geocoding provider, and substitutes a heuristic regional
// centroid when lookup fails, so map rendering always has a coordinate to
// draw. Callers cannot distinguish authoritative coordinates from fallbacks
// in the returned value; the distinction is tracked internally for metrics
// and logging only.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/couchcryptid/shipment-tracking-etl/internal/domain"
	"github.com/couchcryptid/shipment-tracking-etl/internal/observability"
)

// outcome classifies how a resolution was produced. Never exposed to callers.
type outcome string

const (
	outcomeAuthoritative outcome = "authoritative"
	outcomeFallback      outcome = "fallback"
)

var errNoCandidates = errors.New("no geocoding candidates")

// Resolver implements domain.AddressResolver. It owns its cache: entries are
// added on every resolution, fallbacks included, and never evicted. The
// cache is bounded only by the variety of addresses seen during the process
// lifetime, which is acceptable for a service restarted on deploy.
type Resolver struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu    sync.Mutex
	cache map[string]domain.ResolvedAddress
}

// New creates a Resolver with an empty cache.
func New(geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
		cache:    make(map[string]domain.ResolvedAddress),
	}
}

// ResolveOne resolves a single address. The cache key is the raw input
// exactly as received, whitespace included; trimming applies only to the
// lookup query. At most one provider request is issued per call.
func (r *Resolver) ResolveOne(ctx context.Context, address string) domain.ResolvedAddress {
	if cached, ok := r.lookup(address); ok {
		r.metrics.ResolverCache.WithLabelValues("hit").Inc()
		return cached
	}
	r.metrics.ResolverCache.WithLabelValues("miss").Inc()

	resolved, how := r.resolveUncached(ctx, address)
	r.store(address, resolved)

	r.logger.Debug("address resolved",
		"address", address,
		"display", resolved.DisplayText,
		"outcome", string(how),
	)
	return resolved
}

// ResolveMany resolves addresses strictly sequentially, producing one result
// per input in input order. A panic while resolving an item is recovered and
// replaced with the default fallback so the remaining items still resolve;
// the batch never aborts early.
func (r *Resolver) ResolveMany(ctx context.Context, addresses []string) []domain.ResolvedAddress {
	results := make([]domain.ResolvedAddress, len(addresses))
	for i, address := range addresses {
		results[i] = r.resolveRecovering(ctx, address)
	}
	return results
}

func (r *Resolver) resolveRecovering(ctx context.Context, address string) (resolved domain.ResolvedAddress) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("panic during address resolution", "address", address, "panic", p)
			resolved = domain.ResolvedAddress{
				Coordinate:  domain.FallbackCoordinate(domain.RegionDefault),
				DisplayText: address,
			}
		}
	}()
	return r.ResolveOne(ctx, address)
}

func (r *Resolver) resolveUncached(ctx context.Context, address string) (domain.ResolvedAddress, outcome) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return domain.ResolvedAddress{
			Coordinate:  domain.FallbackCoordinate(domain.RegionDefault),
			DisplayText: domain.UnknownLocation,
		}, outcomeFallback
	}

	resolved, err := r.geocode(ctx, trimmed)
	if err != nil {
		region := domain.ClassifyRegion(trimmed)
		r.logger.Warn("geocoding failed, using regional fallback",
			"address", trimmed,
			"region", region,
			"error", err,
		)
		r.metrics.ResolveFallbacks.WithLabelValues(region).Inc()
		return domain.ResolvedAddress{
			Coordinate:  domain.FallbackCoordinate(region),
			DisplayText: trimmed,
		}, outcomeFallback
	}
	return resolved, outcomeAuthoritative
}

// geocode performs one provider lookup. All failure modes collapse into a
// single error: transport failure, zero candidates, unparsable coordinate
// fields, or a coordinate outside WGS-84 bounds.
func (r *Resolver) geocode(ctx context.Context, query string) (domain.ResolvedAddress, error) {
	candidates, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		return domain.ResolvedAddress{}, err
	}
	if len(candidates) == 0 {
		return domain.ResolvedAddress{}, errNoCandidates
	}

	best := candidates[0]
	lat, err := strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return domain.ResolvedAddress{}, fmt.Errorf("parse latitude %q: %w", best.Lat, err)
	}
	lon, err := strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return domain.ResolvedAddress{}, fmt.Errorf("parse longitude %q: %w", best.Lon, err)
	}

	coord := domain.Coordinate{Lat: lat, Lon: lon}
	if !coord.Valid() {
		return domain.ResolvedAddress{}, fmt.Errorf("coordinate out of range: (%v, %v)", lat, lon)
	}

	display := best.DisplayName
	if display == "" {
		display = query
	}
	return domain.ResolvedAddress{Coordinate: coord, DisplayText: display}, nil
}

func (r *Resolver) lookup(address string) (domain.ResolvedAddress, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resolved, ok := r.cache[address]
	return resolved, ok
}

func (r *Resolver) store(address string, resolved domain.ResolvedAddress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[address] = resolved
}
