package domain

import "context"

// Candidate is a single geocoding match. Latitude and longitude arrive as
// decimal strings the way the provider sends them; parsing and range
// checking happen in the resolver.
type Candidate struct {
	Lat         string
	Lon         string
	DisplayName string
}

// Geocoder looks up coordinates for a free-text address.
type Geocoder interface {
	// Geocode returns candidate matches for the query, best match first.
	// An empty slice with a nil error means the provider found nothing.
	Geocode(ctx context.Context, query string) ([]Candidate, error)
}

// AddressResolver produces a usable coordinate for any input, substituting
// heuristic regional fallbacks when geocoding fails. Neither operation
// returns an error: failures are absorbed into fallback values.
type AddressResolver interface {
	ResolveOne(ctx context.Context, address string) ResolvedAddress

	// ResolveMany resolves a batch, one result per input in input order.
	ResolveMany(ctx context.Context, addresses []string) []ResolvedAddress
}
