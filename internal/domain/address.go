package domain

import "strings"

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate is within WGS-84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// ResolvedAddress is the resolver's output: a coordinate plus a
// human-readable display string. Immutable once produced. Callers cannot
// tell from the value whether the coordinate is authoritative or a
// regional fallback.
type ResolvedAddress struct {
	Coordinate  Coordinate `json:"coordinate"`
	DisplayText string     `json:"display_text"`
}

// Region tags select a fallback coordinate when geocoding fails.
const (
	RegionUS      = "us"
	RegionEurope  = "europe"
	RegionAsia    = "asia"
	RegionDefault = "default"
)

// UnknownLocation is the display text substituted for addresses that are
// empty after trimming.
const UnknownLocation = "Unknown Location"

// fallbackCoordinates maps region tags to representative centroids. Fixed at
// initialization, never mutated.
var fallbackCoordinates = map[string]Coordinate{
	RegionUS:      {Lat: 37.0902, Lon: -95.7129},
	RegionEurope:  {Lat: 54.526, Lon: 15.2551},
	RegionAsia:    {Lat: 34.0479, Lon: 100.6197},
	RegionDefault: {Lat: 0, Lon: 0},
}

// FallbackCoordinate returns the heuristic centroid for a region tag.
// Unknown tags map to the default region.
func FallbackCoordinate(region string) Coordinate {
	if c, ok := fallbackCoordinates[region]; ok {
		return c
	}
	return fallbackCoordinates[RegionDefault]
}

var (
	europeHints = []string{"europe", "uk", "germany", "france"}
	asiaHints   = []string{"asia", "china", "japan", "india"}
)

// ClassifyRegion guesses a region tag from an address using case-insensitive
// substring containment, first match wins in hint order. No word-boundary
// checking: "ukulele" matches "uk".
func ClassifyRegion(address string) string {
	lower := strings.ToLower(address)
	for _, hint := range europeHints {
		if strings.Contains(lower, hint) {
			return RegionEurope
		}
	}
	for _, hint := range asiaHints {
		if strings.Contains(lower, hint) {
			return RegionAsia
		}
	}
	return RegionDefault
}
