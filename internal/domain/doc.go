// Package domain models shipment tracking updates and their enriched form.
//
// # Data Source
//
// Tracking updates originate from the upstream carrier collector, which polls
// carrier APIs and webhooks, normalizes each status change into flat JSON,
// and publishes it to the Kafka source topic. One message is one status
// change for one shipment.
//
// # Update Conventions
//
// Status values:
//
//	created, in_transit, out_for_delivery, delivered, exception.
//	"exception" covers any carrier-reported problem (customs hold, failed
//	delivery attempt, damaged parcel). Delivered and exception updates
//	trigger recipient notifications; see [ShouldNotify].
//
// Addresses:
//
//	Origin, destination, and current location arrive as free text exactly as
//	the carrier reported them ("Frankfurt Hub, Germany", "Austin, TX").
//	They are resolved to coordinates downstream by the address resolver;
//	when geocoding fails the resolver substitutes a regional centroid
//	selected by [ClassifyRegion] so map rendering always has something to
//	draw.
//
// Time format:
//
//	HHMM in 24-hour UTC notation, e.g. "1510" = 15:10 UTC. Three-digit
//	values are zero-padded: "930" → "0930". The date portion comes from the
//	Kafka message timestamp (set by the collector from the carrier scan
//	date). Combined to produce a full UTC time.
//
// # ID Generation
//
// Event IDs are deterministic SHA-256 hashes of shipment|status|time. This
// enables idempotent upserts downstream (ON CONFLICT DO NOTHING) and replay
// safety without distributed coordination. See [generateID].
package domain
