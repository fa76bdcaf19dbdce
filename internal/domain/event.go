package domain

import (
	"context"
	"time"
)

// Shipment status values as published by the carrier collector.
const (
	StatusCreated        = "created"
	StatusInTransit      = "in_transit"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusException      = "exception"
)

// ShouldNotify reports whether a status change warrants a recipient email.
func ShouldNotify(status string) bool {
	return status == StatusDelivered || status == StatusException
}

// TrackingUpdate represents the flat JSON structure produced by the
// carrier collector. Addresses are free text exactly as the carrier
// reported them.
type TrackingUpdate struct {
	ShipmentID      string `json:"shipment_id"`
	Carrier         string `json:"carrier"`
	Status          string `json:"status"`
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	CurrentLocation string `json:"current_location"`
	RecipientName   string `json:"recipient_name"`
	RecipientEmail  string `json:"recipient_email"`
	Time            string `json:"time"` // HHMM, 24-hour UTC
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// TrackingEvent is the enriched representation destined for the sink topic.
// Map front-ends render Origin/CurrentLocation/Destination as markers and
// Route as the polyline connecting them.
type TrackingEvent struct {
	ID              string          `json:"id"`
	ShipmentID      string          `json:"shipment_id"`
	Carrier         string          `json:"carrier,omitempty"`
	Status          string          `json:"status"`
	Origin          ResolvedAddress `json:"origin"`
	CurrentLocation ResolvedAddress `json:"current_location"`
	Destination     ResolvedAddress `json:"destination"`
	Route           []Coordinate    `json:"route"`
	RecipientName   string          `json:"recipient_name,omitempty"`
	RecipientEmail  string          `json:"recipient_email,omitempty"`
	EventTime       time.Time       `json:"event_time"`

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}
