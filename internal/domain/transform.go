package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTrackingUpdate deserializes a RawEvent's value into a TrackingUpdate.
// It expects the flat JSON produced by the carrier collector.
func ParseTrackingUpdate(raw RawEvent) (TrackingUpdate, error) {
	var update TrackingUpdate
	if err := json.Unmarshal(raw.Value, &update); err != nil {
		return TrackingUpdate{}, fmt.Errorf("parse tracking update: %w", err)
	}
	if update.ShipmentID == "" {
		return TrackingUpdate{}, errors.New("tracking update missing shipment_id")
	}
	if update.Status == "" {
		return TrackingUpdate{}, errors.New("tracking update missing status")
	}
	return update, nil
}

// NewTrackingEvent assembles the enriched event from a parsed update and the
// resolved addresses. Route order is origin → current → destination, the
// order map front-ends draw the polyline in.
func NewTrackingEvent(update TrackingUpdate, origin, current, destination ResolvedAddress, raw RawEvent) TrackingEvent {
	eventTime := parseHHMM(raw.Timestamp, update.Time)

	return TrackingEvent{
		ID:              generateID(update.ShipmentID, update.Status, eventTime),
		ShipmentID:      update.ShipmentID,
		Carrier:         update.Carrier,
		Status:          update.Status,
		Origin:          origin,
		CurrentLocation: current,
		Destination:     destination,
		Route:           []Coordinate{origin.Coordinate, current.Coordinate, destination.Coordinate},
		RecipientName:   update.RecipientName,
		RecipientEmail:  update.RecipientEmail,
		EventTime:       eventTime,

		RawPayload:  raw.Value,
		ProcessedAt: clock.Now().UTC(),
	}
}

// generateID produces a deterministic event ID from the fields that uniquely
// identify one status change, enabling idempotent upserts downstream.
func generateID(shipmentID, status string, eventTime time.Time) string {
	seed := fmt.Sprintf("%s|%s|%s", shipmentID, status, eventTime.UTC().Format(time.RFC3339))
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:16])
}

// parseHHMM combines the message timestamp's date with an HHMM carrier scan
// time. Three-digit values are zero-padded ("930" → "0930"). Unparsable
// values fall back to the message timestamp itself.
func parseHHMM(base time.Time, hhmm string) time.Time {
	hhmm = strings.TrimSpace(hhmm)
	if len(hhmm) == 3 {
		hhmm = "0" + hhmm
	}
	if len(hhmm) != 4 {
		return base.UTC()
	}

	hour, errHour := strconv.Atoi(hhmm[:2])
	minutes, errMin := strconv.Atoi(hhmm[2:])
	if errHour != nil || errMin != nil || hour < 0 || hour > 23 || minutes < 0 || minutes > 59 {
		return base.UTC()
	}

	b := base.UTC()
	return time.Date(b.Year(), b.Month(), b.Day(), hour, minutes, 0, 0, time.UTC)
}
