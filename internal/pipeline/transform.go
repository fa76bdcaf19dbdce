package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/shipment-tracking-etl/internal/domain"
)

// UpdateTransformer implements Transformer: it parses raw tracking updates
// and enriches them with resolved coordinates for the map front-end.
type UpdateTransformer struct {
	resolver domain.AddressResolver
	logger   *slog.Logger
}

// NewTransformer creates an UpdateTransformer.
func NewTransformer(resolver domain.AddressResolver, logger *slog.Logger) *UpdateTransformer {
	return &UpdateTransformer{
		resolver: resolver,
		logger:   logger,
	}
}

// Transform parses a raw update and resolves its three addresses. Resolution
// cannot fail (fallbacks are substituted), so only unparsable updates return
// an error.
func (t *UpdateTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.TrackingEvent, error) {
	update, err := domain.ParseTrackingUpdate(raw)
	if err != nil {
		return domain.TrackingEvent{}, err
	}

	origin := t.resolver.ResolveOne(ctx, update.Origin)
	current := t.resolver.ResolveOne(ctx, update.CurrentLocation)
	destination := t.resolver.ResolveOne(ctx, update.Destination)

	return domain.NewTrackingEvent(update, origin, current, destination, raw), nil
}
