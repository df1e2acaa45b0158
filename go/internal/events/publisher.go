package events

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogPublisher only logs events; the default when no broker is configured
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", event.Type).
		Str("owner_id", event.OwnerID).
		Int("size", len(event.Payload)).
		Msg("publishing event")
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
