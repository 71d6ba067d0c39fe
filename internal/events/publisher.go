package events

import (
	"context"

	"pawnder-backend/internal/config"

	"github.com/rs/zerolog/log"
)

// Publisher publishes domain events
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
	Close() error
}

// NewPublisher builds the publisher selected by cfg.Driver. Connection
// failures fall back to a noop publisher so the API keeps serving.
func NewPublisher(cfg config.EventsConfig) Publisher {
	var (
		p   Publisher
		err error
	)

	switch cfg.Driver {
	case "nats":
		p, err = NewNATSPublisher(cfg.NATSURL)
	case "amqp":
		p, err = NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange)
	default:
		return NoopPublisher{}
	}

	if err != nil {
		log.Warn().Err(err).Str("driver", cfg.Driver).Msg("Event publisher disabled, using noop")
		return NoopPublisher{}
	}

	log.Info().Str("driver", cfg.Driver).Msg("Event publisher connected")
	return p
}

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, subject string, _ any) error {
	log.Debug().Str("subject", subject).Msg("Event dropped by noop publisher")
	return nil
}

func (NoopPublisher) Close() error { return nil }
