package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"pawnder-backend/internal/config"
)

func TestNewPublisherDefaultsToNoop(t *testing.T) {
	p := NewPublisher(config.EventsConfig{Driver: "none"})
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), SubjectMatchCreated, MatchCreated{MatchID: "m1"}))
	assert.NoError(t, p.Close())
}

func TestNewPublisherFallsBackWhenUnconfigured(t *testing.T) {
	assert.IsType(t, NoopPublisher{}, NewPublisher(config.EventsConfig{Driver: "nats"}))
	assert.IsType(t, NoopPublisher{}, NewPublisher(config.EventsConfig{Driver: "amqp"}))
}
