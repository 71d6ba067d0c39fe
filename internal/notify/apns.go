package notify

import (
	"context"
	"fmt"

	"pawnder-backend/internal/config"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// APNs sends alert notifications through Apple Push Notification service
type APNs struct {
	client *apns2.Client
	topic  string
}

// NewAPNs creates a token-authenticated APNs client from a .p8 key file
func NewAPNs(cfg config.APNsConfig) (*APNs, error) {
	authKey, err := token.AuthKeyFromFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs key: %w", err)
	}

	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	})
	if cfg.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}

	return &APNs{client: client, topic: cfg.Topic}, nil
}

// Push sends one alert to a device
func (a *APNs) Push(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	res, err := a.client.PushWithContext(ctx, BuildNotification(deviceToken, a.topic, title, body, data))
	if err != nil {
		return fmt.Errorf("apns push: %w", err)
	}
	if !res.Sent() {
		return fmt.Errorf("apns rejected notification: %d %s", res.StatusCode, res.Reason)
	}
	return nil
}

// BuildNotification assembles the APNs request for an alert
func BuildNotification(deviceToken, topic, title, body string, data map[string]string) *apns2.Notification {
	p := payload.NewPayload().AlertTitle(title).AlertBody(body).Sound("default")
	for k, v := range data {
		p = p.Custom(k, v)
	}

	return &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       topic,
		Payload:     p,
		Priority:    apns2.PriorityHigh,
	}
}
