package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Notification is the payload handed to the external notification service.
// RecipientID targets a single user channel; when nil the event goes to the
// supervisory channel.
type Notification struct {
	Type        string    `json:"type"`
	RecipientID *int64    `json:"recipient_id,omitempty"`
	Message     string    `json:"message"`
	EntityID    int64     `json:"entity_id"`
	SentAt      time.Time `json:"sent_at"`
}

// RedisPublisher delivers notifications over Redis pub/sub. Delivery is
// fire-and-forget: nothing is consumed from the subscriber side here.
type RedisPublisher struct {
	client        *redis.Client
	channelPrefix string
}

// NewRedisPublisher wraps an existing Redis client.
func NewRedisPublisher(client *redis.Client, channelPrefix string) *RedisPublisher {
	if channelPrefix == "" {
		channelPrefix = "notify"
	}
	return &RedisPublisher{client: client, channelPrefix: channelPrefix}
}

// Publish serialises the notification and publishes it to the target channel.
func (p *RedisPublisher) Publish(ctx context.Context, n Notification) error {
	if n.SentAt.IsZero() {
		n.SentAt = time.Now().UTC()
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel(n), payload).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (p *RedisPublisher) channel(n Notification) string {
	if n.RecipientID != nil {
		return fmt.Sprintf("%s:user:%d", p.channelPrefix, *n.RecipientID)
	}
	return fmt.Sprintf("%s:supervisors", p.channelPrefix)
}
