package usecase

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Stream fans stored notifications out to connected websocket clients.
type Stream interface {
	Publish(ctx context.Context, userID string, payload []byte) error
	Subscribe(ctx context.Context, userID string) (<-chan []byte, func(), error)
}

type RedisStream struct {
	client *redis.Client
}

func NewRedisStream(client *redis.Client) *RedisStream {
	return &RedisStream{client: client}
}

func channelName(userID string) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func (s *RedisStream) Publish(ctx context.Context, userID string, payload []byte) error {
	if err := s.client.Publish(ctx, channelName(userID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channelName(userID), err)
	}
	return nil
}

// Subscribe returns the user's message channel and a function that closes the
// subscription. It returns once redis has confirmed the subscription. The
// channel is closed once ctx is done or the subscription ends.
func (s *RedisStream) Subscribe(ctx context.Context, userID string) (<-chan []byte, func(), error) {
	pubsub := s.client.Subscribe(ctx, channelName(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", channelName(userID), err)
	}
	out := make(chan []byte, 16)

	go func() {
		defer close(out)
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, func() { pubsub.Close() }, nil
}
