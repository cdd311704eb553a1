package realtime

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yukikurage/retro-board-api/internal/events"
)

// redisPrefix namespaces board channels on the shared Redis server.
const redisPrefix = "retro:"

// RedisTransport publishes stream envelopes to Redis so that the RedisRelay
// of every replica can hand them to its local Hub.
type RedisTransport struct {
	client *redis.Client
}

func NewRedisTransport(client *redis.Client) *RedisTransport {
	return &RedisTransport{client: client}
}

func (t *RedisTransport) Name() string {
	return "redis"
}

func (t *RedisTransport) Trigger(ctx context.Context, channel string, event events.Name, payload any) error {
	message, err := encodeEnvelope(event, payload)
	if err != nil {
		return err
	}
	return t.client.Publish(ctx, redisPrefix+channel, message).Err()
}

// RedisRelay forwards board envelopes published on Redis to the local Hub.
type RedisRelay struct {
	client *redis.Client
	hub    *Hub
	log    *zap.Logger
}

func NewRedisRelay(client *redis.Client, hub *Hub, log *zap.Logger) *RedisRelay {
	return &RedisRelay{client: client, hub: hub, log: log}
}

// Run subscribes to every board channel and relays until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	pubsub := r.client.PSubscribe(ctx, redisPrefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	r.log.Info("Redis relay subscribed", zap.String("pattern", redisPrefix+"*"))

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.relay(msg.Channel, msg.Payload)
		}
	}
}

func (r *RedisRelay) relay(redisChannel, payload string) {
	channel, ok := strings.CutPrefix(redisChannel, redisPrefix)
	if !ok {
		return
	}
	r.hub.Broadcast(channel, []byte(payload))
}
