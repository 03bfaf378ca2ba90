package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/pkg/config"
	"github.com/jhoicas/vanbuilder-api/pkg/logger"
)

var (
	_ ports.EventPublisher  = (*RedisBroker)(nil)
	_ ports.EventSubscriber = (*RedisBroker)(nil)
)

const (
	channelPrefix = "vanbuilder:changes:"
	channelAll    = channelPrefix + "all"
)

func userChannel(userID string) string { return channelPrefix + userID }

// RedisBroker difunde eventos entre instancias con Redis pub/sub.
type RedisBroker struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisClient abre la conexión y verifica con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewRedisBroker construye el broker sobre un cliente ya conectado.
func NewRedisBroker(client *redis.Client, log *logger.Logger) *RedisBroker {
	if log == nil {
		log = logger.Nop()
	}
	return &RedisBroker{client: client, log: log.Named("realtime")}
}

// Publish envía el evento al canal del usuario o al canal común si UserID está vacío.
func (b *RedisBroker) Publish(ctx context.Context, ev entity.ChangeEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("realtime: serializar evento: %w", err)
	}
	channel := channelAll
	if ev.UserID != "" {
		channel = userChannel(ev.UserID)
	}
	if err := b.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("realtime: publicar en %s: %w", channel, err)
	}
	return nil
}

// Subscribe escucha el canal del usuario y el común hasta que ctx se cancela.
func (b *RedisBroker) Subscribe(ctx context.Context, userID string) (<-chan entity.ChangeEvent, error) {
	pubsub := b.client.Subscribe(ctx, userChannel(userID), channelAll)
	// Esperar la confirmación de ambas suscripciones.
	for i := 0; i < 2; i++ {
		if _, err := pubsub.Receive(ctx); err != nil {
			_ = pubsub.Close()
			return nil, fmt.Errorf("realtime: suscribir: %w", err)
		}
	}

	out := make(chan entity.ChangeEvent, subscriberBuffer)
	go func() {
		defer close(out)
		defer pubsub.Close()
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev entity.ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.log.Error().Err(err).Str("channel", msg.Channel).Msg("evento ilegible")
					continue
				}
				select {
				case out <- ev:
				default:
					b.log.Warn().Str("user_id", userID).Msg("cliente lento, evento descartado")
				}
			}
		}
	}()
	return out, nil
}
