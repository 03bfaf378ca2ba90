// Package realtime difunde eventos de cambio a los clientes SSE (Redis pub/sub o en memoria).
package realtime

import (
	"context"
	"sync"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/pkg/logger"
)

var (
	_ ports.EventPublisher  = (*MemoryBroker)(nil)
	_ ports.EventSubscriber = (*MemoryBroker)(nil)
)

// subscriberBuffer eventos pendientes por cliente antes de empezar a descartar.
const subscriberBuffer = 32

// MemoryBroker broker en proceso para una sola instancia (REDIS_ADDR vacío).
type MemoryBroker struct {
	mu   sync.RWMutex
	subs map[string]map[chan entity.ChangeEvent]struct{}
	log  *logger.Logger
}

// NewMemoryBroker construye el broker.
func NewMemoryBroker(log *logger.Logger) *MemoryBroker {
	if log == nil {
		log = logger.Nop()
	}
	return &MemoryBroker{subs: map[string]map[chan entity.ChangeEvent]struct{}{}, log: log.Named("realtime")}
}

// Publish entrega el evento al usuario indicado o, si UserID está vacío, a todos.
// Un cliente lento pierde eventos en lugar de bloquear al publicador.
func (b *MemoryBroker) Publish(_ context.Context, ev entity.ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for userID, set := range b.subs {
		if ev.UserID != "" && ev.UserID != userID {
			continue
		}
		for ch := range set {
			select {
			case ch <- ev:
			default:
				b.log.Warn().Str("user_id", userID).Str("table", ev.Table).Msg("cliente lento, evento descartado")
			}
		}
	}
	return nil
}

// Subscribe registra un canal hasta que ctx se cancela.
func (b *MemoryBroker) Subscribe(ctx context.Context, userID string) (<-chan entity.ChangeEvent, error) {
	ch := make(chan entity.ChangeEvent, subscriberBuffer)
	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = map[chan entity.ChangeEvent]struct{}{}
	}
	b.subs[userID][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs[userID], ch)
		if len(b.subs[userID]) == 0 {
			delete(b.subs, userID)
		}
		b.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}
