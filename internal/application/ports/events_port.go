package ports

import (
	"context"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// EventPublisher difunde eventos de cambio a los clientes conectados.
type EventPublisher interface {
	Publish(ctx context.Context, ev entity.ChangeEvent) error
}

// EventSubscriber entrega los eventos visibles para un usuario hasta que ctx se cancela.
// El canal se cierra al terminar la suscripción.
type EventSubscriber interface {
	Subscribe(ctx context.Context, userID string) (<-chan entity.ChangeEvent, error)
}
