// Package events publica notificaciones de cambio tras escrituras confirmadas.
package events

import (
	"context"
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/pkg/logger"
)

// Notifier envuelve un EventPublisher; los fallos se registran y nunca se propagan.
// Un Notifier nil o sin publisher no hace nada.
type Notifier struct {
	pub ports.EventPublisher
	log *logger.Logger
	now func() time.Time
}

// NewNotifier construye el notificador.
func NewNotifier(pub ports.EventPublisher, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{pub: pub, log: log.Named("events"), now: time.Now}
}

// Changed publica que la fila id de table cambió. userID vacío = visible para todos.
func (n *Notifier) Changed(ctx context.Context, table, action, id, projectID, userID string) {
	if n == nil || n.pub == nil {
		return
	}
	ev := entity.ChangeEvent{
		Table:     table,
		Action:    action,
		ID:        id,
		ProjectID: projectID,
		UserID:    userID,
		At:        n.now().UTC(),
	}
	if err := n.pub.Publish(context.WithoutCancel(ctx), ev); err != nil {
		n.log.Warn().Err(err).Str("table", table).Str("id", id).Msg("no se pudo publicar el cambio")
	}
}
