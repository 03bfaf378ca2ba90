package repository

import (
	"context"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// NoticeRepository define el puerto de persistencia e índice de búsqueda de Notice.
type NoticeRepository interface {
	Create(ctx context.Context, n *entity.Notice) error
	GetByID(ctx context.Context, id string) (*entity.Notice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Notice, error)
	Update(ctx context.Context, n *entity.Notice) error
	SetIndex(ctx context.Context, id, content string, keywords []string) error
	// Search recibe una consulta to_tsquery ya normalizada.
	Search(ctx context.Context, tsquery string, limit int) ([]entity.NoticeHit, error)
	Delete(ctx context.Context, id string) error
}

// ChatMessageRepository historial de conversación con el asistente.
type ChatMessageRepository interface {
	Create(ctx context.Context, m *entity.ChatMessage) error
	// ListByUser devuelve los últimos limit mensajes en orden cronológico.
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.ChatMessage, error)
	DeleteByUser(ctx context.Context, userID string) error
}
