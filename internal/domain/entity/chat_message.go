package entity

import "time"

// Roles de un mensaje del asistente.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage un turno de la conversación de un usuario con el asistente.
type ChatMessage struct {
	ID        string
	UserID    string
	Role      string
	Content   string
	Sources   []string // IDs de notices usadas como contexto
	CreatedAt time.Time
}
