package entity

import "time"

// Acciones de un evento de cambio.
const (
	ChangeInsert = "insert"
	ChangeUpdate = "update"
	ChangeDelete = "delete"
)

// ChangeEvent notificación de que una fila cambió. UserID vacío = visible para todos.
type ChangeEvent struct {
	Table     string    `json:"table"`
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	At        time.Time `json:"at"`
}
