package ports

import "context"

// ChatTurn un turno de conversación enviado al modelo.
type ChatTurn struct {
	Role    string // user | assistant
	Content string
}

// AIModel define el puerto de salida hacia un modelo de visión/texto (Gemini, Anthropic, mock).
// Siguiendo DIP, la aplicación solo conoce este contrato. Los contextos deben llevar timeout.
type AIModel interface {
	// Provider nombre del proveedor (gemini, anthropic).
	Provider() string
	// Vision envía un documento (imagen o PDF) junto con la instrucción y devuelve el texto generado.
	Vision(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
	// Chat envía una instrucción de sistema y los turnos previos y devuelve la respuesta.
	Chat(ctx context.Context, system string, turns []ChatTurn) (string, error)
}

// AIResolver elige el modelo a usar para un usuario: su configuración propia si existe,
// si no la del servidor. Devuelve domain.ErrAINotConfigured cuando no hay clave disponible.
type AIResolver interface {
	Resolve(ctx context.Context, userID string) (AIModel, error)
}
