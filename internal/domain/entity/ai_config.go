package entity

import "time"

// Proveedores de IA admitidos.
const (
	AIProviderGemini    = "gemini"
	AIProviderAnthropic = "anthropic"
)

// AIConfig preferencias de IA de un usuario. La API key se guarda cifrada.
type AIConfig struct {
	UserID          string
	Provider        string
	Model           string
	APIKeyEncrypted string
	UpdatedAt       time.Time
}

// ValidAIProvider informa si p es un proveedor admitido.
func ValidAIProvider(p string) bool {
	return p == AIProviderGemini || p == AIProviderAnthropic
}
