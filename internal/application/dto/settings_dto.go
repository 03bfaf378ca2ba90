package dto

import "time"

// SaveAIConfigRequest preferencias de IA. APIKey vacío conserva la clave guardada.
type SaveAIConfigRequest struct {
	Provider string `json:"provider" validate:"required,oneof=gemini anthropic"`
	Model    string `json:"model" validate:"omitempty,max=100"`
	APIKey   string `json:"api_key" validate:"omitempty,min=10,max=300"`
}

// AIConfigResponse preferencias de IA; nunca incluye la clave.
type AIConfigResponse struct {
	Provider  string     `json:"provider"`
	Model     string     `json:"model"`
	HasAPIKey bool       `json:"has_api_key"`
	Source    string     `json:"source"` // user | server
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// SaveBackupSettingsRequest preferencias de copia de seguridad.
type SaveBackupSettingsRequest struct {
	Enabled          bool   `json:"enabled"`
	Frequency        string `json:"frequency" validate:"required,oneof=daily weekly"`
	IncludeDocuments bool   `json:"include_documents"`
}

// BackupSettingsResponse preferencias y última copia.
type BackupSettingsResponse struct {
	Enabled          bool       `json:"enabled"`
	Frequency        string     `json:"frequency"`
	IncludeDocuments bool       `json:"include_documents"`
	LastBackupAt     *time.Time `json:"last_backup_at,omitempty"`
	LastBackupKey    string     `json:"last_backup_key,omitempty"`
}

// BackupResponse resultado de una copia bajo demanda.
type BackupResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
