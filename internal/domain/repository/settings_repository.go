package repository

import (
	"context"
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// AIConfigRepository preferencias de IA por usuario. Get devuelve (nil, nil) si no hay.
type AIConfigRepository interface {
	Get(ctx context.Context, userID string) (*entity.AIConfig, error)
	Upsert(ctx context.Context, c *entity.AIConfig) error
	Delete(ctx context.Context, userID string) error
}

// BackupSettingsRepository preferencias de copia de seguridad por usuario.
// Upsert no modifica los datos de la última copia de un registro existente;
// solo UpdateLastBackup los escribe.
type BackupSettingsRepository interface {
	Get(ctx context.Context, userID string) (*entity.BackupSettings, error)
	Upsert(ctx context.Context, s *entity.BackupSettings) error
	UpdateLastBackup(ctx context.Context, userID string, at time.Time, key string) error
	ListEnabled(ctx context.Context) ([]*entity.BackupSettings, error)
}
