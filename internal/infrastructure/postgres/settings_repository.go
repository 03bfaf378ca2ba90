package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

var (
	_ repository.AIConfigRepository       = (*AIConfigRepo)(nil)
	_ repository.BackupSettingsRepository = (*BackupSettingsRepo)(nil)
)

// AIConfigRepo preferencias de IA por usuario (una fila por usuario).
type AIConfigRepo struct {
	q Querier
}

// NewAIConfigRepository construye el adaptador.
func NewAIConfigRepository(q Querier) *AIConfigRepo {
	return &AIConfigRepo{q: q}
}

func (r *AIConfigRepo) Get(ctx context.Context, userID string) (*entity.AIConfig, error) {
	var c entity.AIConfig
	err := r.q.QueryRow(ctx,
		`SELECT user_id, provider, model, api_key_encrypted, updated_at FROM ai_configs WHERE user_id = $1`, userID,
	).Scan(&c.UserID, &c.Provider, &c.Model, &c.APIKeyEncrypted, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ai config: %w", err)
	}
	return &c, nil
}

func (r *AIConfigRepo) Upsert(ctx context.Context, c *entity.AIConfig) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ai_configs (user_id, provider, model, api_key_encrypted, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			provider = EXCLUDED.provider, model = EXCLUDED.model,
			api_key_encrypted = EXCLUDED.api_key_encrypted, updated_at = EXCLUDED.updated_at`,
		c.UserID, c.Provider, c.Model, c.APIKeyEncrypted, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert ai config: %w", err)
	}
	return nil
}

func (r *AIConfigRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM ai_configs WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete ai config: %w", err)
	}
	return nil
}

// ── Copias de seguridad ──────────────────────────────────────────────────────

const backupColumns = `user_id, enabled, frequency, include_documents, last_backup_at, last_backup_key, updated_at`

// BackupSettingsRepo preferencias de copia de seguridad por usuario.
type BackupSettingsRepo struct {
	q Querier
}

// NewBackupSettingsRepository construye el adaptador.
func NewBackupSettingsRepository(q Querier) *BackupSettingsRepo {
	return &BackupSettingsRepo{q: q}
}

func scanBackup(row rowScanner) (*entity.BackupSettings, error) {
	var b entity.BackupSettings
	if err := row.Scan(&b.UserID, &b.Enabled, &b.Frequency, &b.IncludeDocuments, &b.LastBackupAt, &b.LastBackupKey, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BackupSettingsRepo) Get(ctx context.Context, userID string) (*entity.BackupSettings, error) {
	b, err := scanBackup(r.q.QueryRow(ctx, `SELECT `+backupColumns+` FROM backup_settings WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get backup settings: %w", err)
	}
	return b, nil
}

func (r *BackupSettingsRepo) Upsert(ctx context.Context, b *entity.BackupSettings) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO backup_settings (`+backupColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			enabled = EXCLUDED.enabled, frequency = EXCLUDED.frequency,
			include_documents = EXCLUDED.include_documents, updated_at = EXCLUDED.updated_at`,
		b.UserID, b.Enabled, b.Frequency, b.IncludeDocuments, b.LastBackupAt, b.LastBackupKey, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert backup settings: %w", err)
	}
	return nil
}

// UpdateLastBackup registra la última copia sin tocar las preferencias del usuario.
// Sin registro previo crea uno deshabilitado con frecuencia diaria.
func (r *BackupSettingsRepo) UpdateLastBackup(ctx context.Context, userID string, at time.Time, key string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO backup_settings (`+backupColumns+`)
		VALUES ($1, FALSE, $2, FALSE, $3, $4, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			last_backup_at = EXCLUDED.last_backup_at, last_backup_key = EXCLUDED.last_backup_key,
			updated_at = EXCLUDED.updated_at`,
		userID, entity.BackupDaily, at, key,
	)
	if err != nil {
		return fmt.Errorf("update last backup: %w", err)
	}
	return nil
}

// ListEnabled usuarios con copias automáticas activadas.
func (r *BackupSettingsRepo) ListEnabled(ctx context.Context) ([]*entity.BackupSettings, error) {
	rows, err := r.q.Query(ctx, `SELECT `+backupColumns+` FROM backup_settings WHERE enabled ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list backup settings: %w", err)
	}
	defer rows.Close()
	var list []*entity.BackupSettings
	for rows.Next() {
		b, err := scanBackup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan backup settings: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
