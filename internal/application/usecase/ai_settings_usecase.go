package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// ServerAI proveedor y modelos por defecto del servidor, y qué claves tiene configuradas.
type ServerAI struct {
	Provider       string
	GeminiModel    string
	AnthropicModel string
	HasGeminiKey   bool
	HasAnthropic   bool
}

// Model devuelve el modelo por defecto del proveedor.
func (s ServerAI) Model(provider string) string {
	if provider == entity.AIProviderAnthropic {
		return s.AnthropicModel
	}
	return s.GeminiModel
}

// HasKey informa si el servidor tiene clave para el proveedor.
func (s ServerAI) HasKey(provider string) bool {
	if provider == entity.AIProviderAnthropic {
		return s.HasAnthropic
	}
	return s.HasGeminiKey
}

// AISettingsUseCase preferencias de IA por usuario. La clave se guarda cifrada y nunca se devuelve.
type AISettingsUseCase struct {
	repo   repository.AIConfigRepository
	sealer ports.SecretSealer
	server ServerAI
}

// NewAISettingsUseCase construye el caso de uso.
func NewAISettingsUseCase(repo repository.AIConfigRepository, sealer ports.SecretSealer, server ServerAI) *AISettingsUseCase {
	return &AISettingsUseCase{repo: repo, sealer: sealer, server: server}
}

// Get devuelve la configuración efectiva: la del usuario si existe, si no la del servidor.
func (uc *AISettingsUseCase) Get(ctx context.Context, actor dto.Actor) (*dto.AIConfigResponse, error) {
	cfg, err := uc.repo.Get(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return &dto.AIConfigResponse{
			Provider:  uc.server.Provider,
			Model:     uc.server.Model(uc.server.Provider),
			HasAPIKey: uc.server.HasKey(uc.server.Provider),
			Source:    "server",
		}, nil
	}
	return toAIConfigResponse(cfg, uc.server), nil
}

// Save guarda proveedor y modelo. Una API key vacía conserva la guardada si el proveedor no cambia;
// al cambiar de proveedor sin clave nueva, la anterior se descarta.
func (uc *AISettingsUseCase) Save(ctx context.Context, actor dto.Actor, in dto.SaveAIConfigRequest) (*dto.AIConfigResponse, error) {
	if !entity.ValidAIProvider(in.Provider) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.Get(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	cfg := &entity.AIConfig{
		UserID:    actor.UserID,
		Provider:  in.Provider,
		Model:     strings.TrimSpace(in.Model),
		UpdatedAt: time.Now(),
	}
	switch key := strings.TrimSpace(in.APIKey); {
	case key != "":
		if uc.sealer == nil {
			return nil, fmt.Errorf("%w: SECRET_KEY no configurada", domain.ErrConflict)
		}
		sealed, err := uc.sealer.Seal(key)
		if err != nil {
			return nil, fmt.Errorf("ai settings: cifrar clave: %w", err)
		}
		cfg.APIKeyEncrypted = sealed
	case existing != nil && existing.Provider == in.Provider:
		cfg.APIKeyEncrypted = existing.APIKeyEncrypted
	}
	if err := uc.repo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return toAIConfigResponse(cfg, uc.server), nil
}

// Delete borra la configuración del usuario; vuelve a usarse la del servidor.
func (uc *AISettingsUseCase) Delete(ctx context.Context, actor dto.Actor) error {
	return uc.repo.Delete(ctx, actor.UserID)
}

func toAIConfigResponse(cfg *entity.AIConfig, server ServerAI) *dto.AIConfigResponse {
	model := cfg.Model
	if model == "" {
		model = server.Model(cfg.Provider)
	}
	updated := cfg.UpdatedAt
	return &dto.AIConfigResponse{
		Provider:  cfg.Provider,
		Model:     model,
		HasAPIKey: cfg.APIKeyEncrypted != "",
		Source:    "user",
		UpdatedAt: &updated,
	}
}
