package ai

import (
	"context"
	"fmt"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
	"github.com/jhoicas/vanbuilder-api/pkg/config"
)

var _ ports.AIResolver = (*Resolver)(nil)

// ModelFactory construye el adaptador de un proveedor con clave y modelo dados.
type ModelFactory func(provider, apiKey, model string) ports.AIModel

// NewModel es la fábrica por defecto: Gemini o Anthropic.
func NewModel(provider, apiKey, model string) ports.AIModel {
	if provider == entity.AIProviderAnthropic {
		return NewAnthropicService(apiKey, model)
	}
	return NewGeminiService(apiKey, model)
}

// Resolver elige el modelo de cada usuario: su configuración si existe y, para lo que falte
// (modelo o clave), los valores del servidor.
type Resolver struct {
	repo    repository.AIConfigRepository
	sealer  ports.SecretSealer
	server  config.AIConfig
	factory ModelFactory
}

// NewResolver construye el resolvedor. sealer puede ser nil si no hay SECRET_KEY.
func NewResolver(repo repository.AIConfigRepository, sealer ports.SecretSealer, server config.AIConfig, factory ModelFactory) *Resolver {
	if factory == nil {
		factory = NewModel
	}
	return &Resolver{repo: repo, sealer: sealer, server: server, factory: factory}
}

// Resolve devuelve domain.ErrAINotConfigured cuando no hay clave para el proveedor elegido.
func (r *Resolver) Resolve(ctx context.Context, userID string) (ports.AIModel, error) {
	provider := r.server.DefaultProvider
	var model, key string

	if userID != "" && r.repo != nil {
		cfg, err := r.repo.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			provider = cfg.Provider
			model = cfg.Model
			if cfg.APIKeyEncrypted != "" && r.sealer != nil {
				key, err = r.sealer.Open(cfg.APIKeyEncrypted)
				if err != nil {
					return nil, fmt.Errorf("AI: descifrar clave de usuario: %w", err)
				}
			}
		}
	}

	if model == "" {
		model = r.serverModel(provider)
	}
	if key == "" {
		key = r.serverKey(provider)
	}
	if key == "" {
		return nil, domain.ErrAINotConfigured
	}
	return r.factory(provider, key, model), nil
}

func (r *Resolver) serverModel(provider string) string {
	if provider == entity.AIProviderAnthropic {
		return r.server.AnthropicModel
	}
	return r.server.GeminiModel
}

func (r *Resolver) serverKey(provider string) string {
	if provider == entity.AIProviderAnthropic {
		return r.server.AnthropicAPIKey
	}
	return r.server.GeminiAPIKey
}
