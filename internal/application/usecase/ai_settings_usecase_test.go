package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
)

type prefixSealer struct{}

func (prefixSealer) Seal(p string) (string, error) { return "sealed:" + p, nil }
func (prefixSealer) Open(s string) (string, error) { return s[len("sealed:"):], nil }

var serverAI = ServerAI{
	Provider:       entity.AIProviderGemini,
	GeminiModel:    "gemini-1.5-flash",
	AnthropicModel: "claude-3-5-haiku-20241022",
	HasGeminiKey:   true,
}

func TestAISettings_GetFallsBackToServer(t *testing.T) {
	uc := NewAISettingsUseCase(memrepo.NewAIConfigs(), prefixSealer{}, serverAI)
	out, err := uc.Get(context.Background(), ownerActor)
	require.NoError(t, err)
	assert.Equal(t, "server", out.Source)
	assert.Equal(t, "gemini-1.5-flash", out.Model)
	assert.True(t, out.HasAPIKey)
	assert.Nil(t, out.UpdatedAt)
}

func TestAISettings_SaveKeepsKeyForSameProvider(t *testing.T) {
	repo := memrepo.NewAIConfigs()
	uc := NewAISettingsUseCase(repo, prefixSealer{}, serverAI)
	ctx := context.Background()

	out, err := uc.Save(ctx, ownerActor, dto.SaveAIConfigRequest{Provider: entity.AIProviderAnthropic, APIKey: "sk-ant-0123456789"})
	require.NoError(t, err)
	assert.True(t, out.HasAPIKey)
	assert.Equal(t, "claude-3-5-haiku-20241022", out.Model, "sin modelo se usa el del servidor")
	assert.Equal(t, "user", out.Source)

	stored, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "sealed:sk-ant-0123456789", stored.APIKeyEncrypted)

	out, err = uc.Save(ctx, ownerActor, dto.SaveAIConfigRequest{Provider: entity.AIProviderAnthropic, Model: "claude-sonnet"})
	require.NoError(t, err)
	assert.True(t, out.HasAPIKey)
	assert.Equal(t, "claude-sonnet", out.Model)

	out, err = uc.Save(ctx, ownerActor, dto.SaveAIConfigRequest{Provider: entity.AIProviderGemini})
	require.NoError(t, err)
	assert.False(t, out.HasAPIKey, "al cambiar de proveedor la clave anterior se descarta")
}

func TestAISettings_SaveValidation(t *testing.T) {
	ctx := context.Background()
	uc := NewAISettingsUseCase(memrepo.NewAIConfigs(), prefixSealer{}, serverAI)
	_, err := uc.Save(ctx, ownerActor, dto.SaveAIConfigRequest{Provider: "openai"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	noSealer := NewAISettingsUseCase(memrepo.NewAIConfigs(), nil, serverAI)
	_, err = noSealer.Save(ctx, ownerActor, dto.SaveAIConfigRequest{Provider: entity.AIProviderGemini, APIKey: "AIzaSy0123456789"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAISettings_DeleteRestoresServer(t *testing.T) {
	uc := NewAISettingsUseCase(memrepo.NewAIConfigs(), prefixSealer{}, serverAI)
	ctx := context.Background()
	_, err := uc.Save(ctx, ownerActor, dto.SaveAIConfigRequest{Provider: entity.AIProviderAnthropic})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, ownerActor))
	out, err := uc.Get(ctx, ownerActor)
	require.NoError(t, err)
	assert.Equal(t, "server", out.Source)
}
