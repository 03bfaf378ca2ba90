package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/fakes"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
	"github.com/jhoicas/vanbuilder-api/pkg/config"
)

type built struct{ provider, key, model string }

type reverseSealer struct{}

func (reverseSealer) Seal(p string) (string, error) { return "x" + p, nil }
func (reverseSealer) Open(s string) (string, error) { return s[1:], nil }

func recordingFactory(out *built) ModelFactory {
	return func(provider, apiKey, model string) ports.AIModel {
		*out = built{provider, apiKey, model}
		return &fakes.Model{}
	}
}

var serverCfg = config.AIConfig{
	DefaultProvider: entity.AIProviderGemini,
	GeminiAPIKey:    "srv-gemini",
	GeminiModel:     "gemini-1.5-flash",
	AnthropicModel:  "claude-3-5-haiku-20241022",
}

func TestResolver_ServerDefaults(t *testing.T) {
	var got built
	r := NewResolver(memrepo.NewAIConfigs(), reverseSealer{}, serverCfg, recordingFactory(&got))

	_, err := r.Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, built{"gemini", "srv-gemini", "gemini-1.5-flash"}, got)
}

func TestResolver_UserConfigWins(t *testing.T) {
	ctx := context.Background()
	repo := memrepo.NewAIConfigs()
	require.NoError(t, repo.Upsert(ctx, &entity.AIConfig{UserID: "u1", Provider: entity.AIProviderAnthropic, APIKeyEncrypted: "xsk-ant"}))

	var got built
	r := NewResolver(repo, reverseSealer{}, serverCfg, recordingFactory(&got))
	_, err := r.Resolve(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, built{"anthropic", "sk-ant", "claude-3-5-haiku-20241022"}, got)
}

func TestResolver_NoKeyAnywhere(t *testing.T) {
	ctx := context.Background()
	repo := memrepo.NewAIConfigs()
	require.NoError(t, repo.Upsert(ctx, &entity.AIConfig{UserID: "u1", Provider: entity.AIProviderAnthropic, Model: "claude-sonnet"}))

	var got built
	r := NewResolver(repo, reverseSealer{}, serverCfg, recordingFactory(&got))
	_, err := r.Resolve(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrAINotConfigured)

	_, err = NewResolver(nil, nil, config.AIConfig{DefaultProvider: "gemini"}, nil).Resolve(ctx, "")
	assert.ErrorIs(t, err, domain.ErrAINotConfigured)
}

func TestNewModel_PicksAdapter(t *testing.T) {
	assert.Equal(t, entity.AIProviderAnthropic, NewModel("anthropic", "k", "m").Provider())
	assert.Equal(t, entity.AIProviderGemini, NewModel("gemini", "k", "m").Provider())
}
