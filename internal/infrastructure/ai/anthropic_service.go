package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que AnthropicService implementa AIModel.
var _ ports.AIModel = (*AnthropicService)(nil)

const (
	anthropicBaseURL  = "https://api.anthropic.com"
	anthropicVersion  = "2023-06-01"
	anthropicMaxToken = 4096
)

// AnthropicService adaptador que implementa AIModel usando la API Messages de Anthropic (Claude).
type AnthropicService struct {
	apiKey string
	model  string
	http   *resty.Client
}

// NewAnthropicService construye el adaptador. model suele ser "claude-3-5-haiku-20241022".
// Los 429 y 5xx se reintentan dos veces con espera creciente.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	client := resty.New().
		SetBaseURL(anthropicBaseURL).
		SetTimeout(60*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return r == nil || r.Request == nil || r.Request.Context().Err() == nil
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		}).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("content-type", "application/json")
	return newAnthropicWithClient(apiKey, model, client)
}

func newAnthropicWithClient(apiKey, model string, client *resty.Client) *AnthropicService {
	return &AnthropicService{apiKey: apiKey, model: model, http: client}
}

func (s *AnthropicService) Provider() string { return entity.AIProviderAnthropic }

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string           `json:"role"`
	Content []anthropicBlock `json:"content"`
}

type anthropicBlock struct {
	Type   string           `json:"type"` // text | image | document
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"` // base64
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type anthropicError struct {
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Vision envía el documento como bloque image (o document para PDF) seguido de la instrucción.
func (s *AnthropicService) Vision(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	kind := "image"
	if mimeType == "application/pdf" {
		kind = "document"
	}
	msg := anthropicMessage{
		Role: "user",
		Content: []anthropicBlock{
			{Type: kind, Source: &anthropicSource{Type: "base64", MediaType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}},
			{Type: "text", Text: prompt},
		},
	}
	return s.send(ctx, "", []anthropicMessage{msg})
}

// Chat envía la instrucción de sistema y todos los turnos.
func (s *AnthropicService) Chat(ctx context.Context, system string, turns []ports.ChatTurn) (string, error) {
	if len(turns) == 0 {
		return "", fmt.Errorf("AI: conversación vacía")
	}
	msgs := make([]anthropicMessage, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Role == entity.ChatRoleAssistant {
			role = "assistant"
		}
		msgs = append(msgs, anthropicMessage{Role: role, Content: []anthropicBlock{{Type: "text", Text: t.Content}}})
	}
	return s.send(ctx, system, msgs)
}

func (s *AnthropicService) send(ctx context.Context, system string, msgs []anthropicMessage) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}
	var out anthropicResponse
	var apiErr anthropicError
	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("x-api-key", s.apiKey).
		SetBody(anthropicRequest{Model: s.model, MaxTokens: anthropicMaxToken, System: system, Messages: msgs}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1/messages")
	if err != nil {
		return "", wrapCallErr(ctx, "Anthropic", err)
	}
	if resp.IsError() {
		if apiErr.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", apiErr.Error.Type, apiErr.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", resp.StatusCode())
	}

	var b strings.Builder
	for _, c := range out.Content {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return b.String(), nil
}
