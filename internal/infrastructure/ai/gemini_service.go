package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que GeminiService implementa AIModel.
var _ ports.AIModel = (*GeminiService)(nil)

// GeminiService adaptador que implementa AIModel con el SDK de Google Gemini.
// Cada llamada abre su propio cliente; la clave puede ser la del servidor o la del usuario.
type GeminiService struct {
	apiKey string
	model  string
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{apiKey: apiKey, model: model}
}

func (s *GeminiService) Provider() string { return entity.AIProviderGemini }

func (s *GeminiService) open(ctx context.Context, system string) (*genai.Client, *genai.GenerativeModel, error) {
	if s.apiKey == "" {
		return nil, nil, fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, nil, fmt.Errorf("AI: crear cliente Gemini: %w", err)
	}
	m := client.GenerativeModel(s.model)
	m.SetTemperature(0.2) // baja temperatura para transcripciones más deterministas
	if system != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	return client, m, nil
}

// Vision envía el documento (imagen o PDF) junto con la instrucción.
func (s *GeminiService) Vision(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	client, m, err := s.open(ctx, "")
	if err != nil {
		return "", err
	}
	defer client.Close()

	resp, err := m.GenerateContent(ctx, genai.Text(prompt), genai.Blob{MIMEType: mimeType, Data: data})
	if err != nil {
		return "", wrapCallErr(ctx, "Gemini", err)
	}
	return geminiText(resp)
}

// Chat reproduce el historial en una sesión y envía el último turno del usuario.
func (s *GeminiService) Chat(ctx context.Context, system string, turns []ports.ChatTurn) (string, error) {
	if len(turns) == 0 {
		return "", fmt.Errorf("AI: conversación vacía")
	}
	client, m, err := s.open(ctx, system)
	if err != nil {
		return "", err
	}
	defer client.Close()

	cs := m.StartChat()
	for _, t := range turns[:len(turns)-1] {
		role := "user"
		if t.Role == entity.ChatRoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(t.Content)}})
	}
	resp, err := cs.SendMessage(ctx, genai.Text(turns[len(turns)-1].Content))
	if err != nil {
		return "", wrapCallErr(ctx, "Gemini", err)
	}
	return geminiText(resp)
}

func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta sin texto")
	}
	return b.String(), nil
}

// wrapCallErr distingue timeout/cancelación de los fallos del proveedor.
func wrapCallErr(ctx context.Context, provider string, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
	}
	return fmt.Errorf("AI: llamada a %s fallida: %w", provider, err)
}
