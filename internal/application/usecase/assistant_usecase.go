package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
	"github.com/jhoicas/vanbuilder-api/pkg/textnorm"
)

const (
	assistantSources     = 5
	assistantHistory     = 6
	assistantContextSize = 1500

	assistantSystemPrompt = `Tu es l'assistant technique d'un atelier d'aménagement de fourgons et camping-cars.
Réponds en français, de façon concise et concrète. Appuie-toi en priorité sur les extraits de notices fournis
et cite le titre de la notice utilisée. Si les notices ne permettent pas de répondre, dis-le clairement
avant de donner une réponse générale.`
)

// AssistantUseCase asistente IA que responde apoyándose en las notices indexadas.
type AssistantUseCase struct {
	notices   repository.NoticeRepository
	messages  repository.ChatMessageRepository
	access    *ProjectAccess
	ai        ports.AIResolver
	aiTimeout time.Duration
}

// NewAssistantUseCase construye el caso de uso.
func NewAssistantUseCase(
	notices repository.NoticeRepository,
	messages repository.ChatMessageRepository,
	access *ProjectAccess,
	ai ports.AIResolver,
	aiTimeout time.Duration,
) *AssistantUseCase {
	return &AssistantUseCase{notices: notices, messages: messages, access: access, ai: ai, aiTimeout: aiTimeout}
}

// Ask busca las 5 notices más relevantes, pregunta al modelo con ese contexto y guarda
// pregunta y respuesta en el historial.
func (uc *AssistantUseCase) Ask(ctx context.Context, actor dto.Actor, in dto.AskRequest) (*dto.AskResponse, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}
	var project *entity.Project
	if in.ProjectID != "" {
		p, err := uc.access.Authorize(ctx, actor, in.ProjectID)
		if err != nil {
			return nil, err
		}
		project = p
	}
	model, err := uc.ai.Resolve(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	var hits []entity.NoticeHit
	if tsq := textnorm.TSQuery(question); tsq != "" {
		hits, err = uc.notices.Search(ctx, tsq, assistantSources)
		if err != nil {
			return nil, err
		}
	}
	history, err := uc.messages.ListByUser(ctx, actor.UserID, assistantHistory)
	if err != nil {
		return nil, err
	}

	turns := make([]ports.ChatTurn, 0, len(history)+1)
	for _, m := range history {
		turns = append(turns, ports.ChatTurn{Role: m.Role, Content: m.Content})
	}
	turns = append(turns, ports.ChatTurn{
		Role:    entity.ChatRoleUser,
		Content: buildAssistantPrompt(question, project, hits, textnorm.Tokens(question)),
	})

	aiCtx, cancel := context.WithTimeout(ctx, uc.aiTimeout)
	defer cancel()
	answer, err := model.Chat(aiCtx, assistantSystemPrompt, turns)
	if err != nil {
		return nil, fmt.Errorf("asistente: %w", err)
	}
	answer = strings.TrimSpace(answer)

	sources := make([]string, 0, len(hits))
	resp := &dto.AskResponse{Answer: answer, Sources: make([]dto.NoticeResponse, 0, len(hits))}
	for _, h := range hits {
		sources = append(sources, h.Notice.ID)
		resp.Sources = append(resp.Sources, *ToNoticeResponse(h.Notice))
	}

	now := time.Now()
	for _, m := range []*entity.ChatMessage{
		{ID: uuid.New().String(), UserID: actor.UserID, Role: entity.ChatRoleUser, Content: question, Sources: []string{}, CreatedAt: now},
		{ID: uuid.New().String(), UserID: actor.UserID, Role: entity.ChatRoleAssistant, Content: answer, Sources: sources, CreatedAt: now.Add(time.Millisecond)},
	} {
		if err := uc.messages.Create(ctx, m); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// History devuelve los últimos mensajes en orden cronológico.
func (uc *AssistantUseCase) History(ctx context.Context, actor dto.Actor, limit int) ([]dto.ChatMessageResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := uc.messages.ListByUser(ctx, actor.UserID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChatMessageResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ChatMessageResponse{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			Sources:   m.Sources,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// ClearHistory borra el historial del actor.
func (uc *AssistantUseCase) ClearHistory(ctx context.Context, actor dto.Actor) error {
	return uc.messages.DeleteByUser(ctx, actor.UserID)
}

func buildAssistantPrompt(question string, p *entity.Project, hits []entity.NoticeHit, tokens []string) string {
	var b strings.Builder
	if p != nil {
		v := p.Vehicle
		fmt.Fprintf(&b, "Véhicule du projet « %s » : %s %s %s, PTAC %d kg, masse à vide %d kg.\n\n",
			p.Name, v.Brand, v.Type, v.CommercialName, v.PTAC, v.EmptyMass)
	}
	if len(hits) == 0 {
		b.WriteString("Aucune notice pertinente trouvée.\n\n")
	} else {
		b.WriteString("Extraits de notices :\n")
		for i, h := range hits {
			n := h.Notice
			fmt.Fprintf(&b, "[%d] %s (%s)\n%s\n\n", i+1, n.Title, n.Brand, Excerpt(n.Content, tokens, assistantContextSize))
		}
	}
	b.WriteString("Question : ")
	b.WriteString(question)
	return b.String()
}
