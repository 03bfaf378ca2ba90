package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/fakes"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
)

func newAssistant(model *fakes.Model) (*AssistantUseCase, *memrepo.ChatMessages) {
	notices := memrepo.NewNotices(
		&entity.Notice{ID: "n1", Title: "Chauffage Autoterm", Brand: "Autoterm", Content: "Le chauffage diesel demande une purge annuelle.", Indexed: true},
		&entity.Notice{ID: "n2", Title: "Réfrigérateur", Brand: "Dometic", Content: "Dégivrer le réfrigérateur chaque mois.", Indexed: true},
	)
	projects := memrepo.NewProjects(&entity.Project{
		ID: "p1", OwnerID: "u1", Name: "Sprinter",
		Vehicle: entity.Vehicle{Brand: "MERCEDES", Type: "906", PTAC: 3500, EmptyMass: 2400},
	})
	messages := &memrepo.ChatMessages{}
	var resolver fakes.Resolver
	if model != nil {
		resolver.Model = model
	}
	return NewAssistantUseCase(notices, messages, NewProjectAccess(projects), resolver, time.Second), messages
}

func TestAssistant_AskUsesNoticesAndPersists(t *testing.T) {
	model := &fakes.Model{Replies: []string{"  Purgez le chauffage une fois par an (notice Chauffage Autoterm).  "}}
	uc, messages := newAssistant(model)

	out, err := uc.Ask(context.Background(), ownerActor, dto.AskRequest{Question: "Entretien du chauffage ?", ProjectID: "p1"})
	require.NoError(t, err)

	assert.Equal(t, "Purgez le chauffage une fois par an (notice Chauffage Autoterm).", out.Answer)
	require.Len(t, out.Sources, 1)
	assert.Equal(t, "n1", out.Sources[0].ID)

	require.Len(t, model.Turns, 1)
	turns := model.Turns[0]
	require.Len(t, turns, 1)
	assert.Equal(t, entity.ChatRoleUser, turns[0].Role)
	assert.Contains(t, turns[0].Content, "PTAC 3500 kg")
	assert.Contains(t, turns[0].Content, "[1] Chauffage Autoterm (Autoterm)")
	assert.Contains(t, turns[0].Content, "Question : Entretien du chauffage ?")

	require.Len(t, messages.List, 2)
	assert.Equal(t, entity.ChatRoleUser, messages.List[0].Role)
	assert.Equal(t, entity.ChatRoleAssistant, messages.List[1].Role)
	assert.Equal(t, []string{"n1"}, messages.List[1].Sources)
}

func TestAssistant_HistoryIsBoundedAndSent(t *testing.T) {
	model := &fakes.Model{Replies: []string{"ok"}}
	uc, messages := newAssistant(model)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		role := entity.ChatRoleUser
		if i%2 == 1 {
			role = entity.ChatRoleAssistant
		}
		require.NoError(t, messages.Create(ctx, &entity.ChatMessage{
			ID: fmt.Sprintf("m%d", i), UserID: "u1", Role: role, Content: fmt.Sprintf("tour %d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	_, err := uc.Ask(ctx, ownerActor, dto.AskRequest{Question: "Quelle batterie choisir ?"})
	require.NoError(t, err)

	turns := model.Turns[0]
	require.Len(t, turns, assistantHistory+1)
	assert.Equal(t, "tour 4", turns[0].Content)
	assert.Contains(t, turns[len(turns)-1].Content, "Aucune notice pertinente")

	history, err := uc.History(ctx, ownerActor, 0)
	require.NoError(t, err)
	assert.Len(t, history, 12)

	require.NoError(t, uc.ClearHistory(ctx, ownerActor))
	history, err = uc.History(ctx, ownerActor, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAssistant_Errors(t *testing.T) {
	uc, messages := newAssistant(nil)
	ctx := context.Background()

	_, err := uc.Ask(ctx, ownerActor, dto.AskRequest{Question: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Ask(ctx, otherActor, dto.AskRequest{Question: "frigo ?", ProjectID: "p1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Ask(ctx, ownerActor, dto.AskRequest{Question: "frigo ?"})
	assert.ErrorIs(t, err, domain.ErrAINotConfigured)

	failing := &fakes.Model{Err: errors.New("quota")}
	uc, messages = newAssistant(failing)
	_, err = uc.Ask(ctx, ownerActor, dto.AskRequest{Question: "frigo ?"})
	assert.Error(t, err)
	assert.Empty(t, messages.List, "sin respuesta no se guarda nada")
}
