package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
)

var (
	ownerActor = dto.Actor{UserID: "u1", Role: entity.RoleUser}
	otherActor = dto.Actor{UserID: "u2", Role: entity.RoleUser}
	adminActor = dto.Actor{UserID: "root", Role: entity.RoleAdmin}
)

func newScenarioUC(t *testing.T) (*ScenarioUseCase, *memrepo.Scenarios) {
	t.Helper()
	projects := memrepo.NewProjects(&entity.Project{ID: "p1", OwnerID: "u1", Name: "Sprinter"})
	accessories := memrepo.NewAccessories(
		&entity.Accessory{ID: "bat", Reference: "BAT-200", Price: decimal.NewFromInt(600), WeightKg: decimal.RequireFromString("21.5"), PowerW: decimal.Zero},
		&entity.Accessory{ID: "fridge", Reference: "FRIGO-50", Price: decimal.NewFromInt(450), WeightKg: decimal.NewFromInt(15), PowerW: decimal.NewFromInt(45)},
	)
	repo := memrepo.NewScenarios()
	uc := NewScenarioUseCase(repo, accessories, memrepo.ScenarioTx{Repo: repo}, NewProjectAccess(projects), nil)
	return uc, repo
}

func countPrincipals(t *testing.T, repo *memrepo.Scenarios, projectID string) int {
	t.Helper()
	list, err := repo.ListByProject(context.Background(), projectID)
	require.NoError(t, err)
	n := 0
	for _, s := range list {
		if s.IsPrincipal {
			n++
		}
	}
	return n
}

func TestScenario_CreateFirstIsPrincipal(t *testing.T) {
	uc, repo := newScenarioUC(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, ownerActor, "p1", dto.CreateScenarioRequest{Name: "Solaire"})
	require.NoError(t, err)
	second, err := uc.Create(ctx, ownerActor, "p1", dto.CreateScenarioRequest{Name: "Confort"})
	require.NoError(t, err)

	assert.True(t, first.IsPrincipal)
	assert.False(t, second.IsPrincipal)
	assert.Equal(t, 1, countPrincipals(t, repo, "p1"))
}

func TestScenario_SetPrincipalKeepsSingle(t *testing.T) {
	uc, repo := newScenarioUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, ownerActor, "p1", dto.CreateScenarioRequest{Name: "A"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, ownerActor, "p1", dto.CreateScenarioRequest{Name: "B"})
	require.NoError(t, err)

	out, err := uc.SetPrincipal(ctx, ownerActor, b.ID)
	require.NoError(t, err)
	assert.True(t, out.IsPrincipal)

	principal, err := repo.GetPrincipal(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, b.ID, principal.ID)
	assert.Equal(t, 1, countPrincipals(t, repo, "p1"))
}

func TestScenario_DeletePrincipalPromotesOldest(t *testing.T) {
	uc, repo := newScenarioUC(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, s := range []*entity.Scenario{
		{ID: "s-main", ProjectID: "p1", Name: "Main", IsPrincipal: true, CreatedAt: base},
		{ID: "s-new", ProjectID: "p1", Name: "Newest", CreatedAt: base.Add(48 * time.Hour)},
		{ID: "s-old", ProjectID: "p1", Name: "Oldest", CreatedAt: base.Add(24 * time.Hour)},
	} {
		require.NoError(t, repo.Create(ctx, s))
	}

	require.NoError(t, uc.Delete(ctx, ownerActor, "s-main"))

	principal, err := repo.GetPrincipal(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, "s-old", principal.ID)
	assert.Equal(t, 1, countPrincipals(t, repo, "p1"))
}

func TestScenario_DeleteNonPrincipalLeavesPrincipal(t *testing.T) {
	uc, repo := newScenarioUC(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Scenario{ID: "a", ProjectID: "p1", IsPrincipal: true}))
	require.NoError(t, repo.Create(ctx, &entity.Scenario{ID: "b", ProjectID: "p1"}))

	require.NoError(t, uc.Delete(ctx, ownerActor, "b"))

	principal, err := repo.GetPrincipal(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, "a", principal.ID)
}

// hookedScenarioTx ejecuta before una sola vez justo antes de abrir la transacción.
type hookedScenarioTx struct {
	inner  memrepo.ScenarioTx
	before func()
}

func (h *hookedScenarioTx) RunScenarios(ctx context.Context, fn func(repository.ScenarioRepository) error) error {
	if h.before != nil {
		run := h.before
		h.before = nil
		run()
	}
	return h.inner.RunScenarios(ctx, fn)
}

func newHookedScenarioUC(t *testing.T) (*ScenarioUseCase, *ScenarioUseCase, *hookedScenarioTx, *memrepo.Scenarios) {
	t.Helper()
	plain, repo := newScenarioUC(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Scenario{ID: "a", ProjectID: "p1", IsPrincipal: true}))
	require.NoError(t, repo.Create(ctx, &entity.Scenario{ID: "b", ProjectID: "p1"}))
	tx := &hookedScenarioTx{inner: memrepo.ScenarioTx{Repo: repo}}
	hooked := NewScenarioUseCase(repo, memrepo.NewAccessories(), tx,
		NewProjectAccess(memrepo.NewProjects(&entity.Project{ID: "p1", OwnerID: "u1"})), nil)
	return hooked, plain, tx, repo
}

func TestScenario_DeleteUsesPrincipalFlagReadUnderLock(t *testing.T) {
	hooked, plain, tx, repo := newHookedScenarioUC(t)
	ctx := context.Background()
	tx.before = func() {
		_, err := plain.SetPrincipal(ctx, ownerActor, "b")
		require.NoError(t, err)
	}

	require.NoError(t, hooked.Delete(ctx, ownerActor, "b"))

	assert.Equal(t, 1, countPrincipals(t, repo, "p1"))
	principal, err := repo.GetPrincipal(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, "a", principal.ID)
}

func TestScenario_SetPrincipalOnScenarioDeletedMeanwhile(t *testing.T) {
	hooked, plain, tx, repo := newHookedScenarioUC(t)
	ctx := context.Background()
	tx.before = func() {
		require.NoError(t, plain.Delete(ctx, ownerActor, "b"))
	}

	_, err := hooked.SetPrincipal(ctx, ownerActor, "b")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, countPrincipals(t, repo, "p1"))
}

func TestScenario_SetItemsMergesAndTotals(t *testing.T) {
	uc, _ := newScenarioUC(t)
	ctx := context.Background()
	s, err := uc.Create(ctx, ownerActor, "p1", dto.CreateScenarioRequest{Name: "Autonomie"})
	require.NoError(t, err)

	out, err := uc.SetItems(ctx, ownerActor, s.ID, dto.SetScenarioItemsRequest{Items: []dto.ScenarioItemDTO{
		{AccessoryID: "bat", Quantity: 1},
		{AccessoryID: "fridge", Quantity: 1},
		{AccessoryID: "bat", Quantity: 1},
	}})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, dto.ScenarioItemDTO{AccessoryID: "bat", Quantity: 2}, out.Items[0])

	totals, err := uc.Totals(ctx, ownerActor, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "1650", totals.Price.String())
	assert.Equal(t, "58", totals.WeightKg.String())
	assert.Equal(t, "45", totals.PowerW.String())
	assert.Equal(t, 3, totals.ItemCount)
}

func TestScenario_UnknownAccessory(t *testing.T) {
	uc, _ := newScenarioUC(t)
	_, err := uc.Create(context.Background(), ownerActor, "p1", dto.CreateScenarioRequest{
		Name:  "X",
		Items: []dto.ScenarioItemDTO{{AccessoryID: "ghost", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScenario_Access(t *testing.T) {
	uc, _ := newScenarioUC(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, otherActor, "p1", dto.CreateScenarioRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(ctx, ownerActor, "missing", dto.CreateScenarioRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.List(ctx, ownerActor, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, adminActor, "p1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
