package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
)

func newProjectUC() (*ProjectUseCase, *memrepo.Projects) {
	repo := memrepo.NewProjects()
	return NewProjectUseCase(repo, NewProjectAccess(repo), nil), repo
}

func TestProject_CreateAndOwnership(t *testing.T) {
	uc, _ := newProjectUC()
	ctx := context.Background()

	p, err := uc.Create(ctx, ownerActor, dto.CreateProjectRequest{Name: " Sprinter 2018 ", Budget: decimal.NewFromInt(12000)})
	require.NoError(t, err)
	assert.Equal(t, "Sprinter 2018", p.Name)
	assert.Equal(t, entity.ProjectStatusPlanning, p.Status)
	assert.Equal(t, "u1", p.OwnerID)

	_, err = uc.Get(ctx, otherActor, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Get(ctx, adminActor, p.ID)
	assert.NoError(t, err)

	list, err := uc.List(ctx, otherActor, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestProject_UpdateValidation(t *testing.T) {
	uc, _ := newProjectUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, ownerActor, dto.CreateProjectRequest{Name: "Trafic"})
	require.NoError(t, err)

	bad := "archived"
	_, err = uc.Update(ctx, ownerActor, p.ID, dto.UpdateProjectRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := decimal.NewFromInt(-1)
	_, err = uc.Update(ctx, ownerActor, p.ID, dto.UpdateProjectRequest{Budget: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	done := entity.ProjectStatusCompleted
	out, err := uc.Update(ctx, ownerActor, p.ID, dto.UpdateProjectRequest{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusCompleted, out.Status)

	_, err = uc.Create(ctx, ownerActor, dto.CreateProjectRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProject_ApplyVehicleMergesNonEmpty(t *testing.T) {
	uc, repo := newProjectUC()
	ctx := context.Background()
	p := &entity.Project{ID: "p1", OwnerID: "u1", Vehicle: entity.Vehicle{Registration: "AB-123-CD", PTAC: 3500, Seats: 3}}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, uc.ApplyVehicle(ctx, p, entity.Vehicle{VIN: " VF1FL000123456789 ", EmptyMass: 2100}))

	stored, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "AB-123-CD", stored.Vehicle.Registration)
	assert.Equal(t, "VF1FL000123456789", stored.Vehicle.VIN)
	assert.Equal(t, 3500, stored.Vehicle.PTAC)
	assert.Equal(t, 2100, stored.Vehicle.EmptyMass)
	assert.Equal(t, 3, stored.Vehicle.Seats)
}

func TestProject_ApplyVehicleKeepsConcurrentEdits(t *testing.T) {
	uc, repo := newProjectUC()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Project{ID: "p1", OwnerID: "u1", Name: "Trafic", Vehicle: entity.Vehicle{PTAC: 3000}}))
	stale, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)

	renamed := "Trafic L2H2"
	_, err = uc.Update(ctx, ownerActor, "p1", dto.UpdateProjectRequest{Name: &renamed})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateVehicle(ctx, "p1", entity.Vehicle{PTAC: 3500, Seats: 4}, stale.UpdatedAt))

	require.NoError(t, uc.ApplyVehicle(ctx, stale, entity.Vehicle{Registration: "EF-456-GH"}))

	stored, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Trafic L2H2", stored.Name)
	assert.Equal(t, 3500, stored.Vehicle.PTAC)
	assert.Equal(t, 4, stored.Vehicle.Seats)
	assert.Equal(t, "EF-456-GH", stored.Vehicle.Registration)
	assert.Equal(t, "Trafic L2H2", stale.Name, "el llamador recibe la fila actual")
}

func TestCategory_HierarchyRules(t *testing.T) {
	uc := NewCategoryUseCase(memrepo.NewCategories(), nil)
	ctx := context.Background()

	root, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Électricité & 12V"})
	require.NoError(t, err)
	assert.Equal(t, "electricite-12v", root.Slug)

	child, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Batteries", ParentID: root.ID})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "Electricite 12V"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "X", ParentID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, root.ID, dto.UpdateCategoryRequest{ParentID: &child.ID})
	assert.ErrorIs(t, err, domain.ErrConflict, "una categoría no puede colgar de su descendiente")

	assert.ErrorIs(t, uc.Delete(ctx, root.ID), domain.ErrConflict)
	require.NoError(t, uc.Delete(ctx, child.ID))
	require.NoError(t, uc.Delete(ctx, root.ID))
	assert.ErrorIs(t, uc.Delete(ctx, root.ID), domain.ErrNotFound)
}
