package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/events"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
	"github.com/jhoicas/vanbuilder-api/pkg/textnorm"
)

// CategoryUseCase administración de las categorías del catálogo.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	notifier *events.Notifier
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, notifier *events.Notifier) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, notifier: notifier}
}

// Create crea una categoría. Sin slug se deriva del nombre.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	slug := textnorm.Slug(in.Slug)
	if slug == "" {
		slug = textnorm.Slug(name)
	}
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != "" {
		if err := uc.checkParent(ctx, "", in.ParentID); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	c := &entity.Category{
		ID:        uuid.New().String(),
		ParentID:  in.ParentID,
		Name:      name,
		Slug:      slug,
		Position:  in.Position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "categories", entity.ChangeInsert, c.ID, "", "")
	return toCategoryResponse(c), nil
}

// List devuelve todas las categorías ordenadas por posición.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update aplica una actualización parcial. Un padre vacío convierte la categoría en raíz.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Name = name
	}
	if in.Slug != nil {
		slug := textnorm.Slug(*in.Slug)
		if slug == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Slug = slug
	}
	if in.Position != nil {
		c.Position = *in.Position
	}
	if in.ParentID != nil {
		if *in.ParentID != "" {
			if err := uc.checkParent(ctx, c.ID, *in.ParentID); err != nil {
				return nil, err
			}
		}
		c.ParentID = *in.ParentID
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "categories", entity.ChangeUpdate, c.ID, "", "")
	return toCategoryResponse(c), nil
}

// Delete elimina una categoría sin hijas; con hijas devuelve ErrConflict.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	n, err := uc.repo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.notifier.Changed(ctx, "categories", entity.ChangeDelete, id, "", "")
	return nil
}

// checkParent verifica que el padre existe y que no se forma un ciclo.
func (uc *CategoryUseCase) checkParent(ctx context.Context, selfID, parentID string) error {
	seen := map[string]bool{}
	for cur := parentID; cur != ""; {
		if cur == selfID || seen[cur] {
			return domain.ErrConflict
		}
		seen[cur] = true
		p, err := uc.repo.GetByID(ctx, cur)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		cur = p.ParentID
	}
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		Slug:      c.Slug,
		Position:  c.Position,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
