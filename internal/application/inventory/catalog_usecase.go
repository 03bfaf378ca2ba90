package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/events"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// CatalogUseCase administración del catálogo de accesorios y listado de la tienda.
type CatalogUseCase struct {
	repo         repository.AccessoryRepository
	movRepo      repository.StockMovementRepository
	categoryRepo repository.CategoryRepository
	notifier     *events.Notifier
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	repo repository.AccessoryRepository,
	movRepo repository.StockMovementRepository,
	categoryRepo repository.CategoryRepository,
	notifier *events.Notifier,
) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, movRepo: movRepo, categoryRepo: categoryRepo, notifier: notifier}
}

// Create da de alta un accesorio sin stock (admin). El stock entra por movimientos IN.
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.CreateAccessoryRequest) (*dto.AccessoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	ref := strings.ToUpper(strings.TrimSpace(in.Reference))
	if name == "" || ref == "" || in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.WeightKg.IsNegative() || in.PowerW.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now()
	a := &entity.Accessory{
		ID:                uuid.New().String(),
		CategoryID:        in.CategoryID,
		Name:              name,
		Brand:             in.Brand,
		Reference:         ref,
		Description:       in.Description,
		Price:             in.Price,
		Cost:              decimal.Zero,
		WeightKg:          in.WeightKg,
		PowerW:            in.PowerW,
		LowStockThreshold: in.LowStockThreshold,
		StockStatus:       entity.StockStatusFor(0, in.LowStockThreshold),
		Published:         in.Published,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "accessories", entity.ChangeInsert, a.ID, "", "")
	return ToAccessoryResponse(a, true), nil
}

// Get devuelve un accesorio. Los no publicados solo son visibles para administradores.
func (uc *CatalogUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.AccessoryResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Published && !actor.IsAdmin() {
		return nil, domain.ErrNotFound
	}
	return ToAccessoryResponse(a, actor.IsAdmin()), nil
}

// List filtra por categoría y texto. Los no administradores solo ven accesorios publicados.
func (uc *CatalogUseCase) List(ctx context.Context, actor dto.Actor, in dto.AccessoryFilterRequest) ([]dto.AccessoryResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.AccessoryFilter{
		CategoryID:    in.CategoryID,
		Query:         strings.TrimSpace(in.Query),
		PublishedOnly: !actor.IsAdmin(),
		Limit:         in.Limit,
		Offset:        in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccessoryResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *ToAccessoryResponse(a, actor.IsAdmin()))
	}
	return out, nil
}

// Update aplica una actualización parcial (admin). Cambiar el umbral recalcula el estado de stock
// salvo que se fuerce uno explícitamente.
func (uc *CatalogUseCase) Update(ctx context.Context, id string, in dto.UpdateAccessoryRequest) (*dto.AccessoryResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		a.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		a.Name = name
	}
	if in.Brand != nil {
		a.Brand = *in.Brand
	}
	if in.Reference != nil {
		ref := strings.ToUpper(strings.TrimSpace(*in.Reference))
		if ref == "" {
			return nil, domain.ErrInvalidInput
		}
		a.Reference = ref
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	for _, f := range []struct {
		src *decimal.Decimal
		dst *decimal.Decimal
	}{{in.Price, &a.Price}, {in.WeightKg, &a.WeightKg}, {in.PowerW, &a.PowerW}} {
		if f.src == nil {
			continue
		}
		if f.src.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		*f.dst = *f.src
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		a.LowStockThreshold = *in.LowStockThreshold
		a.StockStatus = entity.StockStatusFor(a.StockQuantity, a.LowStockThreshold)
	}
	if in.StockStatus != nil {
		if !entity.ValidStockStatus(*in.StockStatus) {
			return nil, domain.ErrInvalidInput
		}
		a.StockStatus = *in.StockStatus
	}
	if in.Published != nil {
		a.Published = *in.Published
	}
	if in.ImageKey != nil {
		a.ImageKey = *in.ImageKey
	}
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "accessories", entity.ChangeUpdate, a.ID, "", "")
	return ToAccessoryResponse(a, true), nil
}

// Delete elimina un accesorio (admin).
func (uc *CatalogUseCase) Delete(ctx context.Context, id string) error {
	a, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, a.ID); err != nil {
		return err
	}
	uc.notifier.Changed(ctx, "accessories", entity.ChangeDelete, a.ID, "", "")
	return nil
}

// Movements lista el historial de movimientos de stock de un accesorio (admin).
func (uc *CatalogUseCase) Movements(ctx context.Context, id string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	if _, err := uc.load(ctx, id); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.movRepo.ListByAccessory(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:          m.ID,
			AccessoryID: m.AccessoryID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			UnitCost:    m.UnitCost,
			Reference:   m.Reference,
			CreatedBy:   m.CreatedBy,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

func (uc *CatalogUseCase) load(ctx context.Context, id string) (*entity.Accessory, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (uc *CatalogUseCase) checkCategory(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return nil
}

// ToAccessoryResponse convierte el accesorio a DTO; el costo solo se expone si withCost.
func ToAccessoryResponse(a *entity.Accessory, withCost bool) *dto.AccessoryResponse {
	out := &dto.AccessoryResponse{
		ID:                a.ID,
		CategoryID:        a.CategoryID,
		Name:              a.Name,
		Brand:             a.Brand,
		Reference:         a.Reference,
		Description:       a.Description,
		Price:             a.Price,
		WeightKg:          a.WeightKg,
		PowerW:            a.PowerW,
		StockQuantity:     a.StockQuantity,
		LowStockThreshold: a.LowStockThreshold,
		StockStatus:       a.StockStatus,
		Published:         a.Published,
		ImageKey:          a.ImageKey,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if withCost {
		cost := a.Cost
		out.Cost = &cost
	}
	return out
}
