package usecase

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

// ScenarioTxRunner ejecuta fn dentro de una transacción con el repositorio de escenarios atado a ella.
// Garantiza el invariante de escenario principal único por proyecto.
type ScenarioTxRunner interface {
	RunScenarios(ctx context.Context, fn func(repo repository.ScenarioRepository) error) error
}

// ScenarioUseCase casos de uso de escenarios de aménagement.
type ScenarioUseCase struct {
	repo          repository.ScenarioRepository
	accessoryRepo repository.AccessoryRepository
	tx            ScenarioTxRunner
	access        *ProjectAccess
	notifier      *events.Notifier
}

// NewScenarioUseCase construye el caso de uso.
func NewScenarioUseCase(
	repo repository.ScenarioRepository,
	accessoryRepo repository.AccessoryRepository,
	tx ScenarioTxRunner,
	access *ProjectAccess,
	notifier *events.Notifier,
) *ScenarioUseCase {
	return &ScenarioUseCase{repo: repo, accessoryRepo: accessoryRepo, tx: tx, access: access, notifier: notifier}
}

// Create crea un escenario. El primero de un proyecto queda como principal.
func (uc *ScenarioUseCase) Create(ctx context.Context, actor dto.Actor, projectID string, in dto.CreateScenarioRequest) (*dto.ScenarioResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.normalizeItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Scenario{
		ID:          uuid.New().String(),
		ProjectID:   p.ID,
		Name:        name,
		Description: in.Description,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.tx.RunScenarios(ctx, func(repo repository.ScenarioRepository) error {
		if err := repo.LockProject(ctx, p.ID); err != nil {
			return err
		}
		principal, err := repo.GetPrincipal(ctx, p.ID)
		if err != nil {
			return err
		}
		s.IsPrincipal = principal == nil
		if err := repo.Create(ctx, s); err != nil {
			return err
		}
		return repo.ReplaceItems(ctx, s.ID, s.Items)
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "scenarios", entity.ChangeInsert, s.ID, p.ID, p.OwnerID)
	return toScenarioResponse(s), nil
}

// Get devuelve un escenario con sus ítems.
func (uc *ScenarioUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.ScenarioResponse, error) {
	s, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toScenarioResponse(s), nil
}

// List devuelve los escenarios de un proyecto por fecha de creación.
func (uc *ScenarioUseCase) List(ctx context.Context, actor dto.Actor, projectID string) ([]dto.ScenarioResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScenarioResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toScenarioResponse(s))
	}
	return out, nil
}

// Update modifica nombre y/o descripción.
func (uc *ScenarioUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateScenarioRequest) (*dto.ScenarioResponse, error) {
	s, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		s.Name = name
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "scenarios", entity.ChangeUpdate, s.ID, p.ID, p.OwnerID)
	return toScenarioResponse(s), nil
}

// SetItems reemplaza la lista de ítems. Las líneas repetidas de un mismo accesorio se suman.
func (uc *ScenarioUseCase) SetItems(ctx context.Context, actor dto.Actor, id string, in dto.SetScenarioItemsRequest) (*dto.ScenarioResponse, error) {
	s, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.normalizeItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	err = uc.tx.RunScenarios(ctx, func(repo repository.ScenarioRepository) error {
		return repo.ReplaceItems(ctx, s.ID, items)
	})
	if err != nil {
		return nil, err
	}
	s.Items = items
	uc.notifier.Changed(ctx, "scenarios", entity.ChangeUpdate, s.ID, p.ID, p.OwnerID)
	return toScenarioResponse(s), nil
}

// SetPrincipal marca el escenario como principal y desmarca a sus hermanos en una sola transacción.
// El estado se relee con el proyecto bloqueado.
func (uc *ScenarioUseCase) SetPrincipal(ctx context.Context, actor dto.Actor, id string) (*dto.ScenarioResponse, error) {
	s, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	changed := false
	err = uc.tx.RunScenarios(ctx, func(repo repository.ScenarioRepository) error {
		if err := repo.LockProject(ctx, p.ID); err != nil {
			return err
		}
		fresh, err := repo.GetByID(ctx, s.ID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return domain.ErrNotFound
		}
		s = fresh
		if s.IsPrincipal {
			return nil
		}
		if err := repo.ClearPrincipal(ctx, p.ID); err != nil {
			return err
		}
		changed = true
		return repo.MarkPrincipal(ctx, s.ID)
	})
	if err != nil {
		return nil, err
	}
	s.IsPrincipal = true
	if changed {
		uc.notifier.Changed(ctx, "scenarios", entity.ChangeUpdate, s.ID, p.ID, p.OwnerID)
	}
	return toScenarioResponse(s), nil
}

// Delete elimina el escenario. Si era el principal, promueve el más antiguo de los restantes.
func (uc *ScenarioUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	s, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	err = uc.tx.RunScenarios(ctx, func(repo repository.ScenarioRepository) error {
		if err := repo.LockProject(ctx, p.ID); err != nil {
			return err
		}
		fresh, err := repo.GetByID(ctx, s.ID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return domain.ErrNotFound
		}
		if err := repo.Delete(ctx, s.ID); err != nil {
			return err
		}
		if !fresh.IsPrincipal {
			return nil
		}
		rest, err := repo.ListByProject(ctx, p.ID)
		if err != nil {
			return err
		}
		if len(rest) == 0 {
			return nil
		}
		return repo.MarkPrincipal(ctx, rest[0].ID)
	})
	if err != nil {
		return err
	}
	uc.notifier.Changed(ctx, "scenarios", entity.ChangeDelete, s.ID, p.ID, p.OwnerID)
	return nil
}

// Totals suma precio, peso y potencia de los accesorios del escenario.
func (uc *ScenarioUseCase) Totals(ctx context.Context, actor dto.Actor, id string) (*dto.ScenarioTotalsResponse, error) {
	s, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ComputeScenarioTotals(ctx, uc.accessoryRepo, s)
}

// ComputeScenarioTotals suma los atributos de los accesorios de un escenario.
// Los accesorios eliminados del catálogo se ignoran.
func ComputeScenarioTotals(ctx context.Context, accessoryRepo repository.AccessoryRepository, s *entity.Scenario) (*dto.ScenarioTotalsResponse, error) {
	ids := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.AccessoryID)
	}
	byID, err := accessoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := &dto.ScenarioTotalsResponse{
		ScenarioID: s.ID,
		Price:      decimal.Zero,
		WeightKg:   decimal.Zero,
		PowerW:     decimal.Zero,
	}
	for _, it := range s.Items {
		a, ok := byID[it.AccessoryID]
		if !ok {
			continue
		}
		q := decimal.NewFromInt(int64(it.Quantity))
		out.Price = out.Price.Add(a.Price.Mul(q))
		out.WeightKg = out.WeightKg.Add(a.WeightKg.Mul(q))
		out.PowerW = out.PowerW.Add(a.PowerW.Mul(q))
		out.ItemCount += it.Quantity
	}
	return out, nil
}

func (uc *ScenarioUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Scenario, *entity.Project, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s == nil {
		return nil, nil, domain.ErrNotFound
	}
	p, err := uc.access.Authorize(ctx, actor, s.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return s, p, nil
}

func (uc *ScenarioUseCase) normalizeItems(ctx context.Context, in []dto.ScenarioItemDTO) ([]entity.ScenarioItem, error) {
	qty := make(map[string]int, len(in))
	var order []string
	for _, it := range in {
		if it.AccessoryID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if _, seen := qty[it.AccessoryID]; !seen {
			order = append(order, it.AccessoryID)
		}
		qty[it.AccessoryID] += it.Quantity
	}
	if len(order) == 0 {
		return []entity.ScenarioItem{}, nil
	}
	found, err := uc.accessoryRepo.GetByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	items := make([]entity.ScenarioItem, 0, len(order))
	for _, id := range order {
		if _, ok := found[id]; !ok {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.ScenarioItem{AccessoryID: id, Quantity: qty[id]})
	}
	return items, nil
}

func toScenarioResponse(s *entity.Scenario) *dto.ScenarioResponse {
	items := make([]dto.ScenarioItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.ScenarioItemDTO{AccessoryID: it.AccessoryID, Quantity: it.Quantity})
	}
	return &dto.ScenarioResponse{
		ID:          s.ID,
		ProjectID:   s.ProjectID,
		Name:        s.Name,
		Description: s.Description,
		IsPrincipal: s.IsPrincipal,
		Items:       items,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
