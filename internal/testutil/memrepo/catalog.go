package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// Accessories repositorio de accesorios en memoria.
type Accessories struct {
	mu   sync.Mutex
	byID map[string]*entity.Accessory
}

func NewAccessories(list ...*entity.Accessory) *Accessories {
	m := &Accessories{byID: map[string]*entity.Accessory{}}
	for _, a := range list {
		c := *a
		m.byID[a.ID] = &c
	}
	return m
}

func (m *Accessories) Create(_ context.Context, a *entity.Accessory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Reference == a.Reference {
			return domain.ErrDuplicate
		}
	}
	c := *a
	m.byID[a.ID] = &c
	return nil
}

func (m *Accessories) GetByID(_ context.Context, id string) (*entity.Accessory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byID[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, nil
}

func (m *Accessories) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Accessory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*entity.Accessory, len(ids))
	for _, id := range ids {
		if a, ok := m.byID[id]; ok {
			c := *a
			out[id] = &c
		}
	}
	return out, nil
}

func (m *Accessories) GetByReference(_ context.Context, ref string) (*entity.Accessory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID {
		if a.Reference == ref {
			c := *a
			return &c, nil
		}
	}
	return nil, nil
}

func (m *Accessories) GetForUpdate(ctx context.Context, id string) (*entity.Accessory, error) {
	return m.GetByID(ctx, id)
}

func (m *Accessories) List(_ context.Context, f repository.AccessoryFilter) ([]*entity.Accessory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(f.Query)
	var out []*entity.Accessory
	for _, a := range m.byID {
		if f.PublishedOnly && !a.Published {
			continue
		}
		if f.CategoryID != "" && a.CategoryID != f.CategoryID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(a.Name+" "+a.Brand+" "+a.Reference), q) {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, f.Limit, f.Offset), nil
}

func (m *Accessories) ListLowStock(_ context.Context) ([]*entity.Accessory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Accessory
	for _, a := range m.byID {
		if a.StockQuantity <= a.LowStockThreshold {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out, nil
}

func (m *Accessories) Update(_ context.Context, a *entity.Accessory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[a.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *a
	m.byID[a.ID] = &c
	return nil
}

func (m *Accessories) UpdateStock(_ context.Context, id string, quantity int, cost decimal.Decimal, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.StockQuantity, a.Cost, a.StockStatus = quantity, cost, status
	return nil
}

func (m *Accessories) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

// Movements repositorio de movimientos de stock en memoria (orden de inserción).
type Movements struct {
	mu   sync.Mutex
	List []*entity.StockMovement
}

func (m *Movements) Create(_ context.Context, mov *entity.StockMovement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *mov
	m.List = append(m.List, &c)
	return nil
}

func (m *Movements) ListByAccessory(_ context.Context, accessoryID string, limit, offset int) ([]*entity.StockMovement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.StockMovement
	for i := len(m.List) - 1; i >= 0; i-- {
		if m.List[i].AccessoryID == accessoryID {
			c := *m.List[i]
			out = append(out, &c)
		}
	}
	return page(out, limit, offset), nil
}

// Categories repositorio de categorías en memoria.
type Categories struct {
	mu   sync.Mutex
	byID map[string]*entity.Category
}

func NewCategories() *Categories { return &Categories{byID: map[string]*entity.Category{}} }

func (m *Categories) Create(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Slug == c.Slug {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *Categories) GetByID(_ context.Context, id string) (*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byID[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *Categories) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Categories) List(_ context.Context) ([]*entity.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Category
	for _, c := range m.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *Categories) CountChildren(_ context.Context, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.byID {
		if c.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (m *Categories) Update(_ context.Context, c *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *Categories) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
