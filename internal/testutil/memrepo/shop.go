package memrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// Orders repositorio de pedidos en memoria.
type Orders struct {
	mu   sync.Mutex
	byID map[string]*entity.Order
}

func NewOrders() *Orders { return &Orders{byID: map[string]*entity.Order{}} }

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	return &c
}

func (m *Orders) Create(_ context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Number == o.Number {
			return domain.ErrDuplicate
		}
	}
	m.byID[o.ID] = cloneOrder(o)
	return nil
}

func (m *Orders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.byID[id]; ok {
		return cloneOrder(o), nil
	}
	return nil, nil
}

func (m *Orders) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return m.GetByID(ctx, id)
}

func (m *Orders) list(keep func(*entity.Order) bool, limit, offset int) []*entity.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Order
	for _, o := range m.byID {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset)
}

func (m *Orders) ListByUser(_ context.Context, userID string, limit, offset int) ([]*entity.Order, error) {
	return m.list(func(o *entity.Order) bool { return o.UserID == userID }, limit, offset), nil
}

func (m *Orders) ListAll(_ context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	return m.list(func(o *entity.Order) bool { return status == "" || o.Status == status }, limit, offset), nil
}

func (m *Orders) UpdateStatus(_ context.Context, id, status, paymentStatus string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status, o.PaymentStatus = status, paymentStatus
	return nil
}

// Users repositorio de usuarios en memoria.
type Users struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func NewUsers(list ...*entity.User) *Users {
	m := &Users{byID: map[string]*entity.User{}}
	for _, u := range list {
		c := *u
		m.byID[u.ID] = &c
	}
	return m
}

func (m *Users) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *u
	m.byID[u.ID] = &c
	return nil
}

func (m *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (m *Users) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (m *Users) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *u
	m.byID[u.ID] = &c
	return nil
}

func (m *Users) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.User
	for _, u := range m.byID {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, limit, offset), nil
}

// ShopTx ejecuta fn con los repositorios en memoria. Si fn falla restaura el estado previo (rollback).
type ShopTx struct {
	Accessories *Accessories
	Movements   *Movements
	Orders      *Orders
}

func (t *ShopTx) Run(ctx context.Context, fn func(repository.AccessoryRepository, repository.StockMovementRepository) error) error {
	return t.RunShop(ctx, func(_ repository.OrderRepository, a repository.AccessoryRepository, m repository.StockMovementRepository) error {
		return fn(a, m)
	})
}

func (t *ShopTx) RunShop(_ context.Context, fn func(repository.OrderRepository, repository.AccessoryRepository, repository.StockMovementRepository) error) error {
	restore := t.snapshot()
	if err := fn(t.Orders, t.Accessories, t.Movements); err != nil {
		restore()
		return err
	}
	return nil
}

func (t *ShopTx) snapshot() func() {
	acc := map[string]entity.Accessory{}
	for id, a := range t.Accessories.byID {
		acc[id] = *a
	}
	movs := len(t.Movements.List)
	var orders map[string]*entity.Order
	if t.Orders != nil {
		orders = map[string]*entity.Order{}
		for id, o := range t.Orders.byID {
			orders[id] = cloneOrder(o)
		}
	}
	return func() {
		t.Accessories.byID = map[string]*entity.Accessory{}
		for id, a := range acc {
			c := a
			t.Accessories.byID[id] = &c
		}
		t.Movements.List = t.Movements.List[:movs]
		if t.Orders != nil {
			t.Orders.byID = orders
		}
	}
}

// ScenarioTx ejecuta fn sobre el repositorio de escenarios en memoria.
type ScenarioTx struct{ Repo *Scenarios }

func (t ScenarioTx) RunScenarios(_ context.Context, fn func(repository.ScenarioRepository) error) error {
	return fn(t.Repo)
}
