package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// Projects repositorio de proyectos en memoria.
type Projects struct {
	mu   sync.Mutex
	byID map[string]*entity.Project
}

func NewProjects(list ...*entity.Project) *Projects {
	m := &Projects{byID: map[string]*entity.Project{}}
	for _, p := range list {
		c := *p
		m.byID[p.ID] = &c
	}
	return m
}

func (m *Projects) Create(_ context.Context, p *entity.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *p
	m.byID[p.ID] = &c
	return nil
}

func (m *Projects) GetByID(_ context.Context, id string) (*entity.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (m *Projects) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*entity.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Project
	for _, p := range m.byID {
		if p.OwnerID == ownerID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (m *Projects) Update(_ context.Context, p *entity.Project) error {
	return m.Create(context.Background(), p)
}

func (m *Projects) UpdateVehicle(_ context.Context, id string, v entity.Vehicle, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byID[id]; ok {
		p.Vehicle = v
		p.UpdatedAt = updatedAt
	}
	return nil
}

func (m *Projects) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

// Scenarios repositorio de escenarios en memoria.
type Scenarios struct {
	mu   sync.Mutex
	byID map[string]*entity.Scenario
}

func NewScenarios() *Scenarios { return &Scenarios{byID: map[string]*entity.Scenario{}} }

func cloneScenario(s *entity.Scenario) *entity.Scenario {
	c := *s
	c.Items = append([]entity.ScenarioItem(nil), s.Items...)
	return &c
}

func (m *Scenarios) Create(_ context.Context, s *entity.Scenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[s.ID] = cloneScenario(s)
	return nil
}

func (m *Scenarios) GetByID(_ context.Context, id string) (*entity.Scenario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[id]; ok {
		return cloneScenario(s), nil
	}
	return nil, nil
}

func (m *Scenarios) ListByProject(_ context.Context, projectID string) ([]*entity.Scenario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Scenario
	for _, s := range m.byID {
		if s.ProjectID == projectID {
			out = append(out, cloneScenario(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Scenarios) GetPrincipal(_ context.Context, projectID string) (*entity.Scenario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if s.ProjectID == projectID && s.IsPrincipal {
			return cloneScenario(s), nil
		}
	}
	return nil, nil
}

func (m *Scenarios) Update(_ context.Context, s *entity.Scenario) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.byID[s.ID]
	if !ok {
		return nil
	}
	cur.Name, cur.Description, cur.UpdatedAt = s.Name, s.Description, s.UpdatedAt
	return nil
}

func (m *Scenarios) ReplaceItems(_ context.Context, scenarioID string, items []entity.ScenarioItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[scenarioID]; ok {
		s.Items = append([]entity.ScenarioItem(nil), items...)
	}
	return nil
}

func (m *Scenarios) LockProject(context.Context, string) error { return nil }

func (m *Scenarios) ClearPrincipal(_ context.Context, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if s.ProjectID == projectID {
			s.IsPrincipal = false
		}
	}
	return nil
}

func (m *Scenarios) MarkPrincipal(_ context.Context, scenarioID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[scenarioID]; ok {
		s.IsPrincipal = true
	}
	return nil
}

func (m *Scenarios) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

// Tasks repositorio de tareas en memoria.
type Tasks struct {
	mu   sync.Mutex
	byID map[string]*entity.Task
}

func NewTasks(list ...*entity.Task) *Tasks {
	m := &Tasks{byID: map[string]*entity.Task{}}
	for _, t := range list {
		c := *t
		m.byID[t.ID] = &c
	}
	return m
}

func (m *Tasks) Create(_ context.Context, t *entity.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *t
	m.byID[t.ID] = &c
	return nil
}

func (m *Tasks) GetByID(_ context.Context, id string) (*entity.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.byID[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (m *Tasks) ListByProject(_ context.Context, projectID string) ([]*entity.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Task
	for _, t := range m.byID {
		if t.ProjectID == projectID {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *Tasks) Update(ctx context.Context, t *entity.Task) error { return m.Create(ctx, t) }

func (m *Tasks) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

// Expenses repositorio de gastos en memoria.
type Expenses struct {
	mu   sync.Mutex
	byID map[string]*entity.Expense
}

func NewExpenses(list ...*entity.Expense) *Expenses {
	m := &Expenses{byID: map[string]*entity.Expense{}}
	for _, e := range list {
		c := *e
		m.byID[e.ID] = &c
	}
	return m
}

func (m *Expenses) Create(_ context.Context, e *entity.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *e
	m.byID[e.ID] = &c
	return nil
}

func (m *Expenses) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.byID[id]; ok {
		c := *e
		return &c, nil
	}
	return nil, nil
}

func (m *Expenses) ListByProject(_ context.Context, projectID string) ([]*entity.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Expense
	for _, e := range m.byID {
		if e.ProjectID == projectID {
			c := *e
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Expenses) Update(ctx context.Context, e *entity.Expense) error { return m.Create(ctx, e) }

func (m *Expenses) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

// Appointments repositorio de citas en memoria. Projects permite resolver el propietario.
type Appointments struct {
	mu       sync.Mutex
	byID     map[string]*entity.Appointment
	Projects *Projects
}

func NewAppointments(projects *Projects, list ...*entity.Appointment) *Appointments {
	m := &Appointments{byID: map[string]*entity.Appointment{}, Projects: projects}
	for _, a := range list {
		c := *a
		m.byID[a.ID] = &c
	}
	return m
}

func (m *Appointments) Create(_ context.Context, a *entity.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *a
	m.byID[a.ID] = &c
	return nil
}

func (m *Appointments) GetByID(_ context.Context, id string) (*entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byID[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, nil
}

func (m *Appointments) ListByProject(_ context.Context, projectID string) ([]*entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Appointment
	for _, a := range m.byID {
		if a.ProjectID == projectID {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (m *Appointments) ListUpcomingByOwner(ctx context.Context, ownerID string, from time.Time, limit int) ([]*entity.Appointment, error) {
	m.mu.Lock()
	var out []*entity.Appointment
	for _, a := range m.byID {
		if a.Done || a.StartsAt.Before(from) {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	m.mu.Unlock()
	filtered := out[:0]
	for _, a := range out {
		if m.Projects == nil {
			filtered = append(filtered, a)
			continue
		}
		p, _ := m.Projects.GetByID(ctx, a.ProjectID)
		if p != nil && p.OwnerID == ownerID {
			filtered = append(filtered, a)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].StartsAt.Before(filtered[j].StartsAt) })
	return page(filtered, limit, 0), nil
}

func (m *Appointments) Update(ctx context.Context, a *entity.Appointment) error {
	return m.Create(ctx, a)
}

func (m *Appointments) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}
