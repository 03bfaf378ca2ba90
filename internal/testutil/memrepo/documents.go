package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// ScanJobs repositorio de escaneos en memoria.
type ScanJobs struct {
	mu   sync.Mutex
	byID map[string]*entity.ScanJob
}

func NewScanJobs() *ScanJobs { return &ScanJobs{byID: map[string]*entity.ScanJob{}} }

func (m *ScanJobs) Create(_ context.Context, j *entity.ScanJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *j
	m.byID[j.ID] = &c
	return nil
}

func (m *ScanJobs) GetByID(_ context.Context, id string) (*entity.ScanJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.byID[id]; ok {
		c := *j
		return &c, nil
	}
	return nil, nil
}

func (m *ScanJobs) Update(ctx context.Context, j *entity.ScanJob) error { return m.Create(ctx, j) }

func (m *ScanJobs) ListByProject(_ context.Context, projectID string) ([]*entity.ScanJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.ScanJob
	for _, j := range m.byID {
		if j.ProjectID == projectID {
			c := *j
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Notices repositorio de notices en memoria. Search hace coincidencia por subcadena
// de cada término de la consulta to_tsquery ("a & b:*").
type Notices struct {
	mu   sync.Mutex
	byID map[string]*entity.Notice
}

func NewNotices(list ...*entity.Notice) *Notices {
	m := &Notices{byID: map[string]*entity.Notice{}}
	for _, n := range list {
		c := *n
		m.byID[n.ID] = &c
	}
	return m
}

func (m *Notices) Create(_ context.Context, n *entity.Notice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *n
	m.byID[n.ID] = &c
	return nil
}

func (m *Notices) GetByID(_ context.Context, id string) (*entity.Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.byID[id]; ok {
		c := *n
		return &c, nil
	}
	return nil, nil
}

func (m *Notices) List(_ context.Context, limit, offset int) ([]*entity.Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Notice
	for _, n := range m.byID {
		c := *n
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return page(out, limit, offset), nil
}

func (m *Notices) Update(ctx context.Context, n *entity.Notice) error { return m.Create(ctx, n) }

func (m *Notices) SetIndex(_ context.Context, id, content string, keywords []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.byID[id]; ok {
		n.Content, n.Keywords, n.Indexed = content, keywords, true
	}
	return nil
}

func (m *Notices) Search(_ context.Context, tsquery string, limit int) ([]entity.NoticeHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var terms []string
	for _, t := range strings.Split(tsquery, "&") {
		t = strings.TrimSuffix(strings.TrimSpace(t), ":*")
		if t != "" {
			terms = append(terms, t)
		}
	}
	var out []entity.NoticeHit
	for _, n := range m.byID {
		doc := strings.ToLower(n.Title + " " + n.Brand + " " + n.Content + " " + strings.Join(n.Keywords, " "))
		hits := 0
		for _, t := range terms {
			hits += strings.Count(doc, t)
		}
		if hits == 0 {
			continue
		}
		c := *n
		out = append(out, entity.NoticeHit{Notice: &c, Rank: float32(hits)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank > out[j].Rank })
	return page(out, limit, 0), nil
}

func (m *Notices) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

// ChatMessages historial del asistente en memoria.
type ChatMessages struct {
	mu   sync.Mutex
	List []*entity.ChatMessage
}

func (m *ChatMessages) Create(_ context.Context, msg *entity.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *msg
	m.List = append(m.List, &c)
	return nil
}

func (m *ChatMessages) ListByUser(_ context.Context, userID string, limit int) ([]*entity.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.ChatMessage
	for _, msg := range m.List {
		if msg.UserID == userID {
			c := *msg
			out = append(out, &c)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *ChatMessages) DeleteByUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.List[:0]
	for _, msg := range m.List {
		if msg.UserID != userID {
			kept = append(kept, msg)
		}
	}
	m.List = kept
	return nil
}

// Outlines repositorio de contornos en memoria.
type Outlines struct {
	mu   sync.Mutex
	byID map[string]*entity.Outline
}

func NewOutlines() *Outlines { return &Outlines{byID: map[string]*entity.Outline{}} }

func (m *Outlines) Create(_ context.Context, o *entity.Outline) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *o
	c.Shapes = append([]entity.Shape(nil), o.Shapes...)
	m.byID[o.ID] = &c
	return nil
}

func (m *Outlines) GetByID(_ context.Context, id string) (*entity.Outline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.byID[id]; ok {
		c := *o
		return &c, nil
	}
	return nil, nil
}

func (m *Outlines) ListByProject(_ context.Context, projectID string) ([]*entity.Outline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Outline
	for _, o := range m.byID {
		if o.ProjectID == projectID {
			c := *o
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Outlines) Update(ctx context.Context, o *entity.Outline) error { return m.Create(ctx, o) }

func (m *Outlines) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

// AIConfigs preferencias de IA en memoria.
type AIConfigs struct {
	mu     sync.Mutex
	byUser map[string]*entity.AIConfig
}

func NewAIConfigs() *AIConfigs { return &AIConfigs{byUser: map[string]*entity.AIConfig{}} }

func (m *AIConfigs) Get(_ context.Context, userID string) (*entity.AIConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.byUser[userID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *AIConfigs) Upsert(_ context.Context, c *entity.AIConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.byUser[c.UserID] = &cp
	return nil
}

func (m *AIConfigs) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byUser, userID)
	return nil
}

// BackupSettings preferencias de copia de seguridad en memoria.
type BackupSettings struct {
	mu     sync.Mutex
	byUser map[string]*entity.BackupSettings
}

func NewBackupSettings(list ...*entity.BackupSettings) *BackupSettings {
	m := &BackupSettings{byUser: map[string]*entity.BackupSettings{}}
	for _, s := range list {
		c := *s
		m.byUser[s.UserID] = &c
	}
	return m
}

func (m *BackupSettings) Get(_ context.Context, userID string) (*entity.BackupSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byUser[userID]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

func (m *BackupSettings) Upsert(_ context.Context, s *entity.BackupSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *s
	c.UpdatedAt = time.Now()
	if prev, ok := m.byUser[s.UserID]; ok {
		c.LastBackupAt, c.LastBackupKey = prev.LastBackupAt, prev.LastBackupKey
	}
	m.byUser[s.UserID] = &c
	return nil
}

func (m *BackupSettings) UpdateLastBackup(_ context.Context, userID string, at time.Time, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byUser[userID]
	if !ok {
		s = &entity.BackupSettings{UserID: userID, Frequency: entity.BackupDaily}
		m.byUser[userID] = s
	}
	s.LastBackupAt = &at
	s.LastBackupKey = key
	s.UpdatedAt = at
	return nil
}

func (m *BackupSettings) ListEnabled(_ context.Context) ([]*entity.BackupSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.BackupSettings
	for _, s := range m.byUser {
		if s.Enabled {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
