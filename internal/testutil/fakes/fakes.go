// Package fakes dobles de los puertos de salida (IA, almacenamiento, imágenes) para tests.
package fakes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
)

// Model modelo de IA con respuestas programadas. Cada llamada consume la siguiente respuesta;
// Err, si no es nil, se devuelve en todas las llamadas.
type Model struct {
	mu        sync.Mutex
	Replies   []string
	Err       error
	Prompts   []string
	MimeTypes []string
	Turns     [][]ports.ChatTurn
}

func (m *Model) Provider() string { return "fake" }

func (m *Model) next() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Replies) == 0 {
		return "", fmt.Errorf("fake model: sin respuestas programadas")
	}
	r := m.Replies[0]
	m.Replies = m.Replies[1:]
	return r, nil
}

func (m *Model) Vision(_ context.Context, prompt, mimeType string, _ []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	m.MimeTypes = append(m.MimeTypes, mimeType)
	return m.next()
}

func (m *Model) Chat(_ context.Context, system string, turns []ports.ChatTurn) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, system)
	m.Turns = append(m.Turns, turns)
	return m.next()
}

// Resolver devuelve siempre Model; sin Model responde domain.ErrAINotConfigured.
type Resolver struct{ Model ports.AIModel }

func (r Resolver) Resolve(context.Context, string) (ports.AIModel, error) {
	if r.Model == nil {
		return nil, domain.ErrAINotConfigured
	}
	return r.Model, nil
}

// Storage almacenamiento de objetos en memoria.
type Storage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
}

func NewStorage() *Storage {
	return &Storage{Objects: map[string][]byte{}, Types: map[string]string{}}
}

func (s *Storage) Put(_ context.Context, key, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Objects[key] = append([]byte(nil), data...)
	s.Types[key] = contentType
	return nil
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Objects[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Objects[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.Objects, key)
	return nil
}

func (s *Storage) PresignGet(_ context.Context, key string) (string, time.Time, error) {
	return "https://storage.test/" + key, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

// Images recortador que devuelve bytes fijos y recuerda la última zona.
type Images struct{ Last dto.Zone }

func (i *Images) CropZone(_ []byte, _ string, z dto.Zone) ([]byte, error) {
	i.Last = z
	return []byte("png"), nil
}
