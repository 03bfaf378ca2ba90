package repository

import (
	"context"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// ScenarioRepository define el puerto de persistencia para Scenario y sus ítems.
type ScenarioRepository interface {
	Create(ctx context.Context, s *entity.Scenario) error
	GetByID(ctx context.Context, id string) (*entity.Scenario, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.Scenario, error)
	GetPrincipal(ctx context.Context, projectID string) (*entity.Scenario, error)
	Update(ctx context.Context, s *entity.Scenario) error
	ReplaceItems(ctx context.Context, scenarioID string, items []entity.ScenarioItem) error
	// LockProject bloquea los escenarios del proyecto (SELECT ... FOR UPDATE) dentro de la tx.
	LockProject(ctx context.Context, projectID string) error
	ClearPrincipal(ctx context.Context, projectID string) error
	MarkPrincipal(ctx context.Context, scenarioID string) error
	Delete(ctx context.Context, id string) error
}
