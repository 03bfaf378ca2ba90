package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

var _ repository.ScenarioRepository = (*ScenarioRepo)(nil)

const scenarioColumns = `id, project_id, name, description, is_principal, created_at, updated_at`

// ScenarioRepo implementación de ScenarioRepository sobre PostgreSQL (usable con pool o tx).
// El índice único parcial uq_scenarios_principal impide dos principales en un proyecto.
type ScenarioRepo struct {
	q Querier
}

// NewScenarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewScenarioRepository(q Querier) *ScenarioRepo {
	return &ScenarioRepo{q: q}
}

func scanScenario(row rowScanner) (*entity.Scenario, error) {
	var s entity.Scenario
	if err := row.Scan(&s.ID, &s.ProjectID, &s.Name, &s.Description, &s.IsPrincipal, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Items = []entity.ScenarioItem{}
	return &s, nil
}

// Create persiste el escenario (sin ítems; ver ReplaceItems).
func (r *ScenarioRepo) Create(ctx context.Context, s *entity.Scenario) error {
	_, err := r.q.Exec(ctx, `INSERT INTO scenarios (`+scenarioColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.ProjectID, s.Name, s.Description, s.IsPrincipal, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert scenario: %w", err)
	}
	return nil
}

// GetByID obtiene el escenario con sus ítems.
func (r *ScenarioRepo) GetByID(ctx context.Context, id string) (*entity.Scenario, error) {
	return r.getOne(ctx, `SELECT `+scenarioColumns+` FROM scenarios WHERE id = $1`, id)
}

// GetPrincipal obtiene el escenario principal del proyecto, o nil si no hay escenarios.
func (r *ScenarioRepo) GetPrincipal(ctx context.Context, projectID string) (*entity.Scenario, error) {
	return r.getOne(ctx, `SELECT `+scenarioColumns+` FROM scenarios WHERE project_id = $1 AND is_principal`, projectID)
}

func (r *ScenarioRepo) getOne(ctx context.Context, query, arg string) (*entity.Scenario, error) {
	s, err := scanScenario(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get scenario: %w", err)
	}
	items, err := r.items(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = append(s.Items, items[s.ID]...)
	return s, nil
}

// ListByProject lista los escenarios del proyecto por fecha de creación, con sus ítems.
func (r *ScenarioRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Scenario, error) {
	rows, err := r.q.Query(ctx, `SELECT `+scenarioColumns+` FROM scenarios WHERE project_id = $1 ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	var list []*entity.Scenario
	var ids []string
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		list = append(list, s)
		ids = append(ids, s.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Items = append(s.Items, items[s.ID]...)
	}
	return list, nil
}

func (r *ScenarioRepo) items(ctx context.Context, scenarioIDs []string) (map[string][]entity.ScenarioItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT scenario_id, accessory_id, quantity FROM scenario_items
		WHERE scenario_id = ANY($1::uuid[]) ORDER BY scenario_id, position`, scenarioIDs)
	if err != nil {
		return nil, fmt.Errorf("list scenario items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.ScenarioItem, len(scenarioIDs))
	for rows.Next() {
		var sid string
		var it entity.ScenarioItem
		if err := rows.Scan(&sid, &it.AccessoryID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan scenario item: %w", err)
		}
		out[sid] = append(out[sid], it)
	}
	return out, rows.Err()
}

// Update actualiza nombre y descripción.
func (r *ScenarioRepo) Update(ctx context.Context, s *entity.Scenario) error {
	_, err := r.q.Exec(ctx, `UPDATE scenarios SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		s.ID, s.Name, s.Description, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update scenario: %w", err)
	}
	return nil
}

// ReplaceItems borra los ítems del escenario y escribe los nuevos conservando el orden.
func (r *ScenarioRepo) ReplaceItems(ctx context.Context, scenarioID string, items []entity.ScenarioItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM scenario_items WHERE scenario_id = $1`, scenarioID); err != nil {
		return fmt.Errorf("delete scenario items: %w", err)
	}
	for i, it := range items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO scenario_items (scenario_id, accessory_id, quantity, position) VALUES ($1, $2, $3, $4)`,
			scenarioID, it.AccessoryID, it.Quantity, i,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert scenario item: %w", err)
		}
	}
	_, err := r.q.Exec(ctx, `UPDATE scenarios SET updated_at = now() WHERE id = $1`, scenarioID)
	if err != nil {
		return fmt.Errorf("touch scenario: %w", err)
	}
	return nil
}

// LockProject bloquea la fila del proyecto para serializar cambios de escenario principal.
func (r *ScenarioRepo) LockProject(ctx context.Context, projectID string) error {
	var id string
	err := r.q.QueryRow(ctx, `SELECT id FROM projects WHERE id = $1 FOR UPDATE`, projectID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock project: %w", err)
	}
	return nil
}

// ClearPrincipal desmarca el escenario principal del proyecto.
func (r *ScenarioRepo) ClearPrincipal(ctx context.Context, projectID string) error {
	_, err := r.q.Exec(ctx, `UPDATE scenarios SET is_principal = false, updated_at = now() WHERE project_id = $1 AND is_principal`, projectID)
	if err != nil {
		return fmt.Errorf("clear principal: %w", err)
	}
	return nil
}

// MarkPrincipal marca el escenario como principal.
func (r *ScenarioRepo) MarkPrincipal(ctx context.Context, scenarioID string) error {
	_, err := r.q.Exec(ctx, `UPDATE scenarios SET is_principal = true, updated_at = now() WHERE id = $1`, scenarioID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("mark principal: %w", err)
	}
	return nil
}

// Delete elimina el escenario y sus ítems.
func (r *ScenarioRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	return nil
}
