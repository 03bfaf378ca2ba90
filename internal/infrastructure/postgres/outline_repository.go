package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

var _ repository.OutlineRepository = (*OutlineRepo)(nil)

const outlineColumns = `id, project_id, name, width, height, shapes, created_at, updated_at`

// OutlineRepo implementación de OutlineRepository; las formas se guardan como JSONB.
type OutlineRepo struct {
	q Querier
}

// NewOutlineRepository construye el adaptador.
func NewOutlineRepository(q Querier) *OutlineRepo {
	return &OutlineRepo{q: q}
}

func scanOutline(row rowScanner) (*entity.Outline, error) {
	var o entity.Outline
	var shapes []byte
	if err := row.Scan(&o.ID, &o.ProjectID, &o.Name, &o.Width, &o.Height, &shapes, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(shapes, &o.Shapes); err != nil {
		return nil, fmt.Errorf("decode shapes: %w", err)
	}
	return &o, nil
}

func encodeShapes(shapes []entity.Shape) (string, error) {
	if shapes == nil {
		shapes = []entity.Shape{}
	}
	b, err := json.Marshal(shapes)
	if err != nil {
		return "", fmt.Errorf("encode shapes: %w", err)
	}
	return string(b), nil
}

func (r *OutlineRepo) Create(ctx context.Context, o *entity.Outline) error {
	shapes, err := encodeShapes(o.Shapes)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `INSERT INTO outlines (`+outlineColumns+`) VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8)`,
		o.ID, o.ProjectID, o.Name, o.Width, o.Height, shapes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert outline: %w", err)
	}
	return nil
}

func (r *OutlineRepo) GetByID(ctx context.Context, id string) (*entity.Outline, error) {
	o, err := scanOutline(r.q.QueryRow(ctx, `SELECT `+outlineColumns+` FROM outlines WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outline: %w", err)
	}
	return o, nil
}

func (r *OutlineRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Outline, error) {
	rows, err := r.q.Query(ctx, `SELECT `+outlineColumns+` FROM outlines WHERE project_id = $1 ORDER BY name, created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list outlines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Outline
	for rows.Next() {
		o, err := scanOutline(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outline: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *OutlineRepo) Update(ctx context.Context, o *entity.Outline) error {
	shapes, err := encodeShapes(o.Shapes)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `UPDATE outlines SET name = $2, width = $3, height = $4, shapes = $5::jsonb, updated_at = $6 WHERE id = $1`,
		o.ID, o.Name, o.Width, o.Height, shapes, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update outline: %w", err)
	}
	return nil
}

func (r *OutlineRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM outlines WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete outline: %w", err)
	}
	return nil
}
