package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

var _ repository.ScanJobRepository = (*ScanJobRepo)(nil)

const scanJobColumns = `id, user_id, project_id, kind, file_key, content_type, status, result, error, expense_id, created_at, updated_at`

// ScanJobRepo implementación de ScanJobRepository sobre PostgreSQL.
type ScanJobRepo struct {
	q Querier
}

// NewScanJobRepository construye el adaptador.
func NewScanJobRepository(q Querier) *ScanJobRepo {
	return &ScanJobRepo{q: q}
}

func scanScanJob(row rowScanner) (*entity.ScanJob, error) {
	var j entity.ScanJob
	var result []byte
	var expense *string
	err := row.Scan(&j.ID, &j.UserID, &j.ProjectID, &j.Kind, &j.FileKey, &j.ContentType, &j.Status, &result, &j.Error, &expense, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	j.Result = result
	j.ExpenseID = deref(expense)
	return &j, nil
}

// jsonOrNull devuelve nil para que la columna JSONB quede en NULL.
func jsonOrNull(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func (r *ScanJobRepo) Create(ctx context.Context, j *entity.ScanJob) error {
	_, err := r.q.Exec(ctx, `INSERT INTO scan_jobs (`+scanJobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		j.ID, j.UserID, j.ProjectID, j.Kind, j.FileKey, j.ContentType, j.Status, jsonOrNull(j.Result), j.Error,
		nullable(j.ExpenseID), j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert scan job: %w", err)
	}
	return nil
}

func (r *ScanJobRepo) GetByID(ctx context.Context, id string) (*entity.ScanJob, error) {
	j, err := scanScanJob(r.q.QueryRow(ctx, `SELECT `+scanJobColumns+` FROM scan_jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get scan job: %w", err)
	}
	return j, nil
}

func (r *ScanJobRepo) Update(ctx context.Context, j *entity.ScanJob) error {
	_, err := r.q.Exec(ctx, `
		UPDATE scan_jobs SET status = $2, result = $3, error = $4, expense_id = $5, updated_at = $6
		WHERE id = $1`,
		j.ID, j.Status, jsonOrNull(j.Result), j.Error, nullable(j.ExpenseID), j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update scan job: %w", err)
	}
	return nil
}

// ListByProject escaneos del proyecto, más recientes primero.
func (r *ScanJobRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.ScanJob, error) {
	rows, err := r.q.Query(ctx, `SELECT `+scanJobColumns+` FROM scan_jobs WHERE project_id = $1 ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list scan jobs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ScanJob
	for rows.Next() {
		j, err := scanScanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scan job: %w", err)
		}
		list = append(list, j)
	}
	return list, rows.Err()
}
