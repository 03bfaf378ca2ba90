package repository

import (
	"context"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// ScanJobRepository define el puerto de persistencia para ScanJob.
type ScanJobRepository interface {
	Create(ctx context.Context, j *entity.ScanJob) error
	GetByID(ctx context.Context, id string) (*entity.ScanJob, error)
	Update(ctx context.Context, j *entity.ScanJob) error
	ListByProject(ctx context.Context, projectID string) ([]*entity.ScanJob, error)
}
