package repository

import (
	"context"
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// AppointmentRepository define el puerto de persistencia para Appointment.
type AppointmentRepository interface {
	Create(ctx context.Context, a *entity.Appointment) error
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.Appointment, error)
	// ListUpcomingByOwner citas no realizadas desde from, en todos los proyectos del usuario.
	ListUpcomingByOwner(ctx context.Context, ownerID string, from time.Time, limit int) ([]*entity.Appointment, error)
	Update(ctx context.Context, a *entity.Appointment) error
	Delete(ctx context.Context, id string) error
}
