package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

const appointmentColumns = `a.id, a.project_id, a.title, a.kind, a.starts_at, a.location, a.notes, a.done, a.created_at, a.updated_at`

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador.
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

func scanAppointment(row rowScanner) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(&a.ID, &a.ProjectID, &a.Title, &a.Kind, &a.StartsAt, &a.Location, &a.Notes, &a.Done, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO appointments (id, project_id, title, kind, starts_at, location, notes, done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.ProjectID, a.Title, a.Kind, a.StartsAt, a.Location, a.Notes, a.Done, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	a, err := scanAppointment(r.q.QueryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments a WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

// ListByProject lista las citas del proyecto por fecha.
func (r *AppointmentRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Appointment, error) {
	return r.list(ctx, `SELECT `+appointmentColumns+` FROM appointments a WHERE a.project_id = $1 ORDER BY a.starts_at`, projectID)
}

// ListUpcomingByOwner citas pendientes desde from en todos los proyectos del usuario.
func (r *AppointmentRepo) ListUpcomingByOwner(ctx context.Context, ownerID string, from time.Time, limit int) ([]*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments a
		JOIN projects p ON p.id = a.project_id
		WHERE p.owner_id = $1 AND NOT a.done AND a.starts_at >= $2
		ORDER BY a.starts_at
		LIMIT $3`
	return r.list(ctx, query, ownerID, from, limit)
}

func (r *AppointmentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Appointment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AppointmentRepo) Update(ctx context.Context, a *entity.Appointment) error {
	_, err := r.q.Exec(ctx, `
		UPDATE appointments SET title = $2, kind = $3, starts_at = $4, location = $5, notes = $6, done = $7, updated_at = $8
		WHERE id = $1`,
		a.ID, a.Title, a.Kind, a.StartsAt, a.Location, a.Notes, a.Done, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}
