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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `id, owner_id, name, description, status, budget,
	registration, first_registration, brand, vehicle_type, commercial_name, vin,
	ptac, empty_mass, genre, energy, seats, start_date, target_date, created_at, updated_at`

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL. El vehículo se guarda
// en columnas de la propia fila del proyecto.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

func scanProject(row rowScanner) (*entity.Project, error) {
	var p entity.Project
	v := &p.Vehicle
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Status, &p.Budget,
		&v.Registration, &v.FirstRegistration, &v.Brand, &v.Type, &v.CommercialName, &v.VIN,
		&v.PTAC, &v.EmptyMass, &v.Genre, &v.Energy, &v.Seats,
		&p.StartDate, &p.TargetDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	v := p.Vehicle
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OwnerID, p.Name, p.Description, p.Status, p.Budget,
		v.Registration, v.FirstRegistration, v.Brand, v.Type, v.CommercialName, v.VIN,
		v.PTAC, v.EmptyMass, v.Genre, v.Energy, v.Seats,
		p.StartDate, p.TargetDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	p, err := scanProject(r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ListByOwner lista los proyectos de un usuario, más recientes primero.
func (r *ProjectRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza datos y vehículo del proyecto.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	v := p.Vehicle
	query := `
		UPDATE projects SET name = $2, description = $3, status = $4, budget = $5,
			registration = $6, first_registration = $7, brand = $8, vehicle_type = $9, commercial_name = $10,
			vin = $11, ptac = $12, empty_mass = $13, genre = $14, energy = $15, seats = $16,
			start_date = $17, target_date = $18, updated_at = $19
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Status, p.Budget,
		v.Registration, v.FirstRegistration, v.Brand, v.Type, v.CommercialName,
		v.VIN, v.PTAC, v.EmptyMass, v.Genre, v.Energy, v.Seats,
		p.StartDate, p.TargetDate, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) UpdateVehicle(ctx context.Context, id string, v entity.Vehicle, updatedAt time.Time) error {
	query := `
		UPDATE projects SET registration = $2, first_registration = $3, brand = $4, vehicle_type = $5,
			commercial_name = $6, vin = $7, ptac = $8, empty_mass = $9, genre = $10, energy = $11, seats = $12,
			updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		id, v.Registration, v.FirstRegistration, v.Brand, v.Type,
		v.CommercialName, v.VIN, v.PTAC, v.EmptyMass, v.Genre, v.Energy, v.Seats,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project vehicle: %w", err)
	}
	return nil
}

// Delete elimina el proyecto; el esquema borra en cascada lo que cuelga de él.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
