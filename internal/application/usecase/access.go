package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

var _ ports.ProjectAuthorizer = (*ProjectAccess)(nil)

// ProjectAccess verifica que un actor puede operar sobre un proyecto.
// Es el único punto de la aplicación que conoce la regla de propiedad.
type ProjectAccess struct {
	projectRepo repository.ProjectRepository
}

// NewProjectAccess construye el servicio de acceso.
func NewProjectAccess(projectRepo repository.ProjectRepository) *ProjectAccess {
	return &ProjectAccess{projectRepo: projectRepo}
}

// Authorize devuelve el proyecto si el actor es su propietario o administrador.
// ErrNotFound si no existe; ErrForbidden si pertenece a otro usuario.
// Devuelve error envuelto solo ante fallos de infraestructura.
func (s *ProjectAccess) Authorize(ctx context.Context, actor dto.Actor, projectID string) (*entity.Project, error) {
	if projectID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("access: obtener proyecto: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.OwnerID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return p, nil
}
