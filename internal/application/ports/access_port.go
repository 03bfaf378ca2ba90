package ports

import (
	"context"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// ProjectAuthorizer resuelve un proyecto comprobando que el actor es su propietario
// (o administrador). ErrNotFound si no existe, ErrForbidden si es de otro usuario.
type ProjectAuthorizer interface {
	Authorize(ctx context.Context, actor dto.Actor, projectID string) (*entity.Project, error)
}
