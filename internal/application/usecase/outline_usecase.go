package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/events"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/outline"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// OutlineUseCase contornos trazados y su exportación a DXF/SVG/PDF.
type OutlineUseCase struct {
	repo     repository.OutlineRepository
	exporter ports.OutlineExporter
	access   *ProjectAccess
	notifier *events.Notifier
}

// NewOutlineUseCase construye el caso de uso.
func NewOutlineUseCase(repo repository.OutlineRepository, exporter ports.OutlineExporter, access *ProjectAccess, notifier *events.Notifier) *OutlineUseCase {
	return &OutlineUseCase{repo: repo, exporter: exporter, access: access, notifier: notifier}
}

// Create valida y guarda un contorno nuevo.
func (uc *OutlineUseCase) Create(ctx context.Context, actor dto.Actor, projectID string, in dto.SaveOutlineRequest) (*dto.OutlineResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	o := &entity.Outline{
		ID:        uuid.New().String(),
		ProjectID: p.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyOutline(o, in)
	if err := outline.Validate(o); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "outlines", entity.ChangeInsert, o.ID, p.ID, p.OwnerID)
	return toOutlineResponse(o), nil
}

// Get devuelve un contorno.
func (uc *OutlineUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.OutlineResponse, error) {
	o, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toOutlineResponse(o), nil
}

// List devuelve los contornos del proyecto.
func (uc *OutlineUseCase) List(ctx context.Context, actor dto.Actor, projectID string) ([]dto.OutlineResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OutlineResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOutlineResponse(o))
	}
	return out, nil
}

// Update reemplaza nombre, dimensiones y formas.
func (uc *OutlineUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.SaveOutlineRequest) (*dto.OutlineResponse, error) {
	o, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	applyOutline(o, in)
	if err := outline.Validate(o); err != nil {
		return nil, err
	}
	o.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "outlines", entity.ChangeUpdate, o.ID, p.ID, p.OwnerID)
	return toOutlineResponse(o), nil
}

// Delete elimina el contorno.
func (uc *OutlineUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	o, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, o.ID); err != nil {
		return err
	}
	uc.notifier.Changed(ctx, "outlines", entity.ChangeDelete, o.ID, p.ID, p.OwnerID)
	return nil
}

// Export genera el archivo del contorno en el formato pedido (dxf, svg o pdf).
func (uc *OutlineUseCase) Export(ctx context.Context, actor dto.Actor, id, format string) (*dto.ExportedFile, error) {
	o, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Export(o, strings.ToLower(format))
}

func (uc *OutlineUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Outline, *entity.Project, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if o == nil {
		return nil, nil, domain.ErrNotFound
	}
	p, err := uc.access.Authorize(ctx, actor, o.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return o, p, nil
}

func applyOutline(o *entity.Outline, in dto.SaveOutlineRequest) {
	o.Name = strings.TrimSpace(in.Name)
	o.Width = in.Width
	o.Height = in.Height
	o.Shapes = in.Shapes
	if o.Shapes == nil {
		o.Shapes = []entity.Shape{}
	}
}

func toOutlineResponse(o *entity.Outline) *dto.OutlineResponse {
	return &dto.OutlineResponse{
		ID:        o.ID,
		ProjectID: o.ProjectID,
		Name:      o.Name,
		Unit:      "mm",
		Width:     o.Width,
		Height:    o.Height,
		Shapes:    o.Shapes,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
