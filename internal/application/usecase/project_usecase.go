package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/events"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// ProjectUseCase casos de uso de proyectos de camperización.
type ProjectUseCase struct {
	repo     repository.ProjectRepository
	access   *ProjectAccess
	notifier *events.Notifier
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, access *ProjectAccess, notifier *events.Notifier) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, access: access, notifier: notifier}
}

// Create crea un proyecto en estado planning para el actor.
func (uc *ProjectUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Budget.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Project{
		ID:          uuid.New().String(),
		OwnerID:     actor.UserID,
		Name:        name,
		Description: in.Description,
		Status:      entity.ProjectStatusPlanning,
		Budget:      in.Budget,
		Vehicle:     vehicleFromDTO(in.Vehicle),
		StartDate:   in.StartDate,
		TargetDate:  in.TargetDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "projects", entity.ChangeInsert, p.ID, p.ID, p.OwnerID)
	return ToProjectResponse(p), nil
}

// Get devuelve un proyecto del actor.
func (uc *ProjectUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.ProjectResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToProjectResponse(p), nil
}

// List devuelve los proyectos del actor, más recientes primero.
func (uc *ProjectUseCase) List(ctx context.Context, actor dto.Actor, page dto.PageRequest) (*dto.ProjectListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOwner(ctx, actor.UserID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProjectListResponse{
		Items: make([]dto.ProjectResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range list {
		out.Items = append(out.Items, *ToProjectResponse(p))
	}
	return out, nil
}

// Update aplica una actualización parcial. Pasar status=completed marca el proyecto como terminado.
func (uc *ProjectUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		if !entity.ValidProjectStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		p.Status = *in.Status
	}
	if in.Budget != nil {
		if in.Budget.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Budget = *in.Budget
	}
	if in.Vehicle != nil {
		p.Vehicle = vehicleFromDTO(*in.Vehicle)
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate
	}
	if in.TargetDate != nil {
		p.TargetDate = in.TargetDate
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "projects", entity.ChangeUpdate, p.ID, p.ID, p.OwnerID)
	return ToProjectResponse(p), nil
}

// Delete elimina el proyecto y, en cascada, todo lo que cuelga de él.
func (uc *ProjectUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	p, err := uc.access.Authorize(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, p.ID); err != nil {
		return err
	}
	uc.notifier.Changed(ctx, "projects", entity.ChangeDelete, p.ID, p.ID, p.OwnerID)
	return nil
}

// ApplyVehicle fusiona los campos no vacíos de v sobre el vehículo del proyecto y persiste.
// Lo usa el escaneo del certificado de matriculación. Parte de la fila actual y solo escribe el
// vehículo: p puede haberse leído antes de una llamada lenta al modelo.
func (uc *ProjectUseCase) ApplyVehicle(ctx context.Context, p *entity.Project, v entity.Vehicle) error {
	fresh, err := uc.repo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if fresh == nil {
		return domain.ErrNotFound
	}
	mergeVehicle(&fresh.Vehicle, v)
	fresh.UpdatedAt = time.Now()
	if err := uc.repo.UpdateVehicle(ctx, fresh.ID, fresh.Vehicle, fresh.UpdatedAt); err != nil {
		return err
	}
	*p = *fresh
	uc.notifier.Changed(ctx, "projects", entity.ChangeUpdate, p.ID, p.ID, p.OwnerID)
	return nil
}

func mergeVehicle(dst *entity.Vehicle, src entity.Vehicle) {
	setStr := func(d *string, s string) {
		if strings.TrimSpace(s) != "" {
			*d = strings.TrimSpace(s)
		}
	}
	setStr(&dst.Registration, src.Registration)
	setStr(&dst.Brand, src.Brand)
	setStr(&dst.Type, src.Type)
	setStr(&dst.CommercialName, src.CommercialName)
	setStr(&dst.VIN, src.VIN)
	setStr(&dst.Genre, src.Genre)
	setStr(&dst.Energy, src.Energy)
	if src.FirstRegistration != nil {
		dst.FirstRegistration = src.FirstRegistration
	}
	if src.PTAC > 0 {
		dst.PTAC = src.PTAC
	}
	if src.EmptyMass > 0 {
		dst.EmptyMass = src.EmptyMass
	}
	if src.Seats > 0 {
		dst.Seats = src.Seats
	}
}

func vehicleFromDTO(v dto.VehicleDTO) entity.Vehicle {
	return entity.Vehicle{
		Registration:      strings.ToUpper(strings.TrimSpace(v.Registration)),
		FirstRegistration: v.FirstRegistration,
		Brand:             v.Brand,
		Type:              v.Type,
		CommercialName:    v.CommercialName,
		VIN:               strings.ToUpper(strings.TrimSpace(v.VIN)),
		PTAC:              v.PTAC,
		EmptyMass:         v.EmptyMass,
		Genre:             v.Genre,
		Energy:            v.Energy,
		Seats:             v.Seats,
	}
}

// ToVehicleDTO convierte el vehículo de dominio a DTO.
func ToVehicleDTO(v entity.Vehicle) dto.VehicleDTO {
	return dto.VehicleDTO{
		Registration:      v.Registration,
		FirstRegistration: v.FirstRegistration,
		Brand:             v.Brand,
		Type:              v.Type,
		CommercialName:    v.CommercialName,
		VIN:               v.VIN,
		PTAC:              v.PTAC,
		EmptyMass:         v.EmptyMass,
		Genre:             v.Genre,
		Energy:            v.Energy,
		Seats:             v.Seats,
	}
}

// ToProjectResponse convierte el proyecto a DTO.
func ToProjectResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Budget:      p.Budget,
		Vehicle:     ToVehicleDTO(p.Vehicle),
		StartDate:   p.StartDate,
		TargetDate:  p.TargetDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
