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

// AppointmentUseCase casos de uso de citas (taller, DREAL, proveedores).
type AppointmentUseCase struct {
	repo     repository.AppointmentRepository
	access   *ProjectAccess
	notifier *events.Notifier
	now      func() time.Time
}

// NewAppointmentUseCase construye el caso de uso.
func NewAppointmentUseCase(repo repository.AppointmentRepository, access *ProjectAccess, notifier *events.Notifier) *AppointmentUseCase {
	return &AppointmentUseCase{repo: repo, access: access, notifier: notifier, now: time.Now}
}

// Create añade una cita. Sin tipo se registra como other.
func (uc *AppointmentUseCase) Create(ctx context.Context, actor dto.Actor, projectID string, in dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	kind := in.Kind
	if kind == "" {
		kind = entity.AppointmentOther
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || in.StartsAt.IsZero() || !entity.ValidAppointmentKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	a := &entity.Appointment{
		ID:        uuid.New().String(),
		ProjectID: p.ID,
		Title:     title,
		Kind:      kind,
		StartsAt:  in.StartsAt,
		Location:  in.Location,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "appointments", entity.ChangeInsert, a.ID, p.ID, p.OwnerID)
	return ToAppointmentResponse(a), nil
}

// List devuelve las citas del proyecto por fecha.
func (uc *AppointmentUseCase) List(ctx context.Context, actor dto.Actor, projectID string) ([]dto.AppointmentResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(list), nil
}

// Upcoming devuelve las próximas citas pendientes en todos los proyectos del actor.
func (uc *AppointmentUseCase) Upcoming(ctx context.Context, actor dto.Actor, limit int) ([]dto.AppointmentResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	list, err := uc.repo.ListUpcomingByOwner(ctx, actor.UserID, uc.now(), limit)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(list), nil
}

// Update aplica una actualización parcial.
func (uc *AppointmentUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	a, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.ErrInvalidInput
		}
		a.Title = title
	}
	if in.Kind != nil {
		if !entity.ValidAppointmentKind(*in.Kind) {
			return nil, domain.ErrInvalidInput
		}
		a.Kind = *in.Kind
	}
	if in.StartsAt != nil {
		a.StartsAt = *in.StartsAt
	}
	if in.Location != nil {
		a.Location = *in.Location
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}
	if in.Done != nil {
		a.Done = *in.Done
	}
	a.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "appointments", entity.ChangeUpdate, a.ID, p.ID, p.OwnerID)
	return ToAppointmentResponse(a), nil
}

// Delete elimina la cita.
func (uc *AppointmentUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	a, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, a.ID); err != nil {
		return err
	}
	uc.notifier.Changed(ctx, "appointments", entity.ChangeDelete, a.ID, p.ID, p.OwnerID)
	return nil
}

func (uc *AppointmentUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Appointment, *entity.Project, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if a == nil {
		return nil, nil, domain.ErrNotFound
	}
	p, err := uc.access.Authorize(ctx, actor, a.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return a, p, nil
}

func toAppointmentResponses(list []*entity.Appointment) []dto.AppointmentResponse {
	out := make([]dto.AppointmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *ToAppointmentResponse(a))
	}
	return out
}

// ToAppointmentResponse convierte la cita a DTO.
func ToAppointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		Title:     a.Title,
		Kind:      a.Kind,
		StartsAt:  a.StartsAt,
		Location:  a.Location,
		Notes:     a.Notes,
		Done:      a.Done,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
