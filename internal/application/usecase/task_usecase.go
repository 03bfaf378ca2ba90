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

// TaskUseCase casos de uso del plan de trabajo.
type TaskUseCase struct {
	repo     repository.TaskRepository
	access   *ProjectAccess
	notifier *events.Notifier
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository, access *ProjectAccess, notifier *events.Notifier) *TaskUseCase {
	return &TaskUseCase{repo: repo, access: access, notifier: notifier}
}

// Create añade una tarea al proyecto.
func (uc *TaskUseCase) Create(ctx context.Context, actor dto.Actor, projectID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Position < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	t := &entity.Task{
		ID:          uuid.New().String(),
		ProjectID:   p.ID,
		Title:       title,
		Description: in.Description,
		Category:    in.Category,
		DueDate:     in.DueDate,
		Position:    in.Position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "tasks", entity.ChangeInsert, t.ID, p.ID, p.OwnerID)
	return toTaskResponse(t), nil
}

// List devuelve las tareas ordenadas por posición y fecha de creación.
func (uc *TaskUseCase) List(ctx context.Context, actor dto.Actor, projectID string) ([]dto.TaskResponse, error) {
	p, err := uc.access.Authorize(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTaskResponse(t))
	}
	return out, nil
}

// Update aplica una actualización parcial.
func (uc *TaskUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	t, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.ErrInvalidInput
		}
		t.Title = title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.Done != nil {
		t.Done = *in.Done
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.Position != nil {
		if *in.Position < 0 {
			return nil, domain.ErrInvalidInput
		}
		t.Position = *in.Position
	}
	return uc.save(ctx, t, p)
}

// Toggle invierte el indicador Done.
func (uc *TaskUseCase) Toggle(ctx context.Context, actor dto.Actor, id string) (*dto.TaskResponse, error) {
	t, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	t.Done = !t.Done
	return uc.save(ctx, t, p)
}

// Delete elimina la tarea.
func (uc *TaskUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	t, p, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, t.ID); err != nil {
		return err
	}
	uc.notifier.Changed(ctx, "tasks", entity.ChangeDelete, t.ID, p.ID, p.OwnerID)
	return nil
}

func (uc *TaskUseCase) save(ctx context.Context, t *entity.Task, p *entity.Project) (*dto.TaskResponse, error) {
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "tasks", entity.ChangeUpdate, t.ID, p.ID, p.OwnerID)
	return toTaskResponse(t), nil
}

func (uc *TaskUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Task, *entity.Project, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if t == nil {
		return nil, nil, domain.ErrNotFound
	}
	p, err := uc.access.Authorize(ctx, actor, t.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return t, p, nil
}

func toTaskResponse(t *entity.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Done:        t.Done,
		DueDate:     t.DueDate,
		Position:    t.Position,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
