package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
	"github.com/jhoicas/vanbuilder-api/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BackupRepos repositorios leídos para construir una copia.
type BackupRepos struct {
	Settings     repository.BackupSettingsRepository
	Projects     repository.ProjectRepository
	Tasks        repository.TaskRepository
	Expenses     repository.ExpenseRepository
	Appointments repository.AppointmentRepository
	Scenarios    repository.ScenarioRepository
}

// BackupUseCase copias de seguridad en libro xlsx subidas al almacenamiento de objetos.
type BackupUseCase struct {
	repos    BackupRepos
	workbook ports.WorkbookBuilder
	storage  ports.ObjectStorage
	log      *logger.Logger
	now      func() time.Time
}

// NewBackupUseCase construye el caso de uso.
func NewBackupUseCase(repos BackupRepos, workbook ports.WorkbookBuilder, storage ports.ObjectStorage, log *logger.Logger) *BackupUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BackupUseCase{repos: repos, workbook: workbook, storage: storage, log: log.Named("backup"), now: time.Now}
}

// GetSettings devuelve las preferencias; sin registro previo, copia diaria deshabilitada.
func (uc *BackupUseCase) GetSettings(ctx context.Context, actor dto.Actor) (*dto.BackupSettingsResponse, error) {
	s, err := uc.settings(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return toBackupSettingsResponse(s), nil
}

// SaveSettings guarda las preferencias conservando la información de la última copia.
func (uc *BackupUseCase) SaveSettings(ctx context.Context, actor dto.Actor, in dto.SaveBackupSettingsRequest) (*dto.BackupSettingsResponse, error) {
	if in.Frequency != entity.BackupDaily && in.Frequency != entity.BackupWeekly {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.settings(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	s.Enabled = in.Enabled
	s.Frequency = in.Frequency
	s.IncludeDocuments = in.IncludeDocuments
	s.UpdatedAt = uc.now()
	if err := uc.repos.Settings.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return toBackupSettingsResponse(s), nil
}

// RunBackup genera la copia del actor, la sube y devuelve una URL de descarga temporal.
func (uc *BackupUseCase) RunBackup(ctx context.Context, actor dto.Actor) (*dto.BackupResponse, error) {
	s, err := uc.settings(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	key, at, err := uc.backup(ctx, s)
	if err != nil {
		return nil, err
	}
	url, _, err := uc.storage.PresignGet(ctx, key)
	if err != nil {
		return nil, err
	}
	return &dto.BackupResponse{Key: key, URL: url, CreatedAt: at}, nil
}

// RunDue ejecuta las copias programadas que tocan en now. Los fallos de un usuario se registran
// y no detienen el barrido. Devuelve cuántas copias se hicieron.
func (uc *BackupUseCase) RunDue(ctx context.Context, now time.Time) int {
	list, err := uc.repos.Settings.ListEnabled(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("no se pudieron listar las copias programadas")
		return 0
	}
	done := 0
	for _, s := range list {
		if ctx.Err() != nil {
			break
		}
		if !s.Due(now) {
			continue
		}
		key, _, err := uc.backup(ctx, s)
		if err != nil {
			uc.log.Error().Err(err).Str("user_id", s.UserID).Msg("copia programada fallida")
			continue
		}
		uc.log.Info().Str("user_id", s.UserID).Str("key", key).Msg("copia programada completada")
		done++
	}
	return done
}

func (uc *BackupUseCase) backup(ctx context.Context, s *entity.BackupSettings) (string, time.Time, error) {
	snap, err := uc.snapshot(ctx, s)
	if err != nil {
		return "", time.Time{}, err
	}
	data, err := uc.workbook.BuildBackup(snap)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("backup: generar libro: %w", err)
	}
	at := uc.now().UTC()
	key := fmt.Sprintf("backups/%s/%s.xlsx", s.UserID, at.Format("20060102T150405Z"))
	if err := uc.storage.Put(ctx, key, xlsxContentType, data); err != nil {
		return "", time.Time{}, err
	}
	if err := uc.repos.Settings.UpdateLastBackup(ctx, s.UserID, at, key); err != nil {
		return "", time.Time{}, err
	}
	return key, at, nil
}

func (uc *BackupUseCase) snapshot(ctx context.Context, s *entity.BackupSettings) (*ports.BackupSnapshot, error) {
	snap := &ports.BackupSnapshot{IncludeDocuments: s.IncludeDocuments}
	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		page, err := uc.repos.Projects.ListByOwner(ctx, s.UserID, pageSize, offset)
		if err != nil {
			return nil, err
		}
		snap.Projects = append(snap.Projects, page...)
		if len(page) < pageSize {
			break
		}
	}
	for _, p := range snap.Projects {
		tasks, err := uc.repos.Tasks.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		snap.Tasks = append(snap.Tasks, tasks...)
		expenses, err := uc.repos.Expenses.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		snap.Expenses = append(snap.Expenses, expenses...)
		appts, err := uc.repos.Appointments.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		snap.Appointments = append(snap.Appointments, appts...)
		scenarios, err := uc.repos.Scenarios.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		snap.Scenarios = append(snap.Scenarios, scenarios...)
	}
	return snap, nil
}

func (uc *BackupUseCase) settings(ctx context.Context, userID string) (*entity.BackupSettings, error) {
	s, err := uc.repos.Settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.BackupSettings{UserID: userID, Frequency: entity.BackupDaily}
	}
	return s, nil
}

func toBackupSettingsResponse(s *entity.BackupSettings) *dto.BackupSettingsResponse {
	return &dto.BackupSettingsResponse{
		Enabled:          s.Enabled,
		Frequency:        s.Frequency,
		IncludeDocuments: s.IncludeDocuments,
		LastBackupAt:     s.LastBackupAt,
		LastBackupKey:    s.LastBackupKey,
	}
}
