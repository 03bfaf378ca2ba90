package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/fakes"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
)

type recordingWorkbook struct {
	snapshots []*ports.BackupSnapshot
	failFor   string
	during    func()
}

func (w *recordingWorkbook) BuildBackup(s *ports.BackupSnapshot) ([]byte, error) {
	w.snapshots = append(w.snapshots, s)
	if w.during != nil {
		w.during()
	}
	if w.failFor != "" && len(s.Projects) > 0 && s.Projects[0].OwnerID == w.failFor {
		return nil, errors.New("excel roto")
	}
	return []byte("xlsx"), nil
}

type backupFixture struct {
	uc       *BackupUseCase
	settings *memrepo.BackupSettings
	storage  *fakes.Storage
	workbook *recordingWorkbook
	now      time.Time
}

func newBackupFixture(settings ...*entity.BackupSettings) *backupFixture {
	now := time.Date(2026, 5, 10, 3, 0, 0, 0, time.UTC)
	projects := memrepo.NewProjects(
		&entity.Project{ID: "p1", OwnerID: "u1", Name: "Sprinter"},
		&entity.Project{ID: "p2", OwnerID: "u2", Name: "Boxer"},
	)
	f := &backupFixture{
		settings: memrepo.NewBackupSettings(settings...),
		storage:  fakes.NewStorage(),
		workbook: &recordingWorkbook{},
		now:      now,
	}
	f.uc = NewBackupUseCase(BackupRepos{
		Settings:     f.settings,
		Projects:     projects,
		Tasks:        memrepo.NewTasks(&entity.Task{ID: "t1", ProjectID: "p1", Title: "Isolation"}),
		Expenses:     memrepo.NewExpenses(),
		Appointments: memrepo.NewAppointments(projects),
		Scenarios:    memrepo.NewScenarios(),
	}, f.workbook, f.storage, nil)
	f.uc.now = func() time.Time { return now }
	return f
}

func TestBackup_RunBackupUploadsAndRecords(t *testing.T) {
	f := newBackupFixture()
	ctx := context.Background()

	out, err := f.uc.RunBackup(ctx, ownerActor)
	require.NoError(t, err)

	assert.Equal(t, "backups/u1/20260510T030000Z.xlsx", out.Key)
	assert.Equal(t, "https://storage.test/"+out.Key, out.URL)
	assert.Contains(t, f.storage.Objects, out.Key)
	assert.Equal(t, xlsxContentType, f.storage.Types[out.Key])

	require.Len(t, f.workbook.snapshots, 1)
	snap := f.workbook.snapshots[0]
	require.Len(t, snap.Projects, 1)
	assert.Equal(t, "p1", snap.Projects[0].ID)
	assert.Len(t, snap.Tasks, 1)

	s, err := f.uc.GetSettings(ctx, ownerActor)
	require.NoError(t, err)
	require.NotNil(t, s.LastBackupAt)
	assert.Equal(t, f.now, *s.LastBackupAt)
	assert.Equal(t, out.Key, s.LastBackupKey)
}

func TestBackup_SaveSettingsValidatesFrequency(t *testing.T) {
	f := newBackupFixture()
	_, err := f.uc.SaveSettings(context.Background(), ownerActor, dto.SaveBackupSettingsRequest{Enabled: true, Frequency: "hourly"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.uc.SaveSettings(context.Background(), ownerActor, dto.SaveBackupSettingsRequest{Enabled: true, Frequency: entity.BackupWeekly, IncludeDocuments: true})
	require.NoError(t, err)
	assert.True(t, out.Enabled)
	assert.Equal(t, entity.BackupWeekly, out.Frequency)
	assert.True(t, out.IncludeDocuments)
}

func TestBackup_RunDue(t *testing.T) {
	now := time.Date(2026, 5, 10, 3, 0, 0, 0, time.UTC)
	twoDaysAgo := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	f := newBackupFixture(
		&entity.BackupSettings{UserID: "u1", Enabled: true, Frequency: entity.BackupDaily, LastBackupAt: &twoDaysAgo},
		&entity.BackupSettings{UserID: "u2", Enabled: true, Frequency: entity.BackupWeekly, LastBackupAt: &yesterday},
		&entity.BackupSettings{UserID: "u3", Enabled: false, Frequency: entity.BackupDaily},
	)

	assert.Equal(t, 1, f.uc.RunDue(context.Background(), now))
	assert.Contains(t, f.storage.Objects, "backups/u1/20260510T030000Z.xlsx")
	assert.Len(t, f.storage.Objects, 1)
}

func TestBackup_RunDueContinuesAfterFailure(t *testing.T) {
	f := newBackupFixture(
		&entity.BackupSettings{UserID: "u1", Enabled: true, Frequency: entity.BackupDaily},
		&entity.BackupSettings{UserID: "u2", Enabled: true, Frequency: entity.BackupDaily},
	)
	f.workbook.failFor = "u1"

	assert.Equal(t, 1, f.uc.RunDue(context.Background(), f.now))
	assert.Contains(t, f.storage.Objects, "backups/u2/20260510T030000Z.xlsx")

	s, err := f.settings.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, s.LastBackupAt, "la copia fallida no se registra")
}

func TestBackup_RunDueKeepsSettingsChangedDuringUpload(t *testing.T) {
	f := newBackupFixture(&entity.BackupSettings{UserID: "u1", Enabled: true, Frequency: entity.BackupDaily})
	ctx := context.Background()
	f.workbook.during = func() {
		_, err := f.uc.SaveSettings(ctx, ownerActor, dto.SaveBackupSettingsRequest{Enabled: false, Frequency: entity.BackupWeekly})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, f.uc.RunDue(ctx, f.now))

	s, err := f.settings.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, s.Enabled)
	assert.Equal(t, entity.BackupWeekly, s.Frequency)
	require.NotNil(t, s.LastBackupAt)
	assert.Equal(t, "backups/u1/20260510T030000Z.xlsx", s.LastBackupKey)
}

func TestBackup_SaveSettingsKeepsLastBackup(t *testing.T) {
	f := newBackupFixture()
	ctx := context.Background()
	out, err := f.uc.RunBackup(ctx, ownerActor)
	require.NoError(t, err)

	saved, err := f.uc.SaveSettings(ctx, ownerActor, dto.SaveBackupSettingsRequest{Enabled: true, Frequency: entity.BackupDaily})
	require.NoError(t, err)
	assert.Equal(t, out.Key, saved.LastBackupKey)
}

func TestBackupSettings_Due(t *testing.T) {
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	sixDays := now.Add(-6 * 24 * time.Hour)
	s := &entity.BackupSettings{Enabled: true, Frequency: entity.BackupWeekly, LastBackupAt: &sixDays}
	assert.False(t, s.Due(now))
	assert.True(t, s.Due(now.Add(24*time.Hour)))

	s.Enabled = false
	assert.False(t, s.Due(now.Add(30*24*time.Hour)))
}
