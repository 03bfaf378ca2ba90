package entity

import "time"

// Frecuencias de copia de seguridad.
const (
	BackupDaily  = "daily"
	BackupWeekly = "weekly"
)

// BackupSettings preferencias de copia de seguridad de un usuario.
type BackupSettings struct {
	UserID           string
	Enabled          bool
	Frequency        string
	IncludeDocuments bool
	LastBackupAt     *time.Time
	LastBackupKey    string
	UpdatedAt        time.Time
}

// Due informa si toca una nueva copia en el instante now.
func (b *BackupSettings) Due(now time.Time) bool {
	if !b.Enabled {
		return false
	}
	if b.LastBackupAt == nil {
		return true
	}
	period := 24 * time.Hour
	if b.Frequency == BackupWeekly {
		period = 7 * 24 * time.Hour
	}
	return now.Sub(*b.LastBackupAt) >= period
}
