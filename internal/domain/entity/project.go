package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un proyecto de aménagement.
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
)

// Vehicle datos del certificado de matriculación (carte grise) del vehículo a acondicionar.
// Los nombres de campo siguen las casillas del certificado francés.
type Vehicle struct {
	Registration      string     // A: número de matrícula
	FirstRegistration *time.Time // B: fecha de primera matriculación
	Brand             string     // D.1
	Type              string     // D.2
	CommercialName    string     // D.3
	VIN               string     // E
	PTAC              int        // F.1: masa máxima técnicamente admisible (kg)
	EmptyMass         int        // G.1: masa en servicio (kg)
	Genre             string     // J.1: VP, CTTE, VASP...
	Energy            string     // P.3
	Seats             int        // S.1
}

// Project un proyecto de camperización de un vehículo.
type Project struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Status      string
	Budget      decimal.Decimal
	Vehicle     Vehicle
	StartDate   *time.Time
	TargetDate  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidProjectStatus informa si s es un estado válido.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}
