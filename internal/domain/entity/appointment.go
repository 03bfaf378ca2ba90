package entity

import "time"

// Tipos de cita.
const (
	AppointmentGarage   = "garage"
	AppointmentDREAL    = "dreal"
	AppointmentSupplier = "supplier"
	AppointmentOther    = "other"
)

// Appointment cita ligada a un proyecto (taller, inspección DREAL, proveedor).
type Appointment struct {
	ID        string
	ProjectID string
	Title     string
	Kind      string
	StartsAt  time.Time
	Location  string
	Notes     string
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidAppointmentKind informa si k es un tipo de cita válido.
func ValidAppointmentKind(k string) bool {
	switch k {
	case AppointmentGarage, AppointmentDREAL, AppointmentSupplier, AppointmentOther:
		return true
	}
	return false
}
