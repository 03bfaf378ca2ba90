package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectSummaryDTO resumen de avance y presupuesto de un proyecto.
type ProjectSummaryDTO struct {
	ProjectID       string                  `json:"project_id"`
	Name            string                  `json:"name"`
	Status          string                  `json:"status"`
	Budget          decimal.Decimal         `json:"budget"`
	SpentTTC        decimal.Decimal         `json:"spent_ttc"`
	Paid            decimal.Decimal         `json:"paid"`
	Unpaid          decimal.Decimal         `json:"unpaid"`
	Remaining       decimal.Decimal         `json:"remaining"`
	TasksDone       int                     `json:"tasks_done"`
	TasksTotal      int                     `json:"tasks_total"`
	CompletionPct   decimal.Decimal         `json:"completion_pct"`
	NextAppointment *AppointmentResponse    `json:"next_appointment,omitempty"`
	Principal       *ScenarioTotalsResponse `json:"principal_scenario,omitempty"`
	GeneratedAt     time.Time               `json:"generated_at"`
}

// OverviewDTO resúmenes de todos los proyectos del usuario.
type OverviewDTO struct {
	Projects    []ProjectSummaryDTO `json:"projects"`
	TotalBudget decimal.Decimal     `json:"total_budget"`
	TotalSpent  decimal.Decimal     `json:"total_spent"`
}
