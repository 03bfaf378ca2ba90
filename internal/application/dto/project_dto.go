package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleDTO datos del certificado de matriculación.
type VehicleDTO struct {
	Registration      string     `json:"registration"`
	FirstRegistration *time.Time `json:"first_registration,omitempty"`
	Brand             string     `json:"brand"`
	Type              string     `json:"type"`
	CommercialName    string     `json:"commercial_name"`
	VIN               string     `json:"vin" validate:"omitempty,max=17"`
	PTAC              int        `json:"ptac" validate:"min=0"`
	EmptyMass         int        `json:"empty_mass" validate:"min=0"`
	Genre             string     `json:"genre"`
	Energy            string     `json:"energy"`
	Seats             int        `json:"seats" validate:"min=0,max=20"`
}

// CreateProjectRequest entrada para crear un proyecto.
type CreateProjectRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Budget      decimal.Decimal `json:"budget"`
	Vehicle     VehicleDTO      `json:"vehicle"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	TargetDate  *time.Time      `json:"target_date,omitempty"`
}

// UpdateProjectRequest actualización parcial; solo se aplican los campos no nil.
type UpdateProjectRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description,omitempty"`
	Status      *string          `json:"status,omitempty" validate:"omitempty,oneof=planning in_progress completed"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	Vehicle     *VehicleDTO      `json:"vehicle,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	TargetDate  *time.Time       `json:"target_date,omitempty"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Budget      decimal.Decimal `json:"budget"`
	Vehicle     VehicleDTO      `json:"vehicle"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	TargetDate  *time.Time      `json:"target_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProjectListResponse listado paginado.
type ProjectListResponse struct {
	Items []ProjectResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
