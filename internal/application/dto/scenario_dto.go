package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScenarioItemDTO línea de un escenario.
type ScenarioItemDTO struct {
	AccessoryID string `json:"accessory_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
}

// CreateScenarioRequest entrada para crear un escenario.
type CreateScenarioRequest struct {
	Name        string            `json:"name" validate:"required,min=1,max=200"`
	Description string            `json:"description"`
	Items       []ScenarioItemDTO `json:"items" validate:"dive"`
}

// UpdateScenarioRequest actualización parcial de nombre/descripción.
type UpdateScenarioRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
}

// SetScenarioItemsRequest reemplaza la lista completa de ítems.
type SetScenarioItemsRequest struct {
	Items []ScenarioItemDTO `json:"items" validate:"dive"`
}

// ScenarioResponse salida de un escenario.
type ScenarioResponse struct {
	ID          string            `json:"id"`
	ProjectID   string            `json:"project_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IsPrincipal bool              `json:"is_principal"`
	Items       []ScenarioItemDTO `json:"items"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ScenarioTotalsResponse sumas de precio, peso y potencia de los ítems.
type ScenarioTotalsResponse struct {
	ScenarioID string          `json:"scenario_id"`
	Price      decimal.Decimal `json:"price"`
	WeightKg   decimal.Decimal `json:"weight_kg"`
	PowerW     decimal.Decimal `json:"power_w"`
	ItemCount  int             `json:"item_count"`
}
