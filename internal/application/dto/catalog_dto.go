package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest entrada para crear una categoría. Slug vacío = derivado del nombre.
type CreateCategoryRequest struct {
	ParentID string `json:"parent_id" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Slug     string `json:"slug" validate:"omitempty,max=120"`
	Position int    `json:"position" validate:"min=0"`
}

// UpdateCategoryRequest actualización parcial.
type UpdateCategoryRequest struct {
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Slug     *string `json:"slug,omitempty" validate:"omitempty,max=120"`
	Position *int    `json:"position,omitempty" validate:"omitempty,min=0"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAccessoryRequest entrada para crear un accesorio del catálogo.
type CreateAccessoryRequest struct {
	CategoryID        string          `json:"category_id" validate:"omitempty,uuid"`
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Brand             string          `json:"brand" validate:"omitempty,max=120"`
	Reference         string          `json:"reference" validate:"required,min=1,max=60"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	WeightKg          decimal.Decimal `json:"weight_kg"`
	PowerW            decimal.Decimal `json:"power_w"`
	LowStockThreshold int             `json:"low_stock_threshold" validate:"min=0"`
	Published         bool            `json:"published"`
}

// UpdateAccessoryRequest actualización parcial. StockStatus permite forzar el estado a mano.
type UpdateAccessoryRequest struct {
	CategoryID        *string          `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Name              *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Brand             *string          `json:"brand,omitempty"`
	Reference         *string          `json:"reference,omitempty" validate:"omitempty,min=1,max=60"`
	Description       *string          `json:"description,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	WeightKg          *decimal.Decimal `json:"weight_kg,omitempty"`
	PowerW            *decimal.Decimal `json:"power_w,omitempty"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty" validate:"omitempty,min=0"`
	StockStatus       *string          `json:"stock_status,omitempty" validate:"omitempty,oneof=in_stock low_stock out_of_stock"`
	Published         *bool            `json:"published,omitempty"`
	ImageKey          *string          `json:"image_key,omitempty"`
}

// AccessoryFilterRequest filtros del listado (query string).
type AccessoryFilterRequest struct {
	CategoryID string `query:"category_id"`
	Query      string `query:"q"`
	PageRequest
}

// AccessoryResponse salida de un accesorio. Cost solo se rellena para administradores.
type AccessoryResponse struct {
	ID                string           `json:"id"`
	CategoryID        string           `json:"category_id,omitempty"`
	Name              string           `json:"name"`
	Brand             string           `json:"brand"`
	Reference         string           `json:"reference"`
	Description       string           `json:"description"`
	Price             decimal.Decimal  `json:"price"`
	Cost              *decimal.Decimal `json:"cost,omitempty"`
	WeightKg          decimal.Decimal  `json:"weight_kg"`
	PowerW            decimal.Decimal  `json:"power_w"`
	StockQuantity     int              `json:"stock_quantity"`
	LowStockThreshold int              `json:"low_stock_threshold"`
	StockStatus       string           `json:"stock_status"`
	Published         bool             `json:"published"`
	ImageKey          string           `json:"image_key,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// RegisterMovementRequest entrada para registrar un movimiento de stock (admin).
type RegisterMovementRequest struct {
	Type      string           `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity  int              `json:"quantity" validate:"min=0"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference string           `json:"reference" validate:"omitempty,max=120"`
}

// StockMovementResponse salida de un movimiento.
type StockMovementResponse struct {
	ID          string          `json:"id"`
	AccessoryID string          `json:"accessory_id"`
	Type        string          `json:"type"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Reference   string          `json:"reference,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RestockSuggestionDTO accesorio bajo umbral con la cantidad sugerida a pedir.
type RestockSuggestionDTO struct {
	AccessoryID       string          `json:"accessory_id"`
	Reference         string          `json:"reference"`
	Name              string          `json:"name"`
	Brand             string          `json:"brand"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	StockStatus       string          `json:"stock_status"`
	SuggestedQuantity int             `json:"suggested_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
}
