package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/domain/rti"
)

// RTILoadsRequest cargas declaradas (query string o JSON). Passengers 0 = plazas S.1.
type RTILoadsRequest struct {
	Passengers  int             `json:"passengers" query:"passengers" validate:"min=0,max=20"`
	WaterLiters int             `json:"water_liters" query:"water_liters" validate:"min=0,max=1000"`
	ExtraKg     decimal.Decimal `json:"extra_kg" query:"extra_kg"`
}

// DossierResponse vista previa del dossier RTI.
type DossierResponse struct {
	ProjectID  string              `json:"project_id"`
	Vehicle    VehicleDTO          `json:"vehicle"`
	ScenarioID string              `json:"scenario_id,omitempty"`
	Equipment  []rti.EquipmentLine `json:"equipment"`
	Mass       rti.MassReport      `json:"mass"`
	Checklist  []rti.Piece         `json:"checklist"`
	Complete   bool                `json:"complete"`
}
