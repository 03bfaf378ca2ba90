package entity

import "time"

// ScenarioItem un accesorio previsto en un escenario de aménagement.
type ScenarioItem struct {
	AccessoryID string
	Quantity    int
}

// Scenario variante de aménagement de un proyecto. Un proyecto con escenarios
// tiene exactamente uno con IsPrincipal=true.
type Scenario struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	IsPrincipal bool
	Items       []ScenarioItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
