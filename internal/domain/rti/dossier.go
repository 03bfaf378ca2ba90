// Package rti calcula la masa en carga y el estado del dossier de Réception à Titre Isolé.
package rti

import (
	_ "embed"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// Masas convencionales usadas por la DREAL.
var (
	PassengerMassKg = decimal.NewFromInt(75)
	WaterDensityKgL = decimal.NewFromInt(1)
)

// Estados de una pieza del dossier.
const (
	PieceProvided = "provided"
	PieceMissing  = "missing"
	PieceManual   = "manual" // a aportar por el usuario, no deducible de los datos
)

// Loads cargas declaradas por el usuario para el cálculo de masa.
type Loads struct {
	Passengers  int // 0 = plazas del certificado (S.1)
	WaterLiters int
	ExtraKg     decimal.Decimal // equipaje, bicicletas...
}

// EquipmentLine accesorio instalado según el escenario principal.
type EquipmentLine struct {
	AccessoryID   string          `json:"accessory_id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	Quantity      int             `json:"quantity"`
	UnitWeightKg  decimal.Decimal `json:"unit_weight_kg"`
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
}

// MassReport desglose de la masa en carga frente al PTAC.
type MassReport struct {
	EmptyMass  decimal.Decimal `json:"empty_mass_kg"`
	Equipment  decimal.Decimal `json:"equipment_kg"`
	Passengers decimal.Decimal `json:"passengers_kg"`
	Water      decimal.Decimal `json:"water_kg"`
	Extra      decimal.Decimal `json:"extra_kg"`
	Total      decimal.Decimal `json:"total_kg"`
	PTAC       decimal.Decimal `json:"ptac_kg"`
	Margin     decimal.Decimal `json:"margin_kg"`
	Compliant  bool            `json:"compliant"`
}

// ComputeMass suma masa en servicio, equipamiento y cargas y la compara con el PTAC.
// Sin PTAC conocido el resultado nunca es conforme.
func ComputeMass(v entity.Vehicle, equipment []EquipmentLine, loads Loads) MassReport {
	passengers := loads.Passengers
	if passengers <= 0 {
		passengers = v.Seats
	}
	var equip decimal.Decimal
	for _, e := range equipment {
		equip = equip.Add(e.TotalWeightKg)
	}
	r := MassReport{
		EmptyMass:  decimal.NewFromInt(int64(v.EmptyMass)),
		Equipment:  equip,
		Passengers: PassengerMassKg.Mul(decimal.NewFromInt(int64(passengers))),
		Water:      WaterDensityKgL.Mul(decimal.NewFromInt(int64(loads.WaterLiters))),
		Extra:      loads.ExtraKg,
		PTAC:       decimal.NewFromInt(int64(v.PTAC)),
	}
	r.Total = r.EmptyMass.Add(r.Equipment).Add(r.Passengers).Add(r.Water).Add(r.Extra)
	r.Margin = r.PTAC.Sub(r.Total)
	r.Compliant = v.PTAC > 0 && !r.Margin.IsNegative()
	return r
}

// Facts hechos del proyecto de los que dependen las reglas del checklist.
type Facts struct {
	Vehicle             entity.Vehicle
	EquipmentCount      int
	InvoiceCount        int
	HasDREALAppointment bool
	MassCompliant       bool
}

// Piece pieza del checklist evaluada.
type Piece struct {
	ID     string `yaml:"id" json:"id"`
	Label  string `yaml:"label" json:"label"`
	Rule   string `yaml:"rule" json:"-"`
	Status string `yaml:"-" json:"status"`
}

//go:embed checklist.yaml
var checklistYAML []byte

type checklistFile struct {
	Pieces []Piece `yaml:"pieces"`
}

// LoadChecklist decodifica la definición embebida del checklist.
func LoadChecklist() ([]Piece, error) {
	var f checklistFile
	if err := yaml.Unmarshal(checklistYAML, &f); err != nil {
		return nil, fmt.Errorf("rti: checklist: %w", err)
	}
	for _, p := range f.Pieces {
		if _, ok := rules[p.Rule]; !ok && p.Rule != "manual" {
			return nil, fmt.Errorf("rti: regla desconocida %q en pieza %s", p.Rule, p.ID)
		}
	}
	return f.Pieces, nil
}

var rules = map[string]func(Facts) bool{
	"vehicle.registration": func(f Facts) bool { return f.Vehicle.Registration != "" },
	"vehicle.vin":          func(f Facts) bool { return len(f.Vehicle.VIN) == 17 },
	"vehicle.ptac":         func(f Facts) bool { return f.Vehicle.PTAC > 0 },
	"scenario.items":       func(f Facts) bool { return f.EquipmentCount > 0 },
	"expenses.invoices":    func(f Facts) bool { return f.InvoiceCount > 0 },
	"appointments.dreal":   func(f Facts) bool { return f.HasDREALAppointment },
	"mass.compliant":       func(f Facts) bool { return f.MassCompliant },
}

// Evaluate asigna el estado de cada pieza según los hechos. No modifica pieces.
func Evaluate(pieces []Piece, facts Facts) []Piece {
	out := make([]Piece, len(pieces))
	for i, p := range pieces {
		out[i] = p
		if p.Rule == "manual" {
			out[i].Status = PieceManual
			continue
		}
		if rule, ok := rules[p.Rule]; ok && rule(facts) {
			out[i].Status = PieceProvided
		} else {
			out[i].Status = PieceMissing
		}
	}
	return out
}
