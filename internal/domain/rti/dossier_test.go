package rti_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/rti"
)

func TestComputeMass_Conforme(t *testing.T) {
	v := entity.Vehicle{EmptyMass: 2100, PTAC: 3500, Seats: 3}
	equip := []rti.EquipmentLine{
		{Name: "Batterie lithium", Quantity: 2, TotalWeightKg: decimal.NewFromInt(30)},
		{Name: "Réservoir eau", Quantity: 1, TotalWeightKg: decimal.NewFromInt(12)},
	}
	r := rti.ComputeMass(v, equip, rti.Loads{WaterLiters: 100, ExtraKg: decimal.NewFromInt(50)})

	// 2100 + 42 + 3*75 + 100 + 50 = 2517
	assert.True(t, r.Total.Equal(decimal.NewFromInt(2517)), "total %s", r.Total)
	assert.True(t, r.Margin.Equal(decimal.NewFromInt(983)))
	assert.True(t, r.Compliant)
}

func TestComputeMass_SobrePTAC(t *testing.T) {
	v := entity.Vehicle{EmptyMass: 3300, PTAC: 3500}
	r := rti.ComputeMass(v, nil, rti.Loads{Passengers: 4})
	assert.False(t, r.Compliant)
	assert.True(t, r.Margin.IsNegative())
}

func TestComputeMass_SinPTAC(t *testing.T) {
	r := rti.ComputeMass(entity.Vehicle{EmptyMass: 1000}, nil, rti.Loads{})
	assert.False(t, r.Compliant, "sin PTAC no se puede declarar conforme")
}

func TestChecklist_Evaluate(t *testing.T) {
	pieces, err := rti.LoadChecklist()
	require.NoError(t, err)
	require.NotEmpty(t, pieces)

	facts := rti.Facts{
		Vehicle:        entity.Vehicle{Registration: "AB-123-CD", VIN: "VF1MA000123456789", PTAC: 3500},
		EquipmentCount: 3,
		MassCompliant:  true,
	}
	got := rti.Evaluate(pieces, facts)

	status := map[string]string{}
	for _, p := range got {
		status[p.ID] = p.Status
	}
	assert.Equal(t, rti.PieceProvided, status["certificat_immatriculation"])
	assert.Equal(t, rti.PieceProvided, status["identification_vin"])
	assert.Equal(t, rti.PieceProvided, status["pesee"])
	assert.Equal(t, rti.PieceMissing, status["factures_equipements"])
	assert.Equal(t, rti.PieceMissing, status["rendez_vous_dreal"])
	assert.Equal(t, rti.PieceManual, status["attestation_gaz"])
	assert.Empty(t, pieces[0].Status, "Evaluate no debe mutar la definición")
}
