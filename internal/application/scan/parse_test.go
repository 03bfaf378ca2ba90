package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
)

func TestParseRegistration_ConFencesYNumeros(t *testing.T) {
	raw := "Voici le résultat :\n```json\n" + `{
  "A": "ab-123-cd", "B": "15/03/2019", "D.1": "FIAT", "D.2": "250AXMFC", "D.3": "DUCATO",
  "E": "ZFA 25000002345678", "F.1": "3 500 kg", "G.1": 2090, "J.1": "ctte", "P.3": "GO", "S.1": "3"
}` + "\n```"

	v, fields, err := ParseRegistration(raw)
	require.NoError(t, err)
	assert.Equal(t, "AB-123-CD", v.Registration)
	require.NotNil(t, v.FirstRegistration)
	assert.Equal(t, time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC), *v.FirstRegistration)
	assert.Equal(t, "ZFA25000002345678", v.VIN)
	assert.Equal(t, 3500, v.PTAC)
	assert.Equal(t, 2090, v.EmptyMass)
	assert.Equal(t, "CTTE", v.Genre)
	assert.Equal(t, 3, v.Seats)
	assert.Equal(t, "2090", fields["G.1"])
	assert.Len(t, fields, len(registrationFields))
}

func TestParseRegistration_SinJSON(t *testing.T) {
	_, _, err := ParseRegistration("je ne peux pas lire ce document")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseInvoice(t *testing.T) {
	cases := []struct {
		name          string
		raw           string
		ht, rate, ttc string
	}{
		{"completa", `{"supplier":"Vanlife Shop","total_ht":"100,00","vat_rate":"20 %","total_ttc":"120,00"}`, "100", "20", "120"},
		{"tasa deducida", `{"total_ht":"1 000,00 €","total_ttc":"1 100,00 €"}`, "1000", "10", "1100"},
		{"solo TTC", `{"total_ttc":"240"}`, "200", "20", "240"},
		{"solo HT", `{"total_ht":"50","vat_rate":"5,5"}`, "50", "5.5", "52.75"},
		{"miles con punto", `{"total_ht":"1.234,50","vat_rate":0}`, "1234.5", "0", "1234.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv, _, err := ParseInvoice(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.ht, inv.AmountHT.String())
			assert.Equal(t, tc.rate, inv.VATRate.String())
			assert.Equal(t, tc.ttc, inv.AmountTTC.String())
		})
	}
}

func TestParseInvoice_Fecha(t *testing.T) {
	inv, _, err := ParseInvoice(`{"date":"2026-02-01","invoice_number":"F-889"}`)
	require.NoError(t, err)
	require.NotNil(t, inv.Date)
	assert.Equal(t, time.February, inv.Date.Month())
	assert.Equal(t, "F-889", inv.InvoiceNumber)
}

func TestCleanValue(t *testing.T) {
	assert.Equal(t, "AB-123-CD", cleanValue("```\n\"AB-123-CD\"\n```"))
	assert.Equal(t, "3500", cleanValue(" 3500\nkg"))
}
