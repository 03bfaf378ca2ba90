package scan

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/pkg/llmjson"
)

// Campos del certificado de matriculación, en el orden del documento.
var registrationFields = []string{"A", "B", "D.1", "D.2", "D.3", "E", "F.1", "G.1", "J.1", "P.3", "S.1"}

// Campos de una factura.
var invoiceFields = []string{"supplier", "invoice_number", "date", "total_ht", "vat_rate", "total_ttc"}

// DefaultVATRate tasa aplicada cuando la factura no indica IVA ni permite deducirlo.
var DefaultVATRate = decimal.NewFromInt(20)

// usualVATRates tasas francesas vigentes; una tasa deducida se ajusta a la más cercana.
var usualVATRates = []decimal.Decimal{
	decimal.NewFromInt(20), decimal.NewFromInt(10), decimal.RequireFromString("5.5"),
	decimal.RequireFromString("2.1"), decimal.Zero,
}

// Fields campos admitidos por tipo de escaneo.
func Fields(kind string) []string {
	if kind == entity.ScanKindInvoice {
		return invoiceFields
	}
	return registrationFields
}

// decodeFields extrae el objeto JSON de la respuesta y normaliza cada valor a texto.
// Solo se conservan las claves conocidas.
func decodeFields(raw string, keys []string) (map[string]string, error) {
	var generic map[string]any
	if err := llmjson.Decode(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: respuesta OCR sin JSON válido", domain.ErrInvalidInput)
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		switch v := generic[k].(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = strings.TrimSpace(v)
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			out[k] = strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return out, nil
}

// ParseRegistration interpreta la respuesta del modelo para una carte grise.
func ParseRegistration(raw string) (entity.Vehicle, map[string]string, error) {
	fields, err := decodeFields(raw, registrationFields)
	if err != nil {
		return entity.Vehicle{}, nil, err
	}
	return VehicleFromFields(fields), fields, nil
}

// VehicleFromFields convierte los campos del certificado en el vehículo de dominio.
// Campos ausentes o ilegibles quedan a cero.
func VehicleFromFields(f map[string]string) entity.Vehicle {
	v := entity.Vehicle{
		Registration:   strings.ToUpper(f["A"]),
		Brand:          f["D.1"],
		Type:           f["D.2"],
		CommercialName: f["D.3"],
		VIN:            strings.ToUpper(strings.ReplaceAll(f["E"], " ", "")),
		PTAC:           parseInt(f["F.1"]),
		EmptyMass:      parseInt(f["G.1"]),
		Genre:          strings.ToUpper(f["J.1"]),
		Energy:         f["P.3"],
		Seats:          parseInt(f["S.1"]),
	}
	if d, ok := parseDate(f["B"]); ok {
		v.FirstRegistration = &d
	}
	return v
}

// InvoiceData datos leídos de una factura de proveedor.
type InvoiceData struct {
	Supplier      string
	InvoiceNumber string
	Date          *time.Time
	AmountHT      decimal.Decimal
	VATRate       decimal.Decimal
	AmountTTC     decimal.Decimal
}

// ParseInvoice interpreta la respuesta del modelo para una factura.
func ParseInvoice(raw string) (InvoiceData, map[string]string, error) {
	fields, err := decodeFields(raw, invoiceFields)
	if err != nil {
		return InvoiceData{}, nil, err
	}
	return InvoiceFromFields(fields), fields, nil
}

// InvoiceFromFields completa los importes que falten. Sin tasa de IVA se deduce de HT y TTC
// (ajustada a la tasa francesa más cercana) o se usa DefaultVATRate.
func InvoiceFromFields(f map[string]string) InvoiceData {
	inv := InvoiceData{Supplier: f["supplier"], InvoiceNumber: f["invoice_number"]}
	if d, ok := parseDate(f["date"]); ok {
		inv.Date = &d
	}
	ht, hasHT := parseAmount(f["total_ht"])
	ttc, hasTTC := parseAmount(f["total_ttc"])
	rate, hasRate := parseAmount(f["vat_rate"])

	hundred := decimal.NewFromInt(100)
	switch {
	case hasRate:
	case hasHT && hasTTC && ht.IsPositive():
		rate = nearestVATRate(ttc.Div(ht).Sub(decimal.NewFromInt(1)).Mul(hundred))
	default:
		rate = DefaultVATRate
	}
	if !hasHT && hasTTC {
		ht = ttc.Div(decimal.NewFromInt(1).Add(rate.Div(hundred))).Round(2)
	}
	if !hasTTC && hasHT {
		ttc = entity.ComputeTTC(ht, rate)
	}
	inv.AmountHT, inv.VATRate, inv.AmountTTC = ht, rate, ttc
	return inv
}

func nearestVATRate(r decimal.Decimal) decimal.Decimal {
	best := usualVATRates[0]
	for _, c := range usualVATRates[1:] {
		if r.Sub(c).Abs().LessThan(r.Sub(best).Abs()) {
			best = c
		}
	}
	return best
}

// parseInt extrae los dígitos de valores como "3 500 kg".
func parseInt(s string) int {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		} else if r == ',' || r == '.' {
			break
		}
	}
	n, _ := strconv.Atoi(b.String())
	return n
}

// parseAmount admite "1 234,56 €", "1234.56" y "20 %".
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsDigit(r), r == '.', r == '-':
			return r
		case r == ',':
			return '.'
		}
		return -1
	}, s)
	if s == "" {
		return decimal.Zero, false
	}
	// "1.234.56" tras convertir separadores de miles europeos: conservar solo el último punto
	if strings.Count(s, ".") > 1 {
		last := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:last], ".", "") + s[last:]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

var dateLayouts = []string{"02/01/2006", "2006-01-02", "02-01-2006", "02.01.2006", "2/1/2006"}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// cleanValue limpia la respuesta de una relectura de un solo campo.
func cleanValue(raw string) string {
	v := llmjson.StripFences(raw)
	if line, _, ok := strings.Cut(v, "\n"); ok {
		v = line
	}
	return strings.Trim(strings.TrimSpace(v), `"'`)
}

func marshalFields(f map[string]string) json.RawMessage {
	b, _ := json.Marshal(f)
	return b
}
