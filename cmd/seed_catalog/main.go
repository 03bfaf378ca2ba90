// seed_catalog genera el script SQL que carga el catálogo de accesorios a partir de la
// exportación CSV del proveedor (Windows-1252, separador ';', decimales con coma).
//
// Columnas: reference;name;brand;category_slug;price;weight_kg;power_w
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogue.csv] [salida.sql]
// Por defecto lee catalogue.csv y escribe migrations/900_seed_catalog.sql.
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/vanbuilder-api/pkg/textnorm"
)

// catalogNamespace fija los UUID de los accesorios sembrados: la misma referencia produce siempre el mismo id.
var catalogNamespace = uuid.MustParse("6f1d3c2a-8b7e-4c1f-9a0d-5e2b7c4d9f10")

type catalogRow struct {
	Reference    string
	Name         string
	Brand        string
	CategorySlug string
	Price        decimal.Decimal
	WeightKg     decimal.Decimal
	PowerW       decimal.Decimal
}

func main() {
	csvPath := "catalogue.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := filepath.Join("migrations", "900_seed_catalog.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := parseCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	var b strings.Builder
	writeSQL(&b, rows)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d accesorios\n", outPath, len(rows))
}

// parseCatalog decodifica el CSV del proveedor. La primera fila es la cabecera.
// Una referencia repetida conserva la última aparición.
func parseCatalog(r io.Reader) ([]catalogRow, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.Windows1252.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = 7
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("cabecera: %w", err)
	}

	byRef := make(map[string]catalogRow)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		byRef[row.Reference] = row
	}

	rows := make([]catalogRow, 0, len(byRef))
	for _, row := range byRef {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Reference < rows[j].Reference })
	return rows, nil
}

func parseRow(rec []string) (catalogRow, error) {
	row := catalogRow{
		Reference:    strings.ToUpper(strings.TrimSpace(rec[0])),
		Name:         strings.TrimSpace(rec[1]),
		Brand:        strings.TrimSpace(rec[2]),
		CategorySlug: textnorm.Slug(rec[3]),
	}
	if row.Reference == "" || row.Name == "" {
		return row, errors.New("referencia y nombre son obligatorios")
	}
	var err error
	if row.Price, err = frenchDecimal(rec[4]); err != nil {
		return row, fmt.Errorf("precio: %w", err)
	}
	if row.WeightKg, err = frenchDecimal(rec[5]); err != nil {
		return row, fmt.Errorf("peso: %w", err)
	}
	if row.PowerW, err = frenchDecimal(rec[6]); err != nil {
		return row, fmt.Errorf("potencia: %w", err)
	}
	if row.Price.IsNegative() || row.WeightKg.IsNegative() || row.PowerW.IsNegative() {
		return row, errors.New("valores negativos")
	}
	return row, nil
}

// frenchDecimal acepta "1 234,50", "1234.5" o vacío (cero).
func frenchDecimal(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "€", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.Replace(s, ",", ".", 1))
}

func writeSQL(w io.StringWriter, rows []catalogRow) {
	_, _ = w.WriteString("-- Generado por cmd/seed_catalog. No editar a mano.\n")
	_, _ = w.WriteString("BEGIN;\n\n")
	for _, r := range rows {
		category := "NULL"
		if r.CategorySlug != "" {
			category = fmt.Sprintf("(SELECT id FROM categories WHERE slug = %s)", quote(r.CategorySlug))
		}
		_, _ = w.WriteString(fmt.Sprintf(
			"INSERT INTO accessories (id, category_id, name, brand, reference, price, weight_kg, power_w)\n"+
				"VALUES (%s, %s, %s, %s, %s, %s, %s, %s)\n"+
				"ON CONFLICT (reference) DO UPDATE SET category_id = EXCLUDED.category_id, name = EXCLUDED.name, "+
				"brand = EXCLUDED.brand, price = EXCLUDED.price, weight_kg = EXCLUDED.weight_kg, "+
				"power_w = EXCLUDED.power_w, updated_at = now();\n",
			quote(uuid.NewSHA1(catalogNamespace, []byte(r.Reference)).String()),
			category, quote(r.Name), quote(r.Brand), quote(r.Reference),
			r.Price.StringFixed(2), r.WeightKg.String(), r.PowerW.String(),
		))
	}
	_, _ = w.WriteString("\nCOMMIT;\n")
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
