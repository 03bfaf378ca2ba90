package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/rti"
)

var pieceLabels = map[string]string{
	rti.PieceProvided: "Fourni",
	rti.PieceMissing:  "Manquant",
	rti.PieceManual:   "À joindre",
}

// GenerateDossier genera el dossier RTI: identificación del vehículo, equipamiento,
// cálculo de masa y checklist de piezas.
func (g *MarotoPDFGenerator) GenerateDossier(_ context.Context, project *entity.Project, d *dto.DossierResponse) ([]byte, error) {
	m := newDocument("Dossier RTI "+project.Name, "VanBuilder")

	m.AddRows(row.New(18).Add(
		col.New(8).Add(
			text.New("DOSSIER DE RÉCEPTION À TITRE ISOLÉ", props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New(project.Name, props.Text{Size: 10, Top: 9}),
		),
		col.New(4).Add(
			text.New("Édité le "+time.Now().Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 2, Color: colorGray}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("VÉHICULE"))
	v := d.Vehicle
	m.AddRows(
		pairRow("Immatriculation (A)", nonEmpty(v.Registration, "-"), "VIN (E)", nonEmpty(v.VIN, "-")),
		pairRow("Marque (D.1)", nonEmpty(v.Brand, "-"), "Type (D.2)", nonEmpty(v.Type, "-")),
		pairRow("Genre (J.1)", nonEmpty(v.Genre, "-"), "Énergie (P.3)", nonEmpty(v.Energy, "-")),
		pairRow("PTAC (F.1)", fmt.Sprintf("%d kg", v.PTAC), "Places assises (S.1)", fmt.Sprintf("%d", v.Seats)),
	)

	m.AddRows(sectionRow("ÉQUIPEMENTS INSTALLÉS"))
	if len(d.Equipment) == 0 {
		m.AddRows(row.New(7).Add(cell("Aucun scénario principal ou scénario vide.", 12, align.Left)))
	} else {
		m.AddRows(tableHeaderRow(
			tableCol{"Équipement", 6, align.Left},
			tableCol{"Marque", 2, align.Left},
			tableCol{"Qté", 1, align.Center},
			tableCol{"Masse unit.", 1, align.Right},
			tableCol{"Masse totale", 2, align.Right},
		))
		for _, e := range d.Equipment {
			m.AddRows(row.New(7).Add(
				cell(e.Name, 6, align.Left),
				cell(e.Brand, 2, align.Left),
				cell(fmt.Sprintf("%d", e.Quantity), 1, align.Center),
				cell(formatKg(e.UnitWeightKg), 1, align.Right),
				cell(formatKg(e.TotalWeightKg), 2, align.Right),
			))
		}
	}

	m.AddRows(sectionRow("MASSE EN CHARGE"))
	m.AddRows(massRows(d.Mass)...)

	m.AddRows(sectionRow("PIÈCES DU DOSSIER"))
	for _, p := range d.Checklist {
		m.AddRows(pieceRow(p))
	}

	status := "Dossier incomplet : compléter les pièces manquantes avant le rendez-vous DREAL."
	if d.Complete {
		status = "Toutes les pièces déductibles sont réunies. Joindre les attestations manuelles."
	}
	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New(status, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorPrimary, Top: 2}),
	)))

	return render(m)
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
	))
}

func pairRow(k1, v1, k2, v2 string) core.Row {
	key := func(s string) core.Col {
		return col.New(3).Add(text.New(s, props.Text{Size: 8, Color: colorGray, Top: 1}))
	}
	val := func(s string) core.Col {
		return col.New(3).Add(text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}))
	}
	return row.New(6).Add(key(k1), val(v1), key(k2), val(v2))
}

func massRows(r rti.MassReport) []core.Row {
	entry := func(label string, v decimal.Decimal, bold bool) core.Row {
		p := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if bold {
			p.Style = fontstyle.Bold
		}
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{Size: 8, Top: 1, Style: p.Style})),
			col.New(3).Add(text.New(formatKg(v), p)),
		)
	}
	verdict := "CONFORME"
	color := colorPrimary
	if !r.Compliant {
		verdict, color = "NON CONFORME", colorRed
	}
	return []core.Row{
		entry("Masse en service (G.1)", r.EmptyMass, false),
		entry("Équipements", r.Equipment, false),
		entry("Passagers", r.Passengers, false),
		entry("Eau", r.Water, false),
		entry("Chargement", r.Extra, false),
		entry("Masse en charge", r.Total, true),
		entry("PTAC", r.PTAC, false),
		entry("Marge", r.Margin, true),
		row.New(8).Add(col.New(12).Add(
			text.New(verdict, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: color, Top: 2, Right: 1}),
		)),
	}
}

func pieceRow(p rti.Piece) core.Row {
	color := colorGray
	switch p.Status {
	case rti.PieceProvided:
		color = colorPrimary
	case rti.PieceMissing:
		color = colorRed
	}
	return row.New(6).Add(
		col.New(9).Add(text.New(p.Label, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(3).Add(text.New(pieceLabels[p.Status], props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: color, Top: 1, Right: 1})),
	)
}

func formatKg(d decimal.Decimal) string {
	return formatNumber(d, 1) + " kg"
}
