// Package pdf genera los documentos imprimibles con Maroto v2: la facture de un pedido
// de la tienda y el dossier RTI de un proyecto.
//
// Layout de la facture (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Boutique + SIRET   │  N° Facture + Date            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENDEUR: Adresse / Email                                   │
//	│  CLIENT: Nom + email + livraison                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qté | Désignation | P.U. TTC | Total TTC            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAUX: HT / TVA / TTC                                     │
//	│  FOOTER: QR de référence + mentions légales                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 31, Green: 87, Blue: 61}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var (
	_ ports.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)
	_ ports.DossierPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// MarotoPDFGenerator implementa los generadores de facture y dossier RTI.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

func render(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateOrderInvoice genera la facture de un pedido y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderInvoice(_ context.Context, order *entity.Order, buyer *entity.User, shop ports.ShopInfo) ([]byte, error) {
	m := newDocument("Facture "+order.Number, shop.Name)

	m.AddRows(invoiceHeaderRow(order, shop))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sellerRow(shop))
	m.AddRows(buyerRow(order, buyer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(
		tableCol{"Qté", 1, align.Center},
		tableCol{"Désignation", 7, align.Left},
		tableCol{"P.U. TTC", 2, align.Right},
		tableCol{"Total TTC", 2, align.Right},
	))
	for _, it := range order.Items {
		m.AddRows(row.New(7).Add(
			cell(fmt.Sprintf("%d", it.Quantity), 1, align.Center),
			cell(it.Name, 7, align.Left),
			cell(formatEuro(it.UnitPrice), 2, align.Right),
			cell(formatEuro(it.Subtotal), 2, align.Right),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order, shop.VATRate))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(invoiceFooterRow(order, shop))

	return render(m)
}

// ── Secciones de la facture ───────────────────────────────────────────────────

func invoiceHeaderRow(order *entity.Order, shop ports.ShopInfo) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(shop.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("SIRET : "+nonEmpty(shop.SIRET, "-"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURE", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(order.Number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Date : "+order.CreatedAt.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func sellerRow(shop ports.ShopInfo) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("VENDEUR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(fmt.Sprintf("Adresse : %s   |   Email : %s", nonEmpty(shop.Address, "-"), nonEmpty(shop.Email, "-")),
			props.Text{Size: 8, Top: 7, Color: colorGray}),
	))
}

func buyerRow(order *entity.Order, buyer *entity.User) core.Row {
	name := nonEmpty(order.ShippingName, buyer.Name)
	return row.New(18).Add(col.New(12).Add(
		text.New("CLIENT", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New("Email : "+buyer.Email, props.Text{Size: 8, Top: 11, Color: colorGray}),
		text.New("Livraison : "+nonEmpty(order.ShippingAddress, "-"), props.Text{Size: 8, Top: 15, Color: colorGray}),
	))
}

func totalsRow(order *entity.Order, vatRate int) core.Row {
	label := func(s string, top float64, grand bool) core.Component {
		p := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}
		if grand {
			p.Size, p.Color = 10, colorPrimary
		}
		return text.New(s, p)
	}
	value := func(s string, top float64, grand bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if grand {
			p.Style, p.Size, p.Color = fontstyle.Bold, 10, colorPrimary
		}
		return text.New(s, p)
	}
	vatLabel := "TVA :"
	if vatRate > 0 {
		vatLabel = fmt.Sprintf("TVA %d %% :", vatRate)
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total HT :", 0, false),
			label(vatLabel, 5, false),
			label("TOTAL TTC :", 11, true),
		),
		col.New(3).Add(
			value(formatEuro(order.NetTotal), 0, false),
			value(formatEuro(order.TaxTotal), 5, false),
			value(formatEuro(order.GrandTotal), 11, true),
		),
	)
}

func invoiceFooterRow(order *entity.Order, shop ports.ShopInfo) core.Row {
	ref := fmt.Sprintf("%s|%s|%s", shop.SIRET, order.Number, order.GrandTotal.StringFixed(2))
	return row.New(34).Add(
		col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Facture acquittée. Prix exprimés en euros toutes taxes comprises.", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Pas d'escompte pour paiement anticipé. En cas de retard de paiement, indemnité forfaitaire de 40 € pour frais de recouvrement.",
				props.Text{Size: 7, Top: 12, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

type tableCol struct {
	label string
	size  int
	align align.Type
}

func tableHeaderRow(cols ...tableCol) core.Row {
	out := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		out = append(out, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(out...)
}

func cell(s string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// formatEuro formatea un importe a la francesa: "1 234,50 €".
func formatEuro(d decimal.Decimal) string {
	return formatNumber(d, 2) + " €"
}

// formatNumber separa miles con espacio y usa coma decimal.
func formatNumber(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, c)
	}
	out := string(buf)
	if frac != "" {
		out += "," + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
