package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/outline"
)

// mmToPt convierte una altura de texto en mm a puntos tipográficos.
const mmToPt = 72 / 25.4

// PDF genera una página del tamaño exacto del contorno con las formas como vectores.
func PDF(o *entity.Outline) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: o.Width, Ht: o.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(o.Name, true)
	pdf.AddPage()
	pdf.SetLineWidth(0.3)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, s := range o.Shapes {
		r, g, b := parseColor(outline.Stroke(s))
		pdf.SetDrawColor(r, g, b)
		switch s.Type {
		case entity.ShapeLine:
			pdf.Line(s.X1, s.Y1, s.X2, s.Y2)
		case entity.ShapeRect:
			pdf.Rect(s.X, s.Y, s.W, s.H, "D")
		case entity.ShapeCircle:
			pdf.Circle(s.CX, s.CY, s.R, "D")
		case entity.ShapePath:
			if s.Closed {
				pts := make([]gofpdf.PointType, 0, len(s.Points))
				for _, p := range s.Points {
					pts = append(pts, gofpdf.PointType{X: p.X, Y: p.Y})
				}
				pdf.Polygon(pts, "D")
				continue
			}
			for i := 1; i < len(s.Points); i++ {
				pdf.Line(s.Points[i-1].X, s.Points[i-1].Y, s.Points[i].X, s.Points[i].Y)
			}
		case entity.ShapeText:
			pdf.SetTextColor(r, g, b)
			pdf.SetFont("Helvetica", "", outline.TextSize(s)*mmToPt)
			pdf.Text(s.X, s.Y, tr(s.Value))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: generar PDF: %w", err)
	}
	return buf.Bytes(), nil
}

var namedColors = map[string][3]int{
	"black": {0, 0, 0},
	"red":   {255, 0, 0},
	"green": {0, 128, 0},
	"blue":  {0, 0, 255},
	"gray":  {128, 128, 128},
	"grey":  {128, 128, 128},
}

// parseColor admite #rgb, #rrggbb y algunos nombres CSS; el resto se dibuja en negro.
func parseColor(c string) (int, int, int) {
	c = strings.ToLower(strings.TrimSpace(c))
	if rgb, ok := namedColors[c]; ok {
		return rgb[0], rgb[1], rgb[2]
	}
	hex := strings.TrimPrefix(c, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
