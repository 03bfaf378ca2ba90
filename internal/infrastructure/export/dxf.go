package export

import (
	"strings"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/outline"
)

// dxfWriter escribe pares (código de grupo, valor) de un DXF ASCII.
type dxfWriter struct {
	b strings.Builder
	h float64 // alto del contorno: DXF tiene el origen abajo a la izquierda
}

func (w *dxfWriter) pair(code, value string) {
	w.b.WriteString(code)
	w.b.WriteByte('\n')
	w.b.WriteString(value)
	w.b.WriteByte('\n')
}

func (w *dxfWriter) point(xCode, yCode string, x, y float64) {
	w.pair(xCode, num(round3(x)))
	w.pair(yCode, num(round3(w.h-y)))
}

func (w *dxfWriter) line(x1, y1, x2, y2 float64) {
	w.pair("0", "LINE")
	w.pair("8", "0")
	w.point("10", "20", x1, y1)
	w.point("11", "21", x2, y2)
}

// DXF genera un DXF R12 con solo la sección ENTITIES, en mm.
func DXF(o *entity.Outline) []byte {
	w := &dxfWriter{h: o.Height}
	w.pair("0", "SECTION")
	w.pair("2", "ENTITIES")
	for _, s := range o.Shapes {
		switch s.Type {
		case entity.ShapeLine:
			w.line(s.X1, s.Y1, s.X2, s.Y2)
		case entity.ShapeRect:
			w.line(s.X, s.Y, s.X+s.W, s.Y)
			w.line(s.X+s.W, s.Y, s.X+s.W, s.Y+s.H)
			w.line(s.X+s.W, s.Y+s.H, s.X, s.Y+s.H)
			w.line(s.X, s.Y+s.H, s.X, s.Y)
		case entity.ShapeCircle:
			w.pair("0", "CIRCLE")
			w.pair("8", "0")
			w.point("10", "20", s.CX, s.CY)
			w.pair("40", num(round3(s.R)))
		case entity.ShapePath:
			w.pair("0", "POLYLINE")
			w.pair("8", "0")
			w.pair("66", "1")
			if s.Closed {
				w.pair("70", "1")
			} else {
				w.pair("70", "0")
			}
			for _, p := range s.Points {
				w.pair("0", "VERTEX")
				w.pair("8", "0")
				w.point("10", "20", p.X, p.Y)
			}
			w.pair("0", "SEQEND")
		case entity.ShapeText:
			w.pair("0", "TEXT")
			w.pair("8", "0")
			w.point("10", "20", s.X, s.Y)
			w.pair("40", num(round3(outline.TextSize(s))))
			w.pair("1", dxfText(s.Value))
		}
	}
	w.pair("0", "ENDSEC")
	w.pair("0", "EOF")
	return []byte(w.b.String())
}

// dxfText aplana a una sola línea: un salto dentro de un valor rompería los pares de grupo.
func dxfText(v string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, v)
}

func round3(v float64) float64 {
	if v < 0 {
		return -round3(-v)
	}
	return float64(int64(v*1000+0.5)) / 1000
}
