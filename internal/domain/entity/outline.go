package entity

import "time"

// Tipos de forma de un contorno trazado.
const (
	ShapeLine   = "line"
	ShapeRect   = "rect"
	ShapeCircle = "circle"
	ShapePath   = "path"
	ShapeText   = "text"
)

// Point punto en milímetros, origen arriba a la izquierda.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape forma dibujable. Solo los campos del tipo correspondiente son significativos.
type Shape struct {
	Type   string  `json:"type"`
	X1     float64 `json:"x1,omitempty"`
	Y1     float64 `json:"y1,omitempty"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	CX     float64 `json:"cx,omitempty"`
	CY     float64 `json:"cy,omitempty"`
	R      float64 `json:"r,omitempty"`
	Points []Point `json:"points,omitempty"`
	Closed bool    `json:"closed,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Value  string  `json:"value,omitempty"`
	Stroke string  `json:"stroke,omitempty"` // color CSS, por defecto negro
}

// Outline plantilla trazada (mueble, ventana, panel) exportable a DXF/SVG/PDF.
type Outline struct {
	ID        string
	ProjectID string
	Name      string
	Width     float64 // mm
	Height    float64 // mm
	Shapes    []Shape
	CreatedAt time.Time
	UpdatedAt time.Time
}
