// Package outline contiene las reglas de validación de los contornos trazados.
package outline

import (
	"fmt"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

// Validate verifica dimensiones y cada forma del contorno. El error envuelve domain.ErrInvalidInput
// e indica el índice de la forma inválida.
func Validate(o *entity.Outline) error {
	if o.Name == "" {
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: width y height deben ser positivos", domain.ErrInvalidInput)
	}
	for i, s := range o.Shapes {
		if err := validateShape(s); err != nil {
			return fmt.Errorf("%w: shape %d: %s", domain.ErrInvalidInput, i, err.Error())
		}
	}
	return nil
}

func validateShape(s entity.Shape) error {
	switch s.Type {
	case entity.ShapeLine:
		if s.X1 == s.X2 && s.Y1 == s.Y2 {
			return fmt.Errorf("línea de longitud cero")
		}
	case entity.ShapeRect:
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("rect con tamaño no positivo")
		}
	case entity.ShapeCircle:
		if s.R <= 0 {
			return fmt.Errorf("circle con radio no positivo")
		}
	case entity.ShapePath:
		if len(s.Points) < 2 {
			return fmt.Errorf("path necesita al menos 2 puntos")
		}
	case entity.ShapeText:
		if s.Value == "" {
			return fmt.Errorf("text vacío")
		}
		if s.Size < 0 {
			return fmt.Errorf("text con tamaño negativo")
		}
	default:
		return fmt.Errorf("tipo desconocido %q", s.Type)
	}
	return nil
}

// TextSize devuelve el tamaño de texto en mm, con 5 mm por defecto.
func TextSize(s entity.Shape) float64 {
	if s.Size <= 0 {
		return 5
	}
	return s.Size
}

// Stroke devuelve el color de trazo, negro por defecto.
func Stroke(s entity.Shape) string {
	if s.Stroke == "" {
		return "#000000"
	}
	return s.Stroke
}
