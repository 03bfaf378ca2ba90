package outline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/outline"
)

func TestValidate_OK(t *testing.T) {
	o := &entity.Outline{Name: "Meuble cuisine", Width: 800, Height: 600, Shapes: []entity.Shape{
		{Type: entity.ShapeLine, X1: 0, Y1: 0, X2: 10, Y2: 0},
		{Type: entity.ShapeRect, X: 1, Y: 1, W: 10, H: 5},
		{Type: entity.ShapeCircle, CX: 5, CY: 5, R: 2},
		{Type: entity.ShapePath, Points: []entity.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}, Closed: true},
		{Type: entity.ShapeText, X: 2, Y: 2, Value: "Évier"},
	}}
	assert.NoError(t, outline.Validate(o))
}

func TestValidate_Errores(t *testing.T) {
	cases := map[string]entity.Shape{
		"tipo":   {Type: "spline"},
		"rect":   {Type: entity.ShapeRect, W: -1, H: 2},
		"circle": {Type: entity.ShapeCircle},
		"path":   {Type: entity.ShapePath, Points: []entity.Point{{X: 1, Y: 1}}},
		"text":   {Type: entity.ShapeText},
		"line":   {Type: entity.ShapeLine, X1: 1, Y1: 1, X2: 1, Y2: 1},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			o := &entity.Outline{Name: "x", Width: 10, Height: 10, Shapes: []entity.Shape{s}}
			assert.ErrorIs(t, outline.Validate(o), domain.ErrInvalidInput)
		})
	}
}

func TestValidate_Dimensiones(t *testing.T) {
	assert.ErrorIs(t, outline.Validate(&entity.Outline{Name: "x", Width: 0, Height: 10}), domain.ErrInvalidInput)
	assert.ErrorIs(t, outline.Validate(&entity.Outline{Width: 10, Height: 10}), domain.ErrInvalidInput)
}
