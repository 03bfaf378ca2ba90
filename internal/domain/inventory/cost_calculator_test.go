package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 u a 100 + 10 u a 200 -> 150
	got := inventory.CostCalculator(d("10"), d("100"), d("10"), d("200"))
	assert.True(t, got.Equal(d("150")), "got %s", got)

	assert.True(t, inventory.CostCalculator(decimal.Zero, decimal.Zero, decimal.Zero, d("5")).IsZero())
}

func TestApply_IN(t *testing.T) {
	a := &entity.Accessory{StockQuantity: 2, Cost: d("50"), LowStockThreshold: 3}
	cost := d("80")
	out, err := inventory.Apply(a, entity.MovementTypeIN, 2, &cost)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Quantity)
	assert.True(t, out.Cost.Equal(d("65")), "got %s", out.Cost)
	assert.Equal(t, entity.StockInStock, out.Status)
	assert.Equal(t, 2, out.Delta)
}

func TestApply_INSinCosto(t *testing.T) {
	a := &entity.Accessory{}
	_, err := inventory.Apply(a, entity.MovementTypeIN, 1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_OUT(t *testing.T) {
	a := &entity.Accessory{StockQuantity: 3, LowStockThreshold: 1}
	out, err := inventory.Apply(a, entity.MovementTypeOUT, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Quantity)
	assert.Equal(t, entity.StockLowStock, out.Status)
	assert.Equal(t, -2, out.Delta)

	_, err = inventory.Apply(a, entity.MovementTypeOUT, 4, nil)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApply_ADJUSTMENT(t *testing.T) {
	a := &entity.Accessory{StockQuantity: 5, LowStockThreshold: 2}
	out, err := inventory.Apply(a, entity.MovementTypeADJUSTMENT, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Quantity)
	assert.Equal(t, entity.StockOutOfStock, out.Status)
	assert.Equal(t, -5, out.Delta)
}

func TestStockStatusFor(t *testing.T) {
	assert.Equal(t, entity.StockOutOfStock, entity.StockStatusFor(0, 2))
	assert.Equal(t, entity.StockLowStock, entity.StockStatusFor(2, 2))
	assert.Equal(t, entity.StockInStock, entity.StockStatusFor(3, 2))
}
