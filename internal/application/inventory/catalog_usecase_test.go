package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
)

var (
	admin  = dto.Actor{UserID: "adm", Role: entity.RoleAdmin}
	client = dto.Actor{UserID: "u1", Role: entity.RoleUser}
)

func newCatalog() (*CatalogUseCase, *memrepo.Accessories) {
	acc := memrepo.NewAccessories()
	return NewCatalogUseCase(acc, &memrepo.Movements{}, memrepo.NewCategories(), nil), acc
}

func TestCatalog_CreateNormalizaYOcultaCosto(t *testing.T) {
	uc, _ := newCatalog()
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateAccessoryRequest{
		Name: " Batterie lithium 100Ah ", Reference: "bat-100", Price: decimal.NewFromInt(890),
		LowStockThreshold: 2, Published: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "BAT-100", out.Reference)
	assert.Equal(t, "Batterie lithium 100Ah", out.Name)
	assert.Equal(t, entity.StockOutOfStock, out.StockStatus)

	got, err := uc.Get(ctx, client, out.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Cost)

	got, err = uc.Get(ctx, admin, out.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Cost)
}

func TestCatalog_CategoriaInexistente(t *testing.T) {
	uc, _ := newCatalog()
	_, err := uc.Create(context.Background(), dto.CreateAccessoryRequest{
		Name: "X", Reference: "X", CategoryID: "8a4c3f0e-0000-0000-0000-000000000000",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_NoPublicadoSoloAdmin(t *testing.T) {
	uc, _ := newCatalog()
	ctx := context.Background()
	hidden, err := uc.Create(ctx, dto.CreateAccessoryRequest{Name: "Prototype", Reference: "P-1"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateAccessoryRequest{Name: "Hublot", Reference: "H-1", Published: true})
	require.NoError(t, err)

	_, err = uc.Get(ctx, client, hidden.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, client, dto.AccessoryFilterRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "H-1", list[0].Reference)

	list, err = uc.List(ctx, admin, dto.AccessoryFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCatalog_UpdateUmbralYEstadoForzado(t *testing.T) {
	uc, acc := newCatalog()
	ctx := context.Background()
	require.NoError(t, acc.Create(ctx, &entity.Accessory{
		ID: "a1", Name: "Fan", Reference: "FAN", StockQuantity: 3, LowStockThreshold: 1, StockStatus: entity.StockInStock,
	}))

	threshold := 5
	out, err := uc.Update(ctx, "a1", dto.UpdateAccessoryRequest{LowStockThreshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, entity.StockLowStock, out.StockStatus)

	forced := entity.StockOutOfStock
	out, err = uc.Update(ctx, "a1", dto.UpdateAccessoryRequest{StockStatus: &forced})
	require.NoError(t, err)
	assert.Equal(t, entity.StockOutOfStock, out.StockStatus)

	negative := decimal.NewFromInt(-1)
	_, err = uc.Update(ctx, "a1", dto.UpdateAccessoryRequest{Price: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplenishment_RestockReport(t *testing.T) {
	acc := memrepo.NewAccessories(
		&entity.Accessory{ID: "a1", Reference: "A", StockQuantity: 1, LowStockThreshold: 4, Cost: decimal.NewFromInt(10)},
		&entity.Accessory{ID: "a2", Reference: "B", StockQuantity: 0, LowStockThreshold: 2, Cost: decimal.NewFromInt(5)},
		&entity.Accessory{ID: "a3", Reference: "C", StockQuantity: 9, LowStockThreshold: 2},
		&entity.Accessory{ID: "a4", Reference: "D", StockQuantity: 0, LowStockThreshold: 0},
	)
	out, err := NewReplenishmentUseCase(acc).RestockReport(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "a2", out[0].AccessoryID)
	assert.Equal(t, 4, out[0].SuggestedQuantity)
	assert.Equal(t, "20", out[0].EstimatedCost.String())
	assert.Equal(t, "a4", out[1].AccessoryID)
	assert.Equal(t, 1, out[1].SuggestedQuantity)
	assert.Equal(t, "a1", out[2].AccessoryID)
	assert.Equal(t, 7, out[2].SuggestedQuantity)
}

func TestSuggestedRestock(t *testing.T) {
	assert.Equal(t, 1, SuggestedRestock(5, 2))
	assert.Equal(t, 4, SuggestedRestock(0, 2))
}
