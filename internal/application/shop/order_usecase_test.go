package shop

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/inventory"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/testutil/memrepo"
)

var (
	buyer = dto.Actor{UserID: "u1", Role: entity.RoleUser}
	other = dto.Actor{UserID: "u2", Role: entity.RoleUser}
	admin = dto.Actor{UserID: "adm", Role: entity.RoleAdmin}
)

type shopFixture struct {
	uc   *OrderUseCase
	tx   *memrepo.ShopTx
	acc  *memrepo.Accessories
	movs *memrepo.Movements
}

func newShop(t *testing.T) *shopFixture {
	t.Helper()
	acc := memrepo.NewAccessories(
		&entity.Accessory{
			ID: "bat", Name: "Batterie 100Ah", Reference: "BAT", Price: decimal.NewFromInt(600),
			Cost: decimal.NewFromInt(400), StockQuantity: 5, LowStockThreshold: 1, StockStatus: entity.StockInStock, Published: true,
		},
		&entity.Accessory{
			ID: "fan", Name: "Lanterneau", Reference: "FAN", Price: decimal.RequireFromString("120.00"),
			Cost: decimal.NewFromInt(70), StockQuantity: 1, LowStockThreshold: 0, StockStatus: entity.StockInStock, Published: true,
		},
		&entity.Accessory{ID: "draft", Name: "Proto", Reference: "PROTO", StockQuantity: 10},
	)
	movs := &memrepo.Movements{}
	tx := &memrepo.ShopTx{Accessories: acc, Movements: movs, Orders: memrepo.NewOrders()}
	stock := inventory.NewRegisterMovementUseCase(tx, nil)
	uc := NewOrderUseCase(tx, stock, acc, tx.Orders, 20, nil)
	uc.now = func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC) }
	return &shopFixture{uc: uc, tx: tx, acc: acc, movs: movs}
}

func (f *shopFixture) qty(t *testing.T, id string) int {
	t.Helper()
	a, err := f.acc.GetByID(context.Background(), id)
	require.NoError(t, err)
	return a.StockQuantity
}

func checkoutReq(items ...dto.CheckoutItem) dto.CheckoutRequest {
	return dto.CheckoutRequest{Items: items, ShippingName: "Camille", ShippingAddress: "1 rue du Port, Nantes"}
}

func TestCheckout_DescuentaStockYCalculaIVA(t *testing.T) {
	f := newShop(t)
	out, err := f.uc.Checkout(context.Background(), buyer.UserID, checkoutReq(
		dto.CheckoutItem{AccessoryID: "bat", Quantity: 1},
		dto.CheckoutItem{AccessoryID: "fan", Quantity: 1},
		dto.CheckoutItem{AccessoryID: "bat", Quantity: 1},
	))
	require.NoError(t, err)

	assert.Regexp(t, `^VB-20260314-[0-9A-F]{6}$`, out.Number)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.Equal(t, entity.PaymentPending, out.PaymentStatus)
	require.Len(t, out.Items, 2, "las líneas repetidas se agrupan")
	assert.Equal(t, 2, out.Items[0].Quantity)
	assert.Equal(t, "1320", out.GrandTotal.String())
	assert.Equal(t, "1100", out.NetTotal.String())
	assert.Equal(t, "220", out.TaxTotal.String())

	assert.Equal(t, 3, f.qty(t, "bat"))
	assert.Equal(t, 0, f.qty(t, "fan"))
	require.Len(t, f.movs.List, 2)
	assert.Equal(t, out.Number, f.movs.List[0].Reference)
}

func TestCheckout_SinStockHaceRollback(t *testing.T) {
	f := newShop(t)
	_, err := f.uc.Checkout(context.Background(), buyer.UserID, checkoutReq(
		dto.CheckoutItem{AccessoryID: "bat", Quantity: 2},
		dto.CheckoutItem{AccessoryID: "fan", Quantity: 2},
	))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 5, f.qty(t, "bat"), "la salida de la primera línea se revierte")
	assert.Empty(t, f.movs.List)
	list, err := f.uc.ListMine(context.Background(), buyer.UserID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCheckout_AccesorioNoPublicado(t *testing.T) {
	f := newShop(t)
	_, err := f.uc.Checkout(context.Background(), buyer.UserID, checkoutReq(dto.CheckoutItem{AccessoryID: "draft", Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Checkout(context.Background(), buyer.UserID, checkoutReq())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_SoloPropietarioOAdmin(t *testing.T) {
	f := newShop(t)
	ctx := context.Background()
	o, err := f.uc.Checkout(ctx, buyer.UserID, checkoutReq(dto.CheckoutItem{AccessoryID: "fan", Quantity: 1}))
	require.NoError(t, err)

	_, err = f.uc.Get(ctx, other, o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.uc.Get(ctx, admin, o.ID)
	assert.NoError(t, err)
	_, err = f.uc.Get(ctx, buyer, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckout_BloqueaEnOrdenDeAccesorio(t *testing.T) {
	f := newShop(t)
	ctx := context.Background()
	o, err := f.uc.Checkout(ctx, buyer.UserID, checkoutReq(
		dto.CheckoutItem{AccessoryID: "fan", Quantity: 1},
		dto.CheckoutItem{AccessoryID: "bat", Quantity: 1},
	))
	require.NoError(t, err)
	assert.Equal(t, "fan", o.Items[0].AccessoryID, "el pedido conserva el orden del carrito")

	_, err = f.uc.Cancel(ctx, buyer, o.ID)
	require.NoError(t, err)

	var seen []string
	for _, m := range f.movs.List {
		seen = append(seen, m.AccessoryID)
	}
	assert.Equal(t, []string{"bat", "fan", "bat", "fan"}, seen)
}

func TestCancel_RestauraStock(t *testing.T) {
	f := newShop(t)
	ctx := context.Background()
	o, err := f.uc.Checkout(ctx, buyer.UserID, checkoutReq(dto.CheckoutItem{AccessoryID: "bat", Quantity: 2}))
	require.NoError(t, err)
	require.Equal(t, 3, f.qty(t, "bat"))

	_, err = f.uc.Cancel(ctx, other, o.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.uc.Cancel(ctx, buyer, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, out.Status)
	assert.Equal(t, 5, f.qty(t, "bat"))

	a, _ := f.acc.GetByID(ctx, "bat")
	assert.True(t, decimal.NewFromInt(400).Equal(a.Cost), "la reposición no altera el costo promedio")

	_, err = f.uc.Cancel(ctx, buyer, o.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_Transiciones(t *testing.T) {
	f := newShop(t)
	ctx := context.Background()
	o, err := f.uc.Checkout(ctx, buyer.UserID, checkoutReq(dto.CheckoutItem{AccessoryID: "bat", Quantity: 1}))
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, admin, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusShipped})
	assert.ErrorIs(t, err, domain.ErrConflict)

	out, err := f.uc.UpdateStatus(ctx, admin, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, out.PaymentStatus)

	_, err = f.uc.Cancel(ctx, buyer, o.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "un pedido pagado solo lo cancela un admin")

	out, err = f.uc.UpdateStatus(ctx, admin, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRefunded, out.PaymentStatus)
	assert.Equal(t, 5, f.qty(t, "bat"))

	_, err = f.uc.UpdateStatus(ctx, admin, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusPaid})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSplitVAT(t *testing.T) {
	grand, net, tax := SplitVAT([]entity.OrderItem{
		{Subtotal: decimal.RequireFromString("19.99")},
		{Subtotal: decimal.RequireFromString("5.01")},
	}, decimal.NewFromInt(20))
	assert.Equal(t, "25", grand.String())
	assert.Equal(t, "20.83", net.String())
	assert.Equal(t, "4.17", tax.String())
}

type fakeInvoicePDF struct{ shop ports.ShopInfo }

func (f *fakeInvoicePDF) GenerateOrderInvoice(_ context.Context, o *entity.Order, b *entity.User, shop ports.ShopInfo) ([]byte, error) {
	f.shop = shop
	return []byte("%PDF " + o.Number + " " + b.Email), nil
}

func TestInvoicePDF_SoloPedidosPagados(t *testing.T) {
	f := newShop(t)
	ctx := context.Background()
	users := memrepo.NewUsers(&entity.User{ID: buyer.UserID, Email: "camille@example.fr"})
	gen := &fakeInvoicePDF{}
	inv := NewInvoiceUseCase(f.uc, users, gen, ports.ShopInfo{Name: "Vanbuilder Shop", VATRate: 20})

	o, err := f.uc.Checkout(ctx, buyer.UserID, checkoutReq(dto.CheckoutItem{AccessoryID: "fan", Quantity: 1}))
	require.NoError(t, err)

	_, _, err = inv.InvoicePDF(ctx, buyer, o.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.UpdateStatus(ctx, admin, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusPaid})
	require.NoError(t, err)

	pdf, name, err := inv.InvoicePDF(ctx, buyer, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "facture_"+o.Number+".pdf", name)
	assert.Contains(t, string(pdf), "camille@example.fr")
	assert.Equal(t, "Vanbuilder Shop", gen.shop.Name)
}
