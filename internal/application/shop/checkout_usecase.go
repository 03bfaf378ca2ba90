package shop

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/events"
	"github.com/jhoicas/vanbuilder-api/internal/application/inventory"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// OrderUseCase pedidos de la tienda: checkout, consulta, cancelación y estados.
type OrderUseCase struct {
	txRunner      ShopTxRunner
	stock         StockApplier
	accessoryRepo repository.AccessoryRepository
	orderRepo     repository.OrderRepository
	vatRate       decimal.Decimal
	notifier      *events.Notifier
	now           func() time.Time
}

// NewOrderUseCase construye el caso de uso. vatRate es el porcentaje de IVA incluido en los precios.
func NewOrderUseCase(
	txRunner ShopTxRunner,
	stock StockApplier,
	accessoryRepo repository.AccessoryRepository,
	orderRepo repository.OrderRepository,
	vatRate int,
	notifier *events.Notifier,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:      txRunner,
		stock:         stock,
		accessoryRepo: accessoryRepo,
		orderRepo:     orderRepo,
		vatRate:       decimal.NewFromInt(int64(vatRate)),
		notifier:      notifier,
		now:           time.Now,
	}
}

// Checkout crea el pedido, registra salidas de stock por cada línea y guarda cabecera y líneas
// en una sola transacción. Sin stock suficiente no se guarda nada (ErrInsufficientStock).
func (uc *OrderUseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 || strings.TrimSpace(in.ShippingName) == "" || strings.TrimSpace(in.ShippingAddress) == "" {
		return nil, domain.ErrInvalidInput
	}

	// Agrupar cantidades por accesorio conservando el orden del carrito
	qty := make(map[string]int, len(in.Items))
	var ids []string
	for _, it := range in.Items {
		if it.AccessoryID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if _, seen := qty[it.AccessoryID]; !seen {
			ids = append(ids, it.AccessoryID)
		}
		qty[it.AccessoryID] += it.Quantity
	}

	// Validar accesorios publicados y fijar precios (fuera de la tx, solo lectura)
	byID, err := uc.accessoryRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Number:          OrderNumber(now),
		Status:          entity.OrderStatusPending,
		PaymentStatus:   entity.PaymentPending,
		ShippingName:    strings.TrimSpace(in.ShippingName),
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, id := range ids {
		a := byID[id]
		if a == nil || !a.Published {
			return nil, fmt.Errorf("%w: accesorio %s no disponible", domain.ErrNotFound, id)
		}
		q := decimal.NewFromInt(int64(qty[id]))
		order.Items = append(order.Items, entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			AccessoryID: id,
			Name:        a.Name,
			Quantity:    qty[id],
			UnitPrice:   a.Price,
			Subtotal:    a.Price.Mul(q).Round(2),
		})
	}
	order.GrandTotal, order.NetTotal, order.TaxTotal = SplitVAT(order.Items, uc.vatRate)

	err = uc.txRunner.RunShop(ctx, func(
		orderRepo repository.OrderRepository,
		accessoryRepo repository.AccessoryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Salida por cada línea con referencia al número de pedido; el error hace rollback.
		for _, it := range lockOrder(order.Items) {
			if _, err := uc.stock.ApplyInTx(ctx, accessoryRepo, movRepo, inventory.MovementInputDTO{
				UserID:      userID,
				AccessoryID: it.AccessoryID,
				Type:        entity.MovementTypeOUT,
				Quantity:    it.Quantity,
				Reference:   order.Number,
			}, now); err != nil {
				return err
			}
		}
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Changed(ctx, "orders", entity.ChangeInsert, order.ID, "", userID)
	for _, it := range order.Items {
		uc.notifier.Changed(ctx, "accessories", entity.ChangeUpdate, it.AccessoryID, "", "")
	}
	return ToOrderResponse(order), nil
}

// ListMine pedidos del usuario, más recientes primero.
func (uc *OrderUseCase) ListMine(ctx context.Context, userID string, page dto.PageRequest) ([]dto.OrderResponse, error) {
	page.DefaultPage()
	list, err := uc.orderRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListAll todos los pedidos, filtrables por estado (admin).
func (uc *OrderUseCase) ListAll(ctx context.Context, in dto.OrderFilterRequest) ([]dto.OrderResponse, error) {
	in.DefaultPage()
	list, err := uc.orderRepo.ListAll(ctx, in.Status, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// Get devuelve un pedido del actor (o cualquiera si es admin).
func (uc *OrderUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

func (uc *OrderUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Order, error) {
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// lockOrder devuelve las líneas ordenadas por accesorio: las filas se bloquean siempre en el
// mismo orden y dos pedidos concurrentes no se interbloquean.
func lockOrder(items []entity.OrderItem) []entity.OrderItem {
	out := append([]entity.OrderItem(nil), items...)
	sort.Slice(out, func(i, j int) bool { return out[i].AccessoryID < out[j].AccessoryID })
	return out
}

// OrderNumber genera el número visible del pedido: VB-AAAAMMDD-XXXXXX.
func OrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("VB-%s-%s", now.UTC().Format("20060102"), suffix)
}

// SplitVAT suma los subtotales (precios con IVA incluido) y separa base imponible e impuesto.
func SplitVAT(items []entity.OrderItem, vatRate decimal.Decimal) (grand, net, tax decimal.Decimal) {
	for _, it := range items {
		grand = grand.Add(it.Subtotal)
	}
	divisor := decimal.NewFromInt(1).Add(vatRate.Div(decimal.NewFromInt(100)))
	net = grand.Div(divisor).Round(2)
	tax = grand.Sub(net)
	return grand, net, tax
}

// ToOrderResponse convierte el pedido a DTO.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			AccessoryID: it.AccessoryID,
			Name:        it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Number:          o.Number,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		ShippingName:    o.ShippingName,
		ShippingAddress: o.ShippingAddress,
		NetTotal:        o.NetTotal,
		TaxTotal:        o.TaxTotal,
		GrandTotal:      o.GrandTotal,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOrderResponse(o))
	}
	return out
}
