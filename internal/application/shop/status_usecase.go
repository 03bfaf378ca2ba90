package shop

import (
	"context"
	"fmt"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/inventory"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// Cancel anula un pedido propio mientras está pendiente y devuelve el stock.
func (uc *OrderUseCase) Cancel(ctx context.Context, actor dto.Actor, id string) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return uc.changeStatus(ctx, actor, id, entity.OrderStatusPending, entity.OrderStatusCancelled, "")
}

// UpdateStatus cambia el estado de un pedido (admin) respetando las transiciones permitidas.
// PaymentStatus vacío = derivado: paid al pagar, refunded al cancelar un pedido pagado.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, actor dto.Actor, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	return uc.changeStatus(ctx, actor, id, "", in.Status, in.PaymentStatus)
}

// changeStatus aplica el cambio con el pedido bloqueado. from no vacío exige ese estado de partida.
func (uc *OrderUseCase) changeStatus(ctx context.Context, actor dto.Actor, id, from, status, payment string) (*dto.OrderResponse, error) {
	var updated *entity.Order
	err := uc.txRunner.RunShop(ctx, func(
		orderRepo repository.OrderRepository,
		accessoryRepo repository.AccessoryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		o, err := orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if from != "" && o.Status != from {
			return fmt.Errorf("%w: el pedido ya no está %s", domain.ErrConflict, from)
		}
		if status == o.Status {
			// Solo cambia el estado de pago
			if payment == "" || payment == o.PaymentStatus {
				updated = o
				return nil
			}
		} else if !entity.CanTransition(o.Status, status) {
			return fmt.Errorf("%w: transición %s -> %s no permitida", domain.ErrConflict, o.Status, status)
		}

		newPayment := payment
		if newPayment == "" {
			newPayment = derivePayment(o, status)
		}
		if status == entity.OrderStatusCancelled && o.Status == entity.OrderStatusPaid {
			newPayment = entity.PaymentRefunded
		}
		if status == entity.OrderStatusCancelled && o.Status != entity.OrderStatusCancelled {
			if err := uc.restock(ctx, accessoryRepo, movRepo, o, actor.UserID); err != nil {
				return err
			}
		}
		if err := orderRepo.UpdateStatus(ctx, o.ID, status, newPayment); err != nil {
			return err
		}
		o.Status, o.PaymentStatus, o.UpdatedAt = status, newPayment, uc.now()
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "orders", entity.ChangeUpdate, updated.ID, "", updated.UserID)
	return ToOrderResponse(updated), nil
}

func derivePayment(o *entity.Order, status string) string {
	switch status {
	case entity.OrderStatusPaid:
		return entity.PaymentPaid
	case entity.OrderStatusCancelled:
		if o.PaymentStatus == entity.PaymentPaid {
			return entity.PaymentRefunded
		}
	}
	return o.PaymentStatus
}

// restock reintegra las líneas del pedido como entradas al costo actual, sin alterar el costo promedio.
// Accesorios borrados desde el checkout se omiten.
func (uc *OrderUseCase) restock(
	ctx context.Context,
	accessoryRepo repository.AccessoryRepository,
	movRepo repository.StockMovementRepository,
	o *entity.Order,
	userID string,
) error {
	now := uc.now()
	for _, it := range lockOrder(o.Items) {
		a, err := accessoryRepo.GetForUpdate(ctx, it.AccessoryID)
		if err != nil {
			return err
		}
		if a == nil {
			continue
		}
		cost := a.Cost
		if _, err := uc.stock.ApplyInTx(ctx, accessoryRepo, movRepo, inventory.MovementInputDTO{
			UserID:      userID,
			AccessoryID: it.AccessoryID,
			Type:        entity.MovementTypeIN,
			Quantity:    it.Quantity,
			UnitCost:    &cost,
			Reference:   o.Number,
		}, now); err != nil {
			return err
		}
	}
	return nil
}
