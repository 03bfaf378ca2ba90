package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vanbuilder-api/internal/application/events"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/inventory"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de stock de forma transaccional
// (IN, OUT, ADJUSTMENT) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	notifier *events.Notifier
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, notifier *events.Notifier) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, notifier: notifier, now: time.Now}
}

// MovementInputDTO entrada para registrar un movimiento de stock.
// UnitCost es obligatorio en IN; Quantity es la cantidad absoluta final en ADJUSTMENT.
type MovementInputDTO struct {
	UserID      string
	AccessoryID string
	Type        string
	Quantity    int
	UnitCost    *decimal.Decimal
	Reference   string
}

// RegisterMovement inicia una transacción, bloquea la fila del accesorio, aplica el movimiento
// y hace Commit o Rollback. Devuelve el accesorio actualizado.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.Accessory, error) {
	if input.AccessoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
	default:
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Accessory
	err := uc.txRunner.Run(ctx, func(accessoryRepo repository.AccessoryRepository, movRepo repository.StockMovementRepository) error {
		a, err := uc.ApplyInTx(ctx, accessoryRepo, movRepo, input, uc.now())
		updated = a
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Changed(ctx, "accessories", entity.ChangeUpdate, updated.ID, "", "")
	return updated, nil
}

// ApplyInTx aplica un movimiento usando los repositorios del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
// La tienda lo usa para descontar y reponer stock de los pedidos.
func (uc *RegisterMovementUseCase) ApplyInTx(
	ctx context.Context,
	accessoryRepo repository.AccessoryRepository,
	movRepo repository.StockMovementRepository,
	input MovementInputDTO,
	now time.Time,
) (*entity.Accessory, error) {
	// Bloquea la fila del accesorio para evitar condiciones de carrera
	a, err := accessoryRepo.GetForUpdate(ctx, input.AccessoryID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	out, err := inventory.Apply(a, input.Type, input.Quantity, input.UnitCost)
	if err != nil {
		return nil, err
	}
	if err := accessoryRepo.UpdateStock(ctx, a.ID, out.Quantity, out.Cost, out.Status); err != nil {
		return nil, err
	}
	unitCost := a.Cost
	if input.Type == entity.MovementTypeIN {
		unitCost = *input.UnitCost
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		AccessoryID: a.ID,
		Type:        input.Type,
		Quantity:    out.Delta,
		UnitCost:    unitCost,
		Reference:   input.Reference,
		CreatedAt:   now,
		CreatedBy:   input.UserID,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	a.StockQuantity = out.Quantity
	a.Cost = out.Cost
	a.StockStatus = out.Status
	a.UpdatedAt = now
	return a, nil
}
