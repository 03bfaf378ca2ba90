package inventory

import (
	"context"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID, accessoryID string, in dto.RegisterMovementRequest) (*dto.AccessoryResponse, error) {
	a, err := uc.RegisterMovement(ctx, MovementInputDTO{
		UserID:      userID,
		AccessoryID: accessoryID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		Reference:   in.Reference,
	})
	if err != nil {
		return nil, err
	}
	return ToAccessoryResponse(a, true), nil
}
