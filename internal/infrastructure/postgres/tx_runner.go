package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/vanbuilder-api/internal/application/inventory"
	"github.com/jhoicas/vanbuilder-api/internal/application/shop"
	"github.com/jhoicas/vanbuilder-api/internal/application/usecase"
	"github.com/jhoicas/vanbuilder-api/internal/domain/repository"
)

// TxRunner implementa los puertos transaccionales de inventario, tienda y escenarios.
var (
	_ inventory.TxRunner       = (*TxRunner)(nil)
	_ shop.ShopTxRunner        = (*TxRunner)(nil)
	_ usecase.ScenarioTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run ejecuta fn con repos de accesorios y movimientos atados a la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	accessoryRepo repository.AccessoryRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewAccessoryRepository(tx), NewStockMovementRepository(tx))
	})
}

// RunShop inicia una transacción con repos de pedidos e inventario (confirmar y cancelar pedidos).
func (r *TxRunner) RunShop(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	accessoryRepo repository.AccessoryRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewOrderRepository(tx), NewAccessoryRepository(tx), NewStockMovementRepository(tx))
	})
}

// RunScenarios ejecuta fn con el repositorio de escenarios atado a la tx.
func (r *TxRunner) RunScenarios(ctx context.Context, fn func(repo repository.ScenarioRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewScenarioRepository(tx))
	})
}
