package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/merkato-api/internal/application/inventory"
	apporder "github.com/tu-usuario/merkato-api/internal/application/order"
	"github.com/tu-usuario/merkato-api/internal/domain"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and order.OrderTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ apporder.OrderTxRunner = (*TxRunner)(nil)

// Reintentos acotados ante fallos de serialización antes de rendir ErrTxConflict.
const txMaxRetries = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con reintento
// acotado ante fallos de serialización/deadlock (SQLSTATE 40001 / 40P01).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de inventario atados a la tx
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	changeRepo repository.InventoryChangeRepository,
) error) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()

		itemRepo := NewInventoryItemRepository(tx)
		changeRepo := NewInventoryChangeRepository(tx)

		if err := fn(itemRepo, changeRepo); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

// RunOrder inicia una transacción con repos de inventario y pedidos (para PlaceOrder).
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	changeRepo repository.InventoryChangeRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.withRetry(ctx, func(ctx context.Context) error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()

		itemRepo := NewInventoryItemRepository(tx)
		changeRepo := NewInventoryChangeRepository(tx)
		orderRepo := NewOrderRepository(tx)

		if err := fn(itemRepo, changeRepo, orderRepo); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}

// withRetry reintenta attempt ante fallos de serialización; los errores de negocio
// (stock insuficiente, not found) se propagan de inmediato sin reintentar.
func (r *TxRunner) withRetry(ctx context.Context, attempt func(ctx context.Context) error) error {
	var err error
	for i := 0; i < txMaxRetries; i++ {
		err = attempt(ctx)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrTxConflict, err)
}
