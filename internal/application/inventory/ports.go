package inventory

import (
	"context"

	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza la atomicidad ítem+ledger del motor de inventario y
// reintenta de forma acotada ante conflictos de serialización.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		changeRepo repository.InventoryChangeRepository,
	) error) error
}
