package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de inventario y de pedidos (para PlaceOrder).
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		changeRepo repository.InventoryChangeRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// InventoryUseCase puerto de integración pedidos-inventario.
// ApplySaleInTx descuenta una venta usando los repositorios del caller (misma
// transacción); si retorna error (ej. ErrInsufficientStock) el caller hace rollback.
type InventoryUseCase interface {
	ApplySaleInTx(
		itemRepo repository.InventoryItemRepository,
		changeRepo repository.InventoryChangeRepository,
		itemID string,
		quantity int,
		userID, reason string,
		now time.Time,
	) error
}

// Notifier colaborador externo de notificaciones post-commit (correo, inicio de
// pago). Se invoca solo después de confirmar la transacción del pedido y su error
// nunca revierte el pedido.
type Notifier interface {
	OrderPlaced(ctx context.Context, orderID, email string, total decimal.Decimal, paymentMethod string) error
}

// MultiNotifier difunde la notificación a varios colaboradores (Kafka y
// correo). Intenta todos y devuelve el primer error.
type MultiNotifier []Notifier

var _ Notifier = (MultiNotifier)(nil)

func (mn MultiNotifier) OrderPlaced(ctx context.Context, orderID, email string, total decimal.Decimal, paymentMethod string) error {
	var first error
	for _, n := range mn {
		if err := n.OrderPlaced(ctx, orderID, email, total, paymentMethod); err != nil && first == nil {
			first = err
		}
	}
	return first
}
