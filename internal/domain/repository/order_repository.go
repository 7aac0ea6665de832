package repository

import "github.com/tu-usuario/merkato-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para pedidos y sus líneas.
// Create y CreateItem se usan dentro de la transacción de creación del pedido.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	// GetItems carga las líneas de un pedido.
	GetItems(orderID string) ([]*entity.OrderItem, error)
	ListByUser(userUID string, limit, offset int) ([]*entity.Order, error)
	// UpdateStatus transición de estado posterior a la creación (pending->paid|canceled).
	UpdateStatus(id, status, paymentRef string) error
}
