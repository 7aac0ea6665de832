package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. Las transiciones pending->paid y pending->canceled
// ocurren después de la creación (confirmación de pago externa).
const (
	OrderStatusPending  = "pending"
	OrderStatusPaid     = "paid"
	OrderStatusCanceled = "canceled"
)

// Métodos de pago soportados por la tienda.
const (
	PaymentMethodCBE      = "cbe"
	PaymentMethodTelebirr = "telebirr"
)

// Order agregado de un pedido. Total se calcula una sola vez al crearlo como la suma
// de Price*Quantity de sus líneas y nunca se recalcula desde precios del catálogo.
type Order struct {
	ID            string
	UserUID       string
	Email         string
	Total         decimal.Decimal
	Status        string
	PaymentMethod string
	PaymentRef    string
	ShippingInfo  json.RawMessage
	CreatedAt     time.Time
	Items         []*OrderItem
}

// OrderItem línea de pedido. Price es la copia del precio unitario al momento de la
// compra, independiente de cambios posteriores en el catálogo.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Size      string
}

// Subtotal de la línea: Price * Quantity.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
