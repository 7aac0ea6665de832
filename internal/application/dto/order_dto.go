package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest una línea de POST /api/orders.
type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Size      string `json:"size,omitempty"`
}

// CreateOrderRequest body de POST /api/orders.
type CreateOrderRequest struct {
	Items         []OrderLineRequest `json:"items" validate:"required,min=1"`
	ShippingInfo  json.RawMessage    `json:"shipping_info"`
	PaymentMethod string             `json:"payment_method"`
}

// UpdateOrderStatusRequest body de PUT /api/orders/:id/status (admin).
type UpdateOrderStatusRequest struct {
	Status     string `json:"status" validate:"required,oneof=paid canceled"`
	PaymentRef string `json:"payment_ref"`
}

// OrderItemResponse línea de pedido con el precio congelado al momento de la compra.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse representación de un pedido creado.
type OrderResponse struct {
	ID            string              `json:"id"`
	UserUID       string              `json:"user_uid"`
	Email         string              `json:"email"`
	Total         decimal.Decimal     `json:"total"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	PaymentRef    string              `json:"payment_ref,omitempty"`
	ShippingInfo  json.RawMessage     `json:"shipping_info,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// CheckoutResponse respuesta de los endpoints de checkout: pedido creado más la
// URL de pago de la pasarela (stub, el pago real es un colaborador externo).
type CheckoutResponse struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url"`
	Status     string `json:"status"`
}
