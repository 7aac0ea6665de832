package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem de inventario.
// Min/Max en cero toman los valores por defecto configurados.
type CreateItemRequest struct {
	SKU               string          `json:"sku" validate:"required,min=1,max=100"`
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Description       string          `json:"description"`
	ProductID         string          `json:"product_id,omitempty"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	MinimumStockLevel *int            `json:"minimum_stock_level,omitempty"`
	MaximumStockLevel *int            `json:"maximum_stock_level,omitempty"`
	Priority          string          `json:"priority,omitempty"`
	Location          string          `json:"location,omitempty"`
	CategoryID        string          `json:"category_id,omitempty"`
}

// UpdateItemRequest entrada para actualizar un ítem (sin Quantity: la cantidad
// solo cambia vía ajustes del ledger).
type UpdateItemRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	MinimumStockLevel *int             `json:"minimum_stock_level"`
	MaximumStockLevel *int             `json:"maximum_stock_level"`
	Priority          *string          `json:"priority"`
	Location          *string          `json:"location"`
	CategoryID        *string          `json:"category_id"`
}

// ItemResponse salida de un ítem de inventario con sus proyecciones derivadas.
type ItemResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id,omitempty"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Quantity          int             `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	MinimumStockLevel int             `json:"minimum_stock_level"`
	MaximumStockLevel int             `json:"maximum_stock_level"`
	Priority          string          `json:"priority"`
	Location          string          `json:"location"`
	CategoryID        string          `json:"category_id,omitempty"`
	StockStatus       string          `json:"stock_status"`
	TotalValue        decimal.Decimal `json:"total_value"`
	IsLowStock        bool            `json:"is_low_stock"`
	IsOutOfStock      bool            `json:"is_out_of_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// AdjustQuantityRequest body de POST /api/inventory/{id}/adjust.
type AdjustQuantityRequest struct {
	QuantityChange int    `json:"quantity_change"`
	ChangeType     string `json:"change_type"`
	Reason         string `json:"reason,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// AdjustQuantityResponse resultado del ajuste: cantidades antes y después.
type AdjustQuantityResponse struct {
	Message          string `json:"message"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	QuantityChanged  int    `json:"quantity_changed"`
}

// ChangeResponse salida de una entrada del ledger.
type ChangeResponse struct {
	ID               string    `json:"id"`
	ItemID           string    `json:"item_id"`
	ChangeType       string    `json:"change_type"`
	QuantityChanged  int       `json:"quantity_changed"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Reason           string    `json:"reason,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	ChangedBy        string    `json:"changed_by"`
	IsIncrease       bool      `json:"is_increase"`
	Timestamp        time.Time `json:"timestamp"`
}

// SummaryResponse resumen agregado del inventario.
type SummaryResponse struct {
	TotalItems       int             `json:"total_items"`
	TotalValue       decimal.Decimal `json:"total_value"`
	LowStockCount    int             `json:"low_stock_count"`
	OutOfStockCount  int             `json:"out_of_stock_count"`
	OverstockedCount int             `json:"overstocked_count"`
	CategoriesCount  int             `json:"categories_count"`
}
