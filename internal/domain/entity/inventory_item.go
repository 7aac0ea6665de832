package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/merkato-api/internal/domain/inventory"
)

// Prioridad de reposición de un ítem.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// InventoryItem representa un SKU del inventario con su cantidad actual.
// Invariante: Quantity >= 0 y solo cambia aplicando un delta a través del ledger
// (InventoryChange); ningún otro camino muta la cantidad.
type InventoryItem struct {
	ID                string
	ProductID         string // vacío si el ítem no respalda un producto del catálogo
	SKU               string // único
	Name              string
	Description       string
	Quantity          int
	Price             decimal.Decimal
	MinimumStockLevel int
	MaximumStockLevel int // siempre > MinimumStockLevel
	Priority          string
	Location          string
	CategoryID        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si la cantidad está en o por debajo del mínimo.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinimumStockLevel
}

// IsOutOfStock indica si el ítem está agotado.
func (i *InventoryItem) IsOutOfStock() bool {
	return i.Quantity == 0
}

// IsOverstocked indica si la cantidad alcanzó o superó el máximo.
func (i *InventoryItem) IsOverstocked() bool {
	return i.Quantity >= i.MaximumStockLevel
}

// StockStatus clasifica el stock del ítem (out_of_stock | low_stock | overstocked | normal).
func (i *InventoryItem) StockStatus() inventory.StockStatus {
	return inventory.ClassifyStock(i.Quantity, i.MinimumStockLevel, i.MaximumStockLevel)
}

// TotalValue valor del inventario del ítem: Quantity * Price.
func (i *InventoryItem) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(int64(i.Quantity)).Mul(i.Price)
}
