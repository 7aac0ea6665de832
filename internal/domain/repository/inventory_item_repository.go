package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
)

// ItemFilter filtros de listado de ítems de inventario.
type ItemFilter struct {
	CategoryID string
	Priority   string
	Search     string // busca en name, sku y description
	Limit      int
	Offset     int
}

// InventorySummary agregados del inventario para el tablero.
type InventorySummary struct {
	TotalItems       int
	TotalValue       decimal.Decimal // Σ quantity*price
	LowStockCount    int
	OutOfStockCount  int
	OverstockedCount int
	CategoriesCount  int
}

// InventoryItemRepository define el puerto de persistencia para InventoryItem.
// UpdateQuantity es el único camino de escritura de Quantity y solo debe usarse
// dentro de una transacción tras GetForUpdate (el motor de inventario es su dueño).
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetBySKU(sku string) (*entity.InventoryItem, error)
	GetByProductID(productID string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila del ítem (SELECT FOR UPDATE) para serializar
	// el read-modify-write por ítem.
	GetForUpdate(id string) (*entity.InventoryItem, error)
	UpdateQuantity(id string, quantity int) error
	Update(item *entity.InventoryItem) error
	List(filter ItemFilter) ([]*entity.InventoryItem, error)
	ListLowStock() ([]*entity.InventoryItem, error)
	ListOutOfStock() ([]*entity.InventoryItem, error)
	ListOverstocked() ([]*entity.InventoryItem, error)
	Summary() (*InventorySummary, error)
	Delete(id string) error
}
