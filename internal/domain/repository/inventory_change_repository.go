package repository

import "github.com/tu-usuario/merkato-api/internal/domain/entity"

// ChangeFilter filtros de consulta del ledger.
type ChangeFilter struct {
	ItemID     string
	ChangeType string
	Limit      int
	Offset     int
}

// InventoryChangeRepository define el puerto de persistencia del ledger de inventario.
// Solo inserta y lee: el ledger es append-only, no existe Update ni Delete.
type InventoryChangeRepository interface {
	Create(change *entity.InventoryChange) error
	GetByID(id string) (*entity.InventoryChange, error)
	List(filter ChangeFilter) ([]*entity.InventoryChange, error)
	ListRecent(limit int) ([]*entity.InventoryChange, error)
}
