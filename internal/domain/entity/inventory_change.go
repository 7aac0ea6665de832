package entity

import "time"

// Tipos de cambio de inventario.
const (
	ChangeTypeRestock    = "restock"
	ChangeTypeSale       = "sale"
	ChangeTypeAdjustment = "adjustment"
	ChangeTypeDamaged    = "damaged"
	ChangeTypeReturned   = "returned"
)

// ValidChangeType verifica que el tipo pertenezca al catálogo de tipos.
func ValidChangeType(t string) bool {
	switch t {
	case ChangeTypeRestock, ChangeTypeSale, ChangeTypeAdjustment, ChangeTypeDamaged, ChangeTypeReturned:
		return true
	}
	return false
}

// InventoryChange registro inmutable del ledger de inventario. Se crea exactamente uno
// por mutación, en la misma transacción que la actualización de la cantidad del ítem.
// Invariante: NewQuantity == PreviousQuantity + QuantityChanged y NewQuantity >= 0.
// Una vez escrito, nunca se modifica ni se borra (es la pista de auditoría).
type InventoryChange struct {
	ID               string
	ItemID           string
	ChangeType       string
	QuantityChanged  int // delta con signo, nunca cero
	PreviousQuantity int
	NewQuantity      int
	Reason           string
	Notes            string
	ChangedBy        string // UserID
	CreatedAt        time.Time
}

// IsIncrease indica si el cambio suma stock.
func (c *InventoryChange) IsIncrease() bool { return c.QuantityChanged > 0 }

// IsDecrease indica si el cambio resta stock.
func (c *InventoryChange) IsDecrease() bool { return c.QuantityChanged < 0 }
