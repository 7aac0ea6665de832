package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del catálogo. El stock vive en el
// InventoryItem que lo respalda; Price es el precio de lista vigente (las líneas
// de pedido congelan su propia copia al momento de la compra).
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Slug        string // único
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Sizes       json.RawMessage // arreglo JSON de tallas disponibles
	Active      bool
	CreatedAt   time.Time
}
