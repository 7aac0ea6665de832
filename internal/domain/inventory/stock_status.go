package inventory

// StockStatus clasificación derivada del stock respecto a sus umbrales.
type StockStatus string

const (
	StatusOutOfStock  StockStatus = "out_of_stock"
	StatusLowStock    StockStatus = "low_stock"
	StatusOverstocked StockStatus = "overstocked"
	StatusNormal      StockStatus = "normal"
)

// ClassifyStock clasifica la cantidad en orden fijo de prioridad (servicio de dominio, puro):
// quantity == 0 -> out_of_stock; quantity <= min -> low_stock; quantity >= max -> overstocked; si no, normal.
// out_of_stock se evalúa antes que low_stock: un ítem en cero con mínimo cero sigue siendo out_of_stock.
func ClassifyStock(quantity, minimumStockLevel, maximumStockLevel int) StockStatus {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity <= minimumStockLevel:
		return StatusLowStock
	case quantity >= maximumStockLevel:
		return StatusOverstocked
	default:
		return StatusNormal
	}
}
