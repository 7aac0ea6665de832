package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/merkato-api/internal/domain"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const itemColumns = `id, product_id, sku, name, description, quantity, price,
		minimum_stock_level, maximum_stock_level, priority, location, category_id,
		created_at, updated_at`

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persiste un nuevo ítem de inventario.
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, product_id, sku, name, description, quantity, price,
			minimum_stock_level, maximum_stock_level, priority, location, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, nullable(item.ProductID), item.SKU, item.Name, item.Description,
		item.Quantity, item.Price, item.MinimumStockLevel, item.MaximumStockLevel,
		item.Priority, item.Location, nullable(item.CategoryID), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID, o nil si no existe.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetBySKU obtiene un ítem por SKU.
func (r *InventoryItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM inventory_items WHERE sku = $1`, sku)
}

// GetByProductID obtiene el ítem que respalda a un producto del catálogo.
func (r *InventoryItemRepo) GetByProductID(productID string) (*entity.InventoryItem, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM inventory_items WHERE product_id = $1`, productID)
}

// GetForUpdate obtiene el ítem y bloquea su fila (SELECT FOR UPDATE) para
// serializar el read-modify-write; las filas de otros ítems no se tocan.
func (r *InventoryItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

// UpdateQuantity escribe la nueva cantidad. Solo debe llamarse dentro de una tx
// tras GetForUpdate (el motor de inventario es el dueño de este camino).
func (r *InventoryItemRepo) UpdateQuantity(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	return nil
}

// Update actualiza los atributos del ítem sin tocar quantity.
func (r *InventoryItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET name = $2, description = $3, price = $4,
			minimum_stock_level = $5, maximum_stock_level = $6, priority = $7,
			location = $8, category_id = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.Price,
		item.MinimumStockLevel, item.MaximumStockLevel, item.Priority,
		item.Location, nullable(item.CategoryID), item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// List lista ítems con filtros y paginación, ordenados por última actualización.
func (r *InventoryItemRepo) List(filter repository.ItemFilter) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", pos)
		args = append(args, filter.CategoryID)
		pos++
	}
	if filter.Priority != "" {
		query += fmt.Sprintf(" AND priority = $%d", pos)
		args = append(args, filter.Priority)
		pos++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d OR description ILIKE $%d)", pos, pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)
	return r.list(query, args...)
}

// ListLowStock ítems con quantity <= minimum_stock_level.
func (r *InventoryItemRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	return r.list(`SELECT ` + itemColumns + ` FROM inventory_items
		WHERE quantity <= minimum_stock_level ORDER BY updated_at DESC`)
}

// ListOutOfStock ítems agotados.
func (r *InventoryItemRepo) ListOutOfStock() ([]*entity.InventoryItem, error) {
	return r.list(`SELECT ` + itemColumns + ` FROM inventory_items
		WHERE quantity = 0 ORDER BY updated_at DESC`)
}

// ListOverstocked ítems con quantity >= maximum_stock_level.
func (r *InventoryItemRepo) ListOverstocked() ([]*entity.InventoryItem, error) {
	return r.list(`SELECT ` + itemColumns + ` FROM inventory_items
		WHERE quantity >= maximum_stock_level ORDER BY updated_at DESC`)
}

// Summary agregados del inventario en una sola pasada.
func (r *InventoryItemRepo) Summary() (*repository.InventorySummary, error) {
	query := `
		SELECT count(*),
			COALESCE(sum(quantity * price), 0),
			count(*) FILTER (WHERE quantity <= minimum_stock_level),
			count(*) FILTER (WHERE quantity = 0),
			count(*) FILTER (WHERE quantity >= maximum_stock_level),
			(SELECT count(*) FROM categories)
		FROM inventory_items`
	var s repository.InventorySummary
	var totalValue decimal.Decimal
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.TotalItems, &totalValue, &s.LowStockCount, &s.OutOfStockCount,
		&s.OverstockedCount, &s.CategoriesCount,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	s.TotalValue = totalValue
	return &s, nil
}

// Delete elimina un ítem por ID.
func (r *InventoryItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

func (r *InventoryItemRepo) getOne(query string, args ...any) (*entity.InventoryItem, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

func (r *InventoryItemRepo) list(query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	var productID, categoryID *string
	err := row.Scan(
		&item.ID, &productID, &item.SKU, &item.Name, &item.Description,
		&item.Quantity, &item.Price, &item.MinimumStockLevel, &item.MaximumStockLevel,
		&item.Priority, &item.Location, &categoryID, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if productID != nil {
		item.ProductID = *productID
	}
	if categoryID != nil {
		item.CategoryID = *categoryID
	}
	return &item, nil
}

// nullable convierte string vacío en NULL para columnas con FK opcional.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
