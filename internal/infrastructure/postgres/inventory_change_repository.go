package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

var _ repository.InventoryChangeRepository = (*InventoryChangeRepo)(nil)

const changeColumns = `id, item_id, change_type, quantity_changed, previous_quantity,
		new_quantity, reason, notes, changed_by, created_at`

// InventoryChangeRepo adaptador PostgreSQL del libro mayor de movimientos.
// El libro es append-only: sin UPDATE ni DELETE.
type InventoryChangeRepo struct {
	q Querier
}

func NewInventoryChangeRepository(q Querier) *InventoryChangeRepo {
	return &InventoryChangeRepo{q: q}
}

// Create agrega un movimiento al libro mayor.
func (r *InventoryChangeRepo) Create(change *entity.InventoryChange) error {
	query := `
		INSERT INTO inventory_changes (id, item_id, change_type, quantity_changed,
			previous_quantity, new_quantity, reason, notes, changed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		change.ID, change.ItemID, change.ChangeType, change.QuantityChanged,
		change.PreviousQuantity, change.NewQuantity, change.Reason, change.Notes,
		nullable(change.ChangedBy), change.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory change: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID, o nil si no existe.
func (r *InventoryChangeRepo) GetByID(id string) (*entity.InventoryChange, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+changeColumns+` FROM inventory_changes WHERE id = $1`, id)
	change, err := scanChange(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory change: %w", err)
	}
	return change, nil
}

// List lista movimientos con filtros, más recientes primero.
func (r *InventoryChangeRepo) List(filter repository.ChangeFilter) ([]*entity.InventoryChange, error) {
	query := `SELECT ` + changeColumns + ` FROM inventory_changes WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.ChangeType != "" {
		query += fmt.Sprintf(" AND change_type = $%d", pos)
		args = append(args, filter.ChangeType)
		pos++
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, filter.Offset)
	return r.list(query, args...)
}

// ListRecent últimos n movimientos de todo el inventario.
func (r *InventoryChangeRepo) ListRecent(limit int) ([]*entity.InventoryChange, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(`SELECT `+changeColumns+` FROM inventory_changes
		ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *InventoryChangeRepo) list(query string, args ...any) ([]*entity.InventoryChange, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory changes: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryChange
	for rows.Next() {
		change, err := scanChange(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory change: %w", err)
		}
		list = append(list, change)
	}
	return list, rows.Err()
}

func scanChange(row pgx.Row) (*entity.InventoryChange, error) {
	var c entity.InventoryChange
	var changedBy *string
	err := row.Scan(
		&c.ID, &c.ItemID, &c.ChangeType, &c.QuantityChanged,
		&c.PreviousQuantity, &c.NewQuantity, &c.Reason, &c.Notes,
		&changedBy, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if changedBy != nil {
		c.ChangedBy = *changedBy
	}
	return &c, nil
}
