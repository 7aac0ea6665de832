package inventory_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

// Fakes en memoria de los repositorios. Cubren lo que los casos de uso tocan;
// el comportamiento transaccional real se prueba contra PostgreSQL.

type memItemRepo struct {
	items map[string]*entity.InventoryItem
}

func newMemItemRepo(items ...*entity.InventoryItem) *memItemRepo {
	r := &memItemRepo{items: make(map[string]*entity.InventoryItem)}
	for _, it := range items {
		copy := *it
		r.items[it.ID] = &copy
	}
	return r
}

func (r *memItemRepo) Create(item *entity.InventoryItem) error {
	copy := *item
	r.items[item.ID] = &copy
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copy := *it
	return &copy, nil
}

func (r *memItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	for _, it := range r.items {
		if it.SKU == sku {
			copy := *it
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetByProductID(productID string) (*entity.InventoryItem, error) {
	for _, it := range r.items {
		if it.ProductID == productID {
			copy := *it
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetForUpdate(id string) (*entity.InventoryItem, error) {
	return r.GetByID(id)
}

func (r *memItemRepo) UpdateQuantity(id string, quantity int) error {
	if it, ok := r.items[id]; ok {
		it.Quantity = quantity
	}
	return nil
}

func (r *memItemRepo) Update(item *entity.InventoryItem) error {
	copy := *item
	r.items[item.ID] = &copy
	return nil
}

func (r *memItemRepo) List(repository.ItemFilter) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		copy := *it
		out = append(out, &copy)
	}
	return out, nil
}

func (r *memItemRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		if it.Quantity <= it.MinimumStockLevel {
			copy := *it
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *memItemRepo) ListOutOfStock() ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		if it.Quantity == 0 {
			copy := *it
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *memItemRepo) ListOverstocked() ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		if it.Quantity >= it.MaximumStockLevel {
			copy := *it
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (r *memItemRepo) Summary() (*repository.InventorySummary, error) {
	s := &repository.InventorySummary{TotalValue: decimal.Zero}
	for _, it := range r.items {
		s.TotalItems++
		s.TotalValue = s.TotalValue.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		if it.Quantity == 0 {
			s.OutOfStockCount++
		}
		if it.Quantity <= it.MinimumStockLevel {
			s.LowStockCount++
		}
		if it.Quantity >= it.MaximumStockLevel {
			s.OverstockedCount++
		}
	}
	return s, nil
}

func (r *memItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type memChangeRepo struct {
	changes []*entity.InventoryChange
}

func (r *memChangeRepo) Create(change *entity.InventoryChange) error {
	copy := *change
	r.changes = append(r.changes, &copy)
	return nil
}

func (r *memChangeRepo) GetByID(id string) (*entity.InventoryChange, error) {
	for _, c := range r.changes {
		if c.ID == id {
			copy := *c
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *memChangeRepo) List(filter repository.ChangeFilter) ([]*entity.InventoryChange, error) {
	var out []*entity.InventoryChange
	for _, c := range r.changes {
		if filter.ItemID != "" && c.ItemID != filter.ItemID {
			continue
		}
		if filter.ChangeType != "" && c.ChangeType != filter.ChangeType {
			continue
		}
		copy := *c
		out = append(out, &copy)
	}
	return out, nil
}

func (r *memChangeRepo) ListRecent(limit int) ([]*entity.InventoryChange, error) {
	out, _ := r.List(repository.ChangeFilter{})
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// memTxRunner ejecuta la función directamente sobre los fakes, sin transacción.
// El rollback se emula: los tests verifican estado solo en casos de éxito o
// comprueban que los fallos ocurren antes de cualquier escritura.
type memTxRunner struct {
	itemRepo   *memItemRepo
	changeRepo *memChangeRepo
}

func (tr *memTxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	changeRepo repository.InventoryChangeRepository,
) error) error {
	return fn(tr.itemRepo, tr.changeRepo)
}
