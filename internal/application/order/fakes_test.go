package order_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

// Fakes en memoria. El tx runner emula el rollback restaurando un snapshot
// del estado cuando la función transaccional falla.

type memItemRepo struct {
	items map[string]*entity.InventoryItem
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: map[string]*entity.InventoryItem{}}
}

func (r *memItemRepo) add(item *entity.InventoryItem) {
	cp := *item
	r.items[item.ID] = &cp
}

func (r *memItemRepo) snapshot() map[string]*entity.InventoryItem {
	out := make(map[string]*entity.InventoryItem, len(r.items))
	for id, it := range r.items {
		cp := *it
		out[id] = &cp
	}
	return out
}

func (r *memItemRepo) Create(item *entity.InventoryItem) error {
	r.add(item)
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	for _, it := range r.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetByProductID(productID string) (*entity.InventoryItem, error) {
	for _, it := range r.items {
		if it.ProductID == productID {
			cp := *it
			return &cp, nil
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
	r.add(item)
	return nil
}

func (r *memItemRepo) List(repository.ItemFilter) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memItemRepo) ListLowStock() ([]*entity.InventoryItem, error)    { return nil, nil }
func (r *memItemRepo) ListOutOfStock() ([]*entity.InventoryItem, error)  { return nil, nil }
func (r *memItemRepo) ListOverstocked() ([]*entity.InventoryItem, error) { return nil, nil }

func (r *memItemRepo) Summary() (*repository.InventorySummary, error) {
	return &repository.InventorySummary{TotalValue: decimal.Zero}, nil
}

func (r *memItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type memChangeRepo struct {
	changes []*entity.InventoryChange
}

func (r *memChangeRepo) Create(change *entity.InventoryChange) error {
	cp := *change
	r.changes = append(r.changes, &cp)
	return nil
}

func (r *memChangeRepo) GetByID(id string) (*entity.InventoryChange, error) { return nil, nil }

func (r *memChangeRepo) List(repository.ChangeFilter) ([]*entity.InventoryChange, error) {
	return r.changes, nil
}

func (r *memChangeRepo) ListRecent(limit int) ([]*entity.InventoryChange, error) {
	return r.changes, nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *memProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) ListActive(string, int, int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type memOrderRepo struct {
	orders     map[string]*entity.Order
	items      []*entity.OrderItem
	failCreate error
}

func (r *memOrderRepo) Create(o *entity.Order) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *o
	cp.Items = nil
	r.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) CreateItem(item *entity.OrderItem) error {
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, it := range r.items {
		if it.OrderID == orderID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListByUser(userUID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.UserUID == userUID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(id, status, paymentRef string) error {
	if o, ok := r.orders[id]; ok {
		o.Status = status
		if paymentRef != "" {
			o.PaymentRef = paymentRef
		}
	}
	return nil
}

// memOrderTxRunner restaura los snapshots si fn falla, emulando el rollback.
type memOrderTxRunner struct {
	items   *memItemRepo
	changes *memChangeRepo
	orders  *memOrderRepo
}

func (tr *memOrderTxRunner) RunOrder(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	changeRepo repository.InventoryChangeRepository,
	orderRepo repository.OrderRepository,
) error) error {
	itemsBefore := tr.items.snapshot()
	changesBefore := len(tr.changes.changes)
	ordersBefore := make(map[string]*entity.Order, len(tr.orders.orders))
	for id, o := range tr.orders.orders {
		ordersBefore[id] = o
	}
	orderItemsBefore := len(tr.orders.items)

	if err := fn(tr.items, tr.changes, tr.orders); err != nil {
		tr.items.items = itemsBefore
		tr.changes.changes = tr.changes.changes[:changesBefore]
		tr.orders.orders = ordersBefore
		tr.orders.items = tr.orders.items[:orderItemsBefore]
		return err
	}
	return nil
}

type notifyCall struct {
	orderID, email, paymentMethod string
	total                         decimal.Decimal
}

type spyNotifier struct {
	calls []notifyCall
	err   error
}

func (n *spyNotifier) OrderPlaced(ctx context.Context, orderID, email string, total decimal.Decimal, paymentMethod string) error {
	if n.err != nil {
		return n.err
	}
	n.calls = append(n.calls, notifyCall{orderID: orderID, email: email, total: total, paymentMethod: paymentMethod})
	return nil
}
