package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_uid, email, total, status, payment_method, payment_ref, shipping_info, created_at`

// OrderRepo adaptador PostgreSQL de órdenes y sus renglones.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste el encabezado de la orden. Los renglones van por CreateItem
// dentro de la misma tx.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (id, user_uid, email, total, status, payment_method, payment_ref, shipping_info, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.UserUID, o.Email, o.Total, o.Status,
		o.PaymentMethod, nullable(o.PaymentRef), o.ShippingInfo, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, size)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price, item.Size)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, product_id, quantity, price, size
		FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.Size); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByUser órdenes de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(userUID string, limit, offset int) ([]*entity.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT `+orderColumns+` FROM orders WHERE user_uid = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza estado y referencia de pago (paymentRef vacío conserva la actual).
func (r *OrderRepo) UpdateStatus(id, status, paymentRef string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, payment_ref = COALESCE($3, payment_ref) WHERE id = $1`,
		id, status, nullable(paymentRef))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var paymentRef *string
	err := row.Scan(&o.ID, &o.UserUID, &o.Email, &o.Total, &o.Status,
		&o.PaymentMethod, &paymentRef, &o.ShippingInfo, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if paymentRef != nil {
		o.PaymentRef = *paymentRef
	}
	return &o, nil
}
