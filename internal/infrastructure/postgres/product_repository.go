package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/merkato-api/internal/domain"
	"github.com/tu-usuario/merkato-api/internal/domain/entity"
	"github.com/tu-usuario/merkato-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, category_id, name, slug, description, price, image_url, sizes, active, created_at`

// ProductRepo adaptador PostgreSQL del catálogo de productos.
type ProductRepo struct {
	q Querier
}

func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, category_id, name, slug, description, price, image_url, sizes, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, nullable(p.CategoryID), p.Name, p.Slug, p.Description,
		p.Price, p.ImageURL, p.Sizes, p.Active, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
}

func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $2, name = $3, slug = $4, description = $5,
			price = $6, image_url = $7, sizes = $8, active = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, nullable(p.CategoryID), p.Name, p.Slug, p.Description,
		p.Price, p.ImageURL, p.Sizes, p.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListActive productos activos del catálogo, opcionalmente por categoría.
func (r *ProductRepo) ListActive(categorySlug string, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT p.id, p.category_id, p.name, p.slug, p.description, p.price,
			p.image_url, p.sizes, p.active, p.created_at
		FROM products p`
	args := []any{}
	pos := 1
	if categorySlug != "" {
		query += fmt.Sprintf(` JOIN categories c ON c.id = p.category_id WHERE p.active AND c.slug = $%d`, pos)
		args = append(args, categorySlug)
		pos++
	} else {
		query += ` WHERE p.active`
	}
	query += fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getOne(query string, args ...any) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(), query, args...)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	err := row.Scan(&p.ID, &categoryID, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.ImageURL, &p.Sizes, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return &p, nil
}
