package repository

import "github.com/tu-usuario/merkato-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	Update(product *entity.Product) error
	// ListActive lista productos activos; categorySlug vacío = todos.
	ListActive(categorySlug string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
