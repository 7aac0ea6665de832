package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	CategoryID  string          `json:"category_id" validate:"required"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Slug        string          `json:"slug" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Sizes       json.RawMessage `json:"sizes"`
	Active      *bool           `json:"active"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Sizes       json.RawMessage  `json:"sizes"`
	Active      *bool            `json:"active"`
}

// ProductResponse salida de un producto. Stock es el del ítem de inventario que lo respalda.
type ProductResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Sizes       json.RawMessage `json:"sizes"`
	Active      bool            `json:"active"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
