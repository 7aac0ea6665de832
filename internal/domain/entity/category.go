package entity

import "time"

// Category representa una categoría de productos e ítems de inventario.
type Category struct {
	ID          string
	Name        string // único
	Slug        string
	Description string
	ImageURL    string
	CreatedAt   time.Time
}
