package entity

import "time"

// Category categoría del catálogo de accesorios (jerárquica opcional).
type Category struct {
	ID        string
	ParentID  string // vacío si es raíz
	Name      string
	Slug      string // único
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
