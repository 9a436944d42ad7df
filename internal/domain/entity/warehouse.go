package entity

import "time"

// Warehouse representa una bodega dentro del árbol de bodegas.
// Las bodegas grupo (IsGroup) solo agrupan; no admiten transacciones de stock.
type Warehouse struct {
	ID              string // nombre único, ej. "Stores - WP"
	Name            string
	ParentWarehouse string
	IsGroup         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
