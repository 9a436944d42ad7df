package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	ID              string `json:"id" validate:"required,min=1,max=140"`
	Name            string `json:"name" validate:"required,min=1,max=200"`
	ParentWarehouse string `json:"parent_warehouse"`
	IsGroup         bool   `json:"is_group"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ParentWarehouse string    `json:"parent_warehouse,omitempty"`
	IsGroup         bool      `json:"is_group"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
