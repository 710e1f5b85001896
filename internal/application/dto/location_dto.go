package dto

import "time"

// CreateLocationRequest alta de una ubicación (solo admin).
type CreateLocationRequest struct {
	Name        string `json:"name"`
	IsWarehouse bool   `json:"is_warehouse"`
}

// LocationResponse representación de una ubicación.
type LocationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	IsWarehouse bool      `json:"is_warehouse"`
	CreatedAt   time.Time `json:"created_at"`
}
