package entity

import "time"

// Location representa un punto de entrega. Puede ser un punto de recogida
// terminal o una bodega de tránsito (IsWarehouse). La categoría no cambia
// durante la vida del registro salvo intervención administrativa.
type Location struct {
	ID          string
	Name        string
	IsWarehouse bool
	CreatedAt   time.Time
}
