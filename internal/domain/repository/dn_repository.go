package repository

import "github.com/jhoicas/Paqueteria-api/internal/domain/entity"

// DNFilter filtros del historial de entregas.
type DNFilter struct {
	LocationID string
	Courier    string
	ParcelType string
	Limit      int
	Offset     int
}

// DNRepository define el puerto de persistencia para las notas de entrega.
// No hay Delete ni Update: un DN es permanente.
type DNRepository interface {
	Create(dn *entity.DN) error
	// GetByLine devuelve el DN de la línea o (nil, nil) si no está entregada.
	GetByLine(lineID string) (*entity.DN, error)
	List(filter DNFilter) ([]*entity.DN, error)
}
