package repository

import "github.com/jhoicas/Paqueteria-api/internal/domain/entity"

// WarehouseInwardRepository define el puerto de persistencia para el registro
// de bodega de una línea (uno a uno con GRNLine, mutado en el lugar).
type WarehouseInwardRepository interface {
	Create(w *entity.WarehouseInward) error
	GetByID(id string) (*entity.WarehouseInward, error)
	// GetByLine devuelve el registro de la línea o (nil, nil) si no fue ingresada.
	GetByLine(lineID string) (*entity.WarehouseInward, error)
	Update(w *entity.WarehouseInward) error
	// ListByStage lista registros en la etapa indicada, filtrando por la
	// ubicación de entrega del GRN destino de la línea ("" = todas).
	ListByStage(locationID string, stage entity.Stage, limit, offset int) ([]*entity.WarehouseInward, error)
}
