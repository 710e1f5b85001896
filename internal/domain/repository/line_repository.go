package repository

import "github.com/jhoicas/Paqueteria-api/internal/domain/entity"

// LineRepository define el puerto de persistencia para GRNLine.
// Usado dentro de transacciones: reasignar una línea y renumerar ambos GRNs
// debe ser atómico.
type LineRepository interface {
	Create(line *entity.GRNLine) error
	GetByID(id string) (*entity.GRNLine, error)
	ListByGRN(grnID string) ([]*entity.GRNLine, error)
	// Reassign mueve la línea al GRN destino con el número de línea indicado.
	Reassign(lineID, destGRNID string, lineNumber int) error
	// Renumber compacta line_number del GRN a una secuencia densa 1..N
	// preservando el orden relativo actual.
	Renumber(grnID string) error
}
