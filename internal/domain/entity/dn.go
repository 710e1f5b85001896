package entity

import "time"

// DN es la nota de entrega de una línea: el evento irreversible que marca la
// salida de custodia. Uno a uno con GRNLine, nunca se transfiere ni se borra.
type DN struct {
	ID                  string
	GRNLineID           string
	CreatedAt           time.Time
	Remark              string
	FromWarehouseInward bool // true cuando la entrega ocurrió en la etapa 3 del pipeline de bodega
}
