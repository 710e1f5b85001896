package repository

import "github.com/jhoicas/Paqueteria-api/internal/domain/entity"

// GRNFilter filtros de listado de GRNs. LocationID es obligatorio salvo para
// admins sin ubicación seleccionada (cadena vacía = sin filtro de ubicación).
type GRNFilter struct {
	LocationID string
	Status     string // "delivered" | "pending" | ""
	Courier    string
	ParcelType string
	Limit      int
	Offset     int
}

// GRNRepository define el puerto de persistencia para la cabecera GRN.
type GRNRepository interface {
	Create(grn *entity.GRN) error
	GetByID(id string) (*entity.GRN, error)
	// Delete borra la cabecera; líneas, OTP y registros de bodega no
	// terminales caen en cascada. Los DN nunca se borran: el caso de uso
	// rechaza el borrado si existe alguno.
	Delete(id string) error
	List(filter GRNFilter) ([]*entity.GRN, error)
	// Totals devuelve los contadores derivados (líneas, entregadas, ingresadas).
	Totals(grnID string) (entity.GRNTotals, error)
}
