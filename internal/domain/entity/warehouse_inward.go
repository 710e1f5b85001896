package entity

import "time"

// Stage es la proyección de solo lectura del avance de una línea dentro del
// pipeline de bodega. Se deriva de los campos persistidos; las transiciones
// son monótonas y ninguna etapa puede retroceder.
type Stage string

const (
	StageReceived  Stage = "received"
	StageOnFloor   Stage = "on_floor"
	StageDelivered Stage = "delivered"
)

// WarehouseInward modela el paso de una línea por las tres etapas de bodega:
// ingreso, asignación de piso y entrega en piso. Se crea una sola vez por
// línea y se muta en el lugar en cada etapa.
type WarehouseInward struct {
	ID        string
	GRNLineID string

	InwardedBy   string
	InwardedAt   time.Time
	InwardRemark string

	Floor             string
	Rack              string
	AssignedToFloorBy string
	AssignedToFloorAt *time.Time
	FloorRemark       string

	DeliveredToReceiver bool
	DeliveredBy         string
	DeliveredAt         *time.Time
	DeliveryRemark      string
}

// IsOnFloor indica si la etapa 2 ya se ejecutó (piso asignado, no reasignable).
func (w *WarehouseInward) IsOnFloor() bool {
	return w.Floor != ""
}

// Stage deriva la etapa actual a partir de los campos persistidos.
func (w *WarehouseInward) Stage() Stage {
	switch {
	case w.DeliveredToReceiver:
		return StageDelivered
	case w.Floor != "":
		return StageOnFloor
	default:
		return StageReceived
	}
}
