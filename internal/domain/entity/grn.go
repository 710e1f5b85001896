package entity

import (
	"fmt"
	"time"
)

// Couriers soportados para una línea de GRN.
const (
	CourierProfessionalCourier = "professional_courier"
	CourierBlueDart            = "blue_dart"
	CourierBranchExpress       = "branch_express"
	CourierDTDC                = "dtdc"
	CourierShreeMaruthi        = "shree_maruthi"
	CourierTruckOn             = "truck_on"
	CourierExpressAirService   = "express_air_service"
	CourierSTRetail            = "st_retail"
	CourierPost                = "post"
	CourierSkyKing             = "sky_king"
	CourierTirupathi           = "tirupathi"
	CourierGokulam             = "gokulam"
)

// Tipos de paquete soportados.
const (
	ParcelDocument  = "document"
	ParcelCheque    = "cheque"
	ParcelBill      = "bill"
	ParcelSample    = "sample"
	ParcelBoxCloths = "box_cloths"
	ParcelFood      = "food"
	ParcelMedicine  = "medicine"
)

var courierNames = map[string]string{
	CourierProfessionalCourier: "Professional Courier",
	CourierBlueDart:            "Blue Dart",
	CourierBranchExpress:       "Branch Express",
	CourierDTDC:                "DTDC",
	CourierShreeMaruthi:        "Shree Maruthi",
	CourierTruckOn:             "Truck On",
	CourierExpressAirService:   "Express Air Service",
	CourierSTRetail:            "ST Retail",
	CourierPost:                "Post",
	CourierSkyKing:             "Sky King",
	CourierTirupathi:           "Tirupathi",
	CourierGokulam:             "Gokulam",
}

var parcelTypeNames = map[string]string{
	ParcelDocument:  "Documento",
	ParcelCheque:    "Cheque",
	ParcelBill:      "Factura",
	ParcelSample:    "Muestra",
	ParcelBoxCloths: "Caja (Ropa)",
	ParcelFood:      "Alimentos",
	ParcelMedicine:  "Medicina",
}

// ValidCourier verifica que el código de courier esté en el catálogo.
func ValidCourier(code string) bool {
	_, ok := courierNames[code]
	return ok
}

// ValidParcelType verifica que el tipo de paquete esté en el catálogo.
func ValidParcelType(code string) bool {
	_, ok := parcelTypeNames[code]
	return ok
}

// CourierDisplay devuelve el nombre legible del courier (o el código si no está catalogado).
func CourierDisplay(code string) string {
	if name, ok := courierNames[code]; ok {
		return name
	}
	return code
}

// ParcelTypeDisplay devuelve el nombre legible del tipo de paquete.
func ParcelTypeDisplay(code string) string {
	if name, ok := parcelTypeNames[code]; ok {
		return name
	}
	return code
}

// GRN es la cabecera de una nota de recepción de paquetes: agrupa las líneas
// recibidas para un mismo receptor en una ubicación de entrega. Tiene como
// máximo un OTP vigente (uno a uno).
type GRN struct {
	ID                 string
	ReceiverID         string
	DeliveryLocationID string
	CreatedBy          string
	Place              string // nota libre; en traslados referencia la bodega de origen
	CreatedAt          time.Time
}

// GRNLine es una línea (un paquete) dentro de un GRN. Pertenece a exactamente
// un GRN en cada instante pero su propiedad es transferible: el traslado de
// bodega la reasigna a un GRN nuevo renumerando ambos lados.
type GRNLine struct {
	ID             string
	GRNID          string
	SenderName     string
	Phone          string
	SenderLocation string
	CourierName    string
	CourierID      string
	ParcelType     string
	Remark         string
	LineNumber     int
	CreatedAt      time.Time
}

// IsPlaceholder indica si la línea es una fila vacía del formulario
// (ningún campo obligatorio poblado) y debe descartarse al crear el GRN.
func (l *GRNLine) IsPlaceholder() bool {
	return l.SenderName == "" && l.Phone == "" && l.CourierName == "" && l.ParcelType == ""
}

// GRNTotals agrupa los contadores derivados de un GRN.
type GRNTotals struct {
	TotalLines     int
	DeliveredLines int
	InwardedLines  int
}

// IsDelivered indica si todas las líneas del GRN tienen DN.
// Un GRN sin líneas no se considera entregado.
func (t GRNTotals) IsDelivered() bool {
	return t.TotalLines > 0 && t.DeliveredLines == t.TotalLines
}

// IsFullyInwarded indica si todas las líneas fueron ingresadas a bodega.
func (t GRNTotals) IsFullyInwarded() bool {
	return t.TotalLines > 0 && t.InwardedLines == t.TotalLines
}

// InwardStatus devuelve el estado textual de ingreso a bodega, o nil si el
// GRN no pertenece a una bodega.
func (t GRNTotals) InwardStatus(isWarehouse bool) *string {
	if !isWarehouse {
		return nil
	}
	var s string
	switch {
	case t.InwardedLines == 0:
		s = "Pendiente de Ingreso"
	case t.InwardedLines < t.TotalLines:
		s = fmt.Sprintf("Ingreso Parcial (%d/%d)", t.InwardedLines, t.TotalLines)
	default:
		s = "Ingreso Completo"
	}
	return &s
}
