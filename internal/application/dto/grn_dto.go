package dto

import "time"

// LineInput una línea del formulario de creación de GRN. Las filas sin ningún
// campo obligatorio poblado se descartan como placeholders.
type LineInput struct {
	SenderName     string `json:"sender_name"`
	Phone          string `json:"phone"`
	SenderLocation string `json:"sender_location"`
	CourierName    string `json:"courier_name"`
	CourierID      string `json:"courier_id"`
	ParcelType     string `json:"parcel_type"`
	Remark         string `json:"remark"`
}

// CreateGRNRequest alta de un GRN con sus líneas.
type CreateGRNRequest struct {
	ReceiverID         string      `json:"receiver_id"`
	DeliveryLocationID string      `json:"delivery_location_id"`
	Place              string      `json:"place"`
	Lines              []LineInput `json:"lines"`
}

// LineResponse representación de una línea con su estado de custodia.
type LineResponse struct {
	ID             string    `json:"id"`
	GRNID          string    `json:"grn_id"`
	LineNumber     int       `json:"line_number"`
	SenderName     string    `json:"sender_name,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	SenderLocation string    `json:"sender_location,omitempty"`
	CourierName    string    `json:"courier_name"`
	CourierID      string    `json:"courier_id,omitempty"`
	ParcelType     string    `json:"parcel_type"`
	Remark         string    `json:"remark,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Delivered      bool      `json:"delivered"`
	Stage          *string   `json:"stage,omitempty"` // received | on_floor | delivered (solo líneas ingresadas)
}

// GRNResponse representación de un GRN con contadores derivados.
type GRNResponse struct {
	ID                 string         `json:"id"`
	ReceiverID         string         `json:"receiver_id"`
	ReceiverName       string         `json:"receiver_name,omitempty"`
	DeliveryLocationID string         `json:"delivery_location_id"`
	LocationName       string         `json:"location_name,omitempty"`
	Place              string         `json:"place,omitempty"`
	CreatedBy          string         `json:"created_by"`
	CreatedAt          time.Time      `json:"created_at"`
	TotalLines         int            `json:"total_lines"`
	DeliveredLines     int            `json:"delivered_lines"`
	IsDelivered        bool           `json:"is_delivered"`
	InwardStatus       *string        `json:"inward_status,omitempty"`
	Lines              []LineResponse `json:"lines,omitempty"`
}

// ListGRNsRequest filtros del listado de GRNs.
type ListGRNsRequest struct {
	Status     string `query:"status"`      // delivered | pending
	Courier    string `query:"courier"`     // código del catálogo
	ParcelType string `query:"parcel_type"` // código del catálogo
	PageRequest
}

// GRNListResponse página de GRNs.
type GRNListResponse struct {
	Items []GRNResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// DNResponse una nota de entrega del historial.
type DNResponse struct {
	ID                  string    `json:"id"`
	GRNLineID           string    `json:"grn_line_id"`
	GRNID               string    `json:"grn_id,omitempty"`
	LineNumber          int       `json:"line_number,omitempty"`
	SenderName          string    `json:"sender_name,omitempty"`
	Remark              string    `json:"remark,omitempty"`
	FromWarehouseInward bool      `json:"from_warehouse_inward"`
	CreatedAt           time.Time `json:"created_at"`
}

// DNListResponse página del historial de entregas.
type DNListResponse struct {
	Items []DNResponse `json:"items"`
	Page  PageResponse `json:"page"`
}
