package dto

import "github.com/jhoicas/Paqueteria-api/internal/domain/entity"

// NewLineResponse mapea una línea de dominio a su representación, con el
// estado de custodia ya resuelto por el caller.
func NewLineResponse(line *entity.GRNLine, delivered bool, stage *entity.Stage) LineResponse {
	resp := LineResponse{
		ID:             line.ID,
		GRNID:          line.GRNID,
		LineNumber:     line.LineNumber,
		SenderName:     line.SenderName,
		Phone:          line.Phone,
		SenderLocation: line.SenderLocation,
		CourierName:    line.CourierName,
		CourierID:      line.CourierID,
		ParcelType:     line.ParcelType,
		Remark:         line.Remark,
		CreatedAt:      line.CreatedAt,
		Delivered:      delivered,
	}
	if stage != nil {
		s := string(*stage)
		resp.Stage = &s
	}
	return resp
}

// NewInwardResponse mapea un registro de bodega con su etapa derivada.
func NewInwardResponse(w *entity.WarehouseInward) InwardResponse {
	return InwardResponse{
		ID:                w.ID,
		GRNLineID:         w.GRNLineID,
		Stage:             string(w.Stage()),
		InwardedBy:        w.InwardedBy,
		InwardedAt:        w.InwardedAt,
		InwardRemark:      w.InwardRemark,
		Floor:             w.Floor,
		Rack:              w.Rack,
		AssignedToFloorAt: w.AssignedToFloorAt,
		DeliveredAt:       w.DeliveredAt,
	}
}
