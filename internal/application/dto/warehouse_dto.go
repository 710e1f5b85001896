package dto

import (
	"fmt"
	"time"
)

// InwardRequest etapa 1: ingreso a bodega de las líneas seleccionadas.
type InwardRequest struct {
	LineIDs []string `json:"line_ids"`
	Remark  string   `json:"remark"`
}

// AssignFloorRequest etapa 2: asignación de piso/estante.
type AssignFloorRequest struct {
	InwardIDs []string `json:"inward_ids"`
	Floor     string   `json:"floor"`
	Rack      string   `json:"rack"`
	Remark    string   `json:"remark"`
}

// FloorDeliveryRequest etapa 3: entrega en piso al receptor.
type FloorDeliveryRequest struct {
	InwardIDs []string `json:"inward_ids"`
	Remark    string   `json:"remark"`
}

// BatchError fallo de un ítem dentro de una operación por lote.
type BatchError struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult resultado de una operación por lote best-effort: los ítems
// validados se confirman juntos y los fallos se acumulan sin abortar el lote.
type BatchResult struct {
	Succeeded   []string     `json:"succeeded"`
	CreatedGRNs []string     `json:"created_grns,omitempty"`
	Failed      []BatchError `json:"failed,omitempty"`
	Warnings    []string     `json:"warnings,omitempty"`
}

// OK indica éxito global: al menos un ítem procesado.
func (r *BatchResult) OK() bool {
	return len(r.Succeeded) > 0
}

// Summary mensaje legible con los contadores del lote.
func (r *BatchResult) Summary() string {
	return fmt.Sprintf("%d procesados, %d fallidos", len(r.Succeeded), len(r.Failed))
}

// ErrorStrings aplana los fallos por ítem para CommandResult.Errors.
func (r *BatchResult) ErrorStrings() []string {
	if len(r.Failed) == 0 && len(r.Warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Failed)+len(r.Warnings))
	for _, f := range r.Failed {
		out = append(out, fmt.Sprintf("%s: %s", f.ID, f.Reason))
	}
	out = append(out, r.Warnings...)
	return out
}

// InwardResponse representación de un registro de bodega para el tracking.
type InwardResponse struct {
	ID                string     `json:"id"`
	GRNLineID         string     `json:"grn_line_id"`
	Stage             string     `json:"stage"`
	InwardedBy        string     `json:"inwarded_by"`
	InwardedAt        time.Time  `json:"inwarded_at"`
	InwardRemark      string     `json:"inward_remark,omitempty"`
	Floor             string     `json:"floor,omitempty"`
	Rack              string     `json:"rack,omitempty"`
	AssignedToFloorAt *time.Time `json:"assigned_to_floor_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
}

// InwardListResponse página de registros de bodega.
type InwardListResponse struct {
	Items []InwardResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
