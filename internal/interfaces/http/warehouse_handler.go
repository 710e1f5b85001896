package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Paqueteria-api/internal/application/dto"
	"github.com/jhoicas/Paqueteria-api/internal/application/warehouse"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
)

// WarehouseHandler maneja el pipeline de bodega en tres etapas.
type WarehouseHandler struct {
	uc     *warehouse.UseCase
	actors actorLoader
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *warehouse.UseCase, actors actorLoader) *WarehouseHandler {
	return &WarehouseHandler{uc: uc, actors: actors}
}

// batchJSON responde un lote: 200 con CommandResult si hubo al menos un
// éxito. Un lote con cero éxitos responde el status del error de dominio
// pero conserva el CommandResult con los motivos por ítem acumulados.
func (h *WarehouseHandler) batchJSON(c *fiber.Ctx, result *dto.BatchResult, err error) error {
	if err != nil && (result == nil || !result.OK()) {
		if result == nil {
			return errorJSON(c, err)
		}
		status, _ := errorStatus(err)
		return c.Status(status).JSON(dto.CommandResult{
			Success: false,
			Message: result.Summary(),
			Data:    result,
			Errors:  result.ErrorStrings(),
		})
	}
	return c.JSON(dto.CommandResult{
		Success: true,
		Message: result.Summary(),
		Data:    result,
		Errors:  result.ErrorStrings(),
	})
}

// Inward godoc
// @Summary      Etapa 1: ingresar líneas de bodega (traslado)
// @Description  Agrupa las líneas válidas por GRN de origen, acuña un GRN
//
//	nuevo en la ubicación del actor por cada grupo y renumera
//	ambos lados. Lote best-effort: los ítems inválidos se
//	reportan sin abortar al resto.
//
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InwardRequest  true  "line_ids, remark"
// @Success      200   {object}  dto.CommandResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/warehouse/inward [post]
func (h *WarehouseHandler) Inward(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	var in dto.InwardRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Inward(c.Context(), actor, in)
	return h.batchJSON(c, result, err)
}

// AssignToFloor godoc
// @Summary      Etapa 2: asignar piso y estante
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignFloorRequest  true  "inward_ids, floor, rack, remark"
// @Success      200   {object}  dto.CommandResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouse/floor-assign [post]
func (h *WarehouseHandler) AssignToFloor(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	var in dto.AssignFloorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.AssignToFloor(c.Context(), actor, in)
	return h.batchJSON(c, result, err)
}

// FloorDelivery godoc
// @Summary      Etapa 3: entrega en piso al receptor
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FloorDeliveryRequest  true  "inward_ids, remark"
// @Success      200   {object}  dto.CommandResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouse/floor-delivery [post]
func (h *WarehouseHandler) FloorDelivery(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	var in dto.FloorDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.FloorDelivery(c.Context(), actor, in)
	return h.batchJSON(c, result, err)
}

// ListInwards godoc
// @Summary      Tracking de registros de bodega por etapa
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Param        stage  query  string  true  "received | on_floor | delivered"
// @Success      200  {object}  dto.InwardListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouse/inwards [get]
func (h *WarehouseHandler) ListInwards(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.ListInwards(actor, RequestedLocation(c), entity.Stage(c.Query("stage")), pageQuery(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// ListPending godoc
// @Summary      GRNs de bodega con líneas pendientes de ingreso
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.GRNListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/warehouse/pending [get]
func (h *WarehouseHandler) ListPending(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.ListPendingInward(actor, RequestedLocation(c), pageQuery(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
