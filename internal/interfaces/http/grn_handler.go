package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Paqueteria-api/internal/application/dto"
	"github.com/jhoicas/Paqueteria-api/internal/application/grn"
)

// GRNHandler maneja el ciclo de vida de los GRN y el historial de entregas.
type GRNHandler struct {
	uc       *grn.UseCase
	manifest *grn.ManifestUseCase
	actors   actorLoader
}

// NewGRNHandler construye el handler.
func NewGRNHandler(uc *grn.UseCase, manifest *grn.ManifestUseCase, actors actorLoader) *GRNHandler {
	return &GRNHandler{uc: uc, manifest: manifest, actors: actors}
}

// Create godoc
// @Summary      Crear GRN con sus líneas
// @Description  Descarta las líneas placeholder, numera 1..N y, si la ubicación
//
//	no es bodega, emite el OTP y envía el manifiesto por correo en
//	la misma transacción.
//
// @Tags         grns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGRNRequest  true  "receiver_id, delivery_location_id, lines"
// @Success      201   {object}  dto.GRNResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/grns [post]
func (h *GRNHandler) Create(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	var in dto.CreateGRNRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(c.Context(), actor, in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar GRNs de la ubicación efectiva
// @Tags         grns
// @Security     Bearer
// @Produce      json
// @Param        X-Location-ID  header  string  false  "Ubicación solicitada (admins)"
// @Param        status       query  string  false  "delivered | pending"
// @Param        courier      query  string  false  "código de courier"
// @Param        parcel_type  query  string  false  "código de tipo de paquete"
// @Success      200  {object}  dto.GRNListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/grns [get]
func (h *GRNHandler) List(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	in := dto.ListGRNsRequest{
		Status:      c.Query("status"),
		Courier:     c.Query("courier"),
		ParcelType:  c.Query("parcel_type"),
		PageRequest: pageQuery(c),
	}
	resp, err := h.uc.List(actor, RequestedLocation(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// GetByID godoc
// @Summary      Detalle de un GRN con estado por línea
// @Tags         grns
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del GRN"
// @Success      200  {object}  dto.GRNResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/grns/{id} [get]
func (h *GRNHandler) GetByID(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.GetByID(actor, RequestedLocation(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Borrar un GRN sin entregas
// @Tags         grns
// @Security     Bearer
// @Param        id  path  string  true  "ID del GRN"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/grns/{id} [delete]
func (h *GRNHandler) Delete(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	if err := h.uc.Delete(c.Context(), actor, RequestedLocation(c), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Manifest godoc
// @Summary      Manifiesto PDF de un GRN
// @Tags         grns
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del GRN"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/grns/{id}/manifest.pdf [get]
func (h *GRNHandler) Manifest(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	pdfBytes, err := h.manifest.Generate(c.Context(), actor, RequestedLocation(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// ListDNs godoc
// @Summary      Historial de notas de entrega
// @Tags         dns
// @Security     Bearer
// @Produce      json
// @Param        X-Location-ID  header  string  false  "Ubicación solicitada (admins)"
// @Success      200  {object}  dto.DNListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dns [get]
func (h *GRNHandler) ListDNs(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.ListDNs(actor, RequestedLocation(c), pageQuery(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
