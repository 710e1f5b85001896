package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Paqueteria-api/internal/application/dto"
	"github.com/jhoicas/Paqueteria-api/internal/application/otp"
)

// OTPHandler maneja el canje y reenvío de OTPs.
type OTPHandler struct {
	uc     *otp.UseCase
	actors actorLoader
}

// NewOTPHandler construye el handler.
func NewOTPHandler(uc *otp.UseCase, actors actorLoader) *OTPHandler {
	return &OTPHandler{uc: uc, actors: actors}
}

// Redeem godoc
// @Summary      Canjear un OTP
// @Description  Entrega de una vez todas las líneas pendientes del GRN del
//
//	código e invalida el OTP. El canje parcial no existe.
//
// @Tags         otp
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyOTPRequest  true  "code"
// @Success      200   {object}  dto.RedeemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      410   {object}  dto.ErrorResponse
// @Router       /api/otp/redeem [post]
func (h *OTPHandler) Redeem(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	var in dto.VerifyOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Redeem(c.Context(), actor, RequestedLocation(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}

// Resend godoc
// @Summary      Regenerar y reenviar el OTP de un GRN (solo admin)
// @Tags         otp
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del GRN"
// @Success      200  {object}  dto.ResendResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/grns/{id}/otp/resend [post]
func (h *OTPHandler) Resend(c *fiber.Ctx) error {
	actor, err := h.actors.Load(c)
	if err != nil {
		return errorJSON(c, err)
	}
	resp, err := h.uc.Resend(c.Context(), actor, RequestedLocation(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(resp)
}
