package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Paqueteria-api/internal/application/dto"
	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
	"github.com/jhoicas/Paqueteria-api/internal/domain/repository"
)

// errorStatus mapea la taxonomía de errores de dominio a (status HTTP, código).
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNoLines):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNoLocation):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrOTPExpired):
		return fiber.StatusGone, "OTP_EXPIRED"
	case errors.Is(err, domain.ErrAlreadyDelivered),
		errors.Is(err, domain.ErrAlreadyInwarded),
		errors.Is(err, domain.ErrAlreadyOnFloor),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrNotWarehouse),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrNotification):
		return fiber.StatusBadGateway, "NOTIFICATION"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// errorJSON traduce la taxonomía de errores de dominio a códigos HTTP.
func errorJSON(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// actorLoader carga el usuario autenticado desde el UserID del token.
type actorLoader struct {
	userRepo repository.UserRepository
}

// Load devuelve el actor o nil si el usuario del token ya no existe.
func (l actorLoader) Load(c *fiber.Ctx) (*entity.User, error) {
	userID := GetUserID(c)
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := l.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// pageQuery lee limit/offset del query string.
func pageQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
}
