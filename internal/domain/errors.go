package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrNoLines            = errors.New("se requiere al menos una línea de paquete")
	ErrOTPExpired         = errors.New("el OTP ha expirado")
	ErrAlreadyDelivered   = errors.New("el paquete ya fue entregado")
	ErrAlreadyInwarded    = errors.New("la línea ya fue ingresada a bodega")
	ErrAlreadyOnFloor     = errors.New("el registro ya tiene piso asignado")
	ErrNoLocation         = errors.New("el usuario no tiene ubicación asignada")
	ErrNotWarehouse       = errors.New("la ubicación de entrega no es una bodega")
	ErrNotification       = errors.New("fallo el envío de la notificación")
)
