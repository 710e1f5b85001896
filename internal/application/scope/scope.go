// Package scope resuelve el filtro de ubicación efectivo de cada request.
// Reemplaza el estado de sesión "ubicación seleccionada": el handler calcula
// el filtro una sola vez y lo pasa explícitamente hacia abajo; ninguna capa
// lee estado ambiente.
package scope

import (
	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
)

// EffectiveLocation calcula la ubicación efectiva de consulta para el usuario.
// Los admins pueden seleccionar cualquier ubicación (requestedID) o ninguna
// (cadena vacía = sin filtro). El resto de usuarios queda anclado a su propia
// ubicación: pedir otra es domain.ErrForbidden y no tener ninguna asignada es
// domain.ErrNoLocation.
func EffectiveLocation(user *entity.User, requestedID string) (string, error) {
	if user == nil {
		return "", domain.ErrUnauthorized
	}
	if user.IsStaff() {
		return requestedID, nil
	}
	if user.LocationID == "" {
		return "", domain.ErrNoLocation
	}
	if requestedID != "" && requestedID != user.LocationID {
		return "", domain.ErrForbidden
	}
	return user.LocationID, nil
}

// Authorize verifica que el usuario pueda operar sobre un recurso anclado a
// resourceLocationID, bajo la ubicación efectiva del request. Un admin sin
// ubicación seleccionada opera sobre cualquier recurso.
func Authorize(user *entity.User, requestedID, resourceLocationID string) error {
	effective, err := EffectiveLocation(user, requestedID)
	if err != nil {
		return err
	}
	if effective != "" && effective != resourceLocationID {
		return domain.ErrForbidden
	}
	return nil
}
