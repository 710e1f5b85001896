package otp

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
	"github.com/jhoicas/Paqueteria-api/internal/domain/repository"
)

// maxCodeAttempts reintentos de generación ante colisión de código vigente
// (índice único parcial sobre code WHERE valid).
const maxCodeAttempts = 5

// generateCode reemplazable en tests para forzar colisiones.
var generateCode = entity.GenerateOTPCode

// IssueForGRN emite el OTP de un GRN que aún no tiene uno. Falla con
// domain.ErrDuplicate si ya existe: los callers que quieran reemitir deben
// usar GetOrRegenerate. Pensada para ejecutarse dentro de la tx del caller.
func IssueForGRN(otpRepo repository.OTPRepository, grnID string, now time.Time) (*entity.OTP, error) {
	existing, err := otpRepo.GetByGRN(grnID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	row := &entity.OTP{ID: uuid.New().String(), GRNID: grnID, CreatedAt: now, Valid: true}
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}
		row.Code = code
		err = otpRepo.Create(row)
		if err == nil {
			return row, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, domain.ErrDuplicate
}

// GetOrRegenerate devuelve el OTP del GRN creándolo si no existe, o
// regenerándolo si existe: resetea Code y CreatedAt y fuerza Valid=true sobre
// la MISMA fila (no se conserva historial de códigos anteriores). Pensada
// para ejecutarse dentro de la tx del caller.
func GetOrRegenerate(otpRepo repository.OTPRepository, grnID string, now time.Time) (*entity.OTP, error) {
	existing, err := otpRepo.GetByGRN(grnID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return IssueForGRN(otpRepo, grnID, now)
	}

	existing.CreatedAt = now
	existing.Valid = true
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}
		existing.Code = code
		err = otpRepo.Update(existing)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, domain.ErrDuplicate
}
