package repository

import "github.com/jhoicas/Paqueteria-api/internal/domain/entity"

// OTPRepository define el puerto de persistencia para OTP (uno a uno con GRN).
// La unicidad de códigos vigentes la garantiza un índice único parcial sobre
// (code) WHERE valid; Create y Update devuelven domain.ErrDuplicate en colisión.
type OTPRepository interface {
	Create(otp *entity.OTP) error
	GetByGRN(grnID string) (*entity.OTP, error)
	// GetValidByCode busca la única fila con code=code y valid=true.
	// Devuelve (nil, nil) si no existe.
	GetValidByCode(code string) (*entity.OTP, error)
	Update(otp *entity.OTP) error
}
