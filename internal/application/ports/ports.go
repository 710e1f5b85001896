package ports

import (
	"context"

	"github.com/jhoicas/Paqueteria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad de cada operación de
// cambio de estado (creación de GRN, canje de OTP, cada etapa de bodega).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		grnRepo repository.GRNRepository,
		lineRepo repository.LineRepository,
		otpRepo repository.OTPRepository,
		dnRepo repository.DNRepository,
		inwardRepo repository.WarehouseInwardRepository,
	) error) error
}

// Notifier es el sumidero de notificaciones (email). El contrato es
// al-menos-una-vez: el caller decide si un fallo aborta la operación
// (creación de GRN) o se degrada a advertencia (pipeline de bodega).
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
