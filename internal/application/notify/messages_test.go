package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Paqueteria-api/internal/application/notify"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
)

func TestGRNCreatedBody_ManifiestoDeterminista(t *testing.T) {
	lines := []*entity.GRNLine{
		{LineNumber: 1, SenderName: "Acme SA", CourierName: entity.CourierBlueDart, ParcelType: entity.ParcelDocument},
		{LineNumber: 2, CourierName: entity.CourierDTDC, ParcelType: entity.ParcelSample},
	}

	body := notify.GRNCreatedBody("Juan Pérez", "Sede Centro", "grn-1", "123456", lines)

	assert.Contains(t, body, "Juan Pérez")
	assert.Contains(t, body, "Sede Centro")
	assert.Contains(t, body, "GRN: grn-1")
	assert.Contains(t, body, "OTP de recogida: 123456")
	assert.Contains(t, body, "Línea 1:")
	assert.Contains(t, body, "Remitente: Acme SA")
	assert.Contains(t, body, "Blue Dart")
	assert.Contains(t, body, "Línea 2:")
	assert.Contains(t, body, "Remitente: Desconocido", "remitente vacío se muestra como Desconocido")
	assert.Contains(t, body, "válido por 24 horas")

	// Determinismo: mismo input, mismo cuerpo.
	assert.Equal(t, body, notify.GRNCreatedBody("Juan Pérez", "Sede Centro", "grn-1", "123456", lines))
}

func TestTransferBody_IncluyeOrigenYDestino(t *testing.T) {
	lines := []*entity.GRNLine{
		{LineNumber: 1, SenderName: "Acme SA", CourierName: entity.CourierPost, ParcelType: entity.ParcelMedicine},
	}
	body := notify.TransferBody("Ana", "Bodega Norte", "Sede Centro", "grn-9", "654321", lines)

	assert.Contains(t, body, "Bodega Norte")
	assert.Contains(t, body, "Sede Centro")
	assert.Contains(t, body, "OTP de recogida: 654321")
}

func TestOTPResendBody_AvisaInvalidacion(t *testing.T) {
	body := notify.OTPResendBody("Ana", "grn-9", "999999")
	assert.Contains(t, body, "999999")
	assert.Contains(t, body, "El código anterior queda invalidado")
}
