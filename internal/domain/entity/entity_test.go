package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
)

func TestGenerateOTPCode_SeisDigitosNumericos(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := entity.GenerateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, entity.OTPDigits, "el código debe tener 6 dígitos")
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "el código debe ser numérico: %s", code)
		}
	}
}

func TestOTP_IsExpired_Ventana24h(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	otp := &entity.OTP{Code: "123456", CreatedAt: created, Valid: true}

	assert.False(t, otp.IsExpired(created.Add(23*time.Hour)), "dentro de la ventana no expira")
	assert.False(t, otp.IsExpired(created.Add(24*time.Hour)), "el límite exacto aún es válido")
	assert.True(t, otp.IsExpired(created.Add(24*time.Hour+time.Second)), "pasada la ventana expira")
}

func TestWarehouseInward_Stage_Derivada(t *testing.T) {
	w := &entity.WarehouseInward{GRNLineID: "l1", InwardedBy: "u1", InwardedAt: time.Now()}
	assert.Equal(t, entity.StageReceived, w.Stage())
	assert.False(t, w.IsOnFloor())

	w.Floor = "3"
	w.Rack = "B-12"
	assert.Equal(t, entity.StageOnFloor, w.Stage())
	assert.True(t, w.IsOnFloor())

	w.DeliveredToReceiver = true
	assert.Equal(t, entity.StageDelivered, w.Stage(), "delivered domina sobre on_floor")
}

func TestGRNLine_IsPlaceholder(t *testing.T) {
	vacia := &entity.GRNLine{}
	assert.True(t, vacia.IsPlaceholder())

	conCourier := &entity.GRNLine{CourierName: entity.CourierDTDC}
	assert.False(t, conCourier.IsPlaceholder(), "basta un campo obligatorio poblado")
}

func TestGRNTotals_Derivados(t *testing.T) {
	t.Run("entregado solo con todas las líneas con DN", func(t *testing.T) {
		assert.False(t, entity.GRNTotals{TotalLines: 0, DeliveredLines: 0}.IsDelivered(),
			"un GRN sin líneas no se considera entregado")
		assert.False(t, entity.GRNTotals{TotalLines: 2, DeliveredLines: 1}.IsDelivered())
		assert.True(t, entity.GRNTotals{TotalLines: 2, DeliveredLines: 2}.IsDelivered())
	})

	t.Run("estado de ingreso textual", func(t *testing.T) {
		assert.Nil(t, entity.GRNTotals{TotalLines: 3}.InwardStatus(false),
			"los GRN fuera de bodega no tienen estado de ingreso")

		s := entity.GRNTotals{TotalLines: 3, InwardedLines: 0}.InwardStatus(true)
		require.NotNil(t, s)
		assert.Equal(t, "Pendiente de Ingreso", *s)

		s = entity.GRNTotals{TotalLines: 3, InwardedLines: 2}.InwardStatus(true)
		require.NotNil(t, s)
		assert.Equal(t, "Ingreso Parcial (2/3)", *s)

		s = entity.GRNTotals{TotalLines: 3, InwardedLines: 3}.InwardStatus(true)
		require.NotNil(t, s)
		assert.Equal(t, "Ingreso Completo", *s)
	})
}

func TestCatalogos_CourierYParcel(t *testing.T) {
	assert.True(t, entity.ValidCourier(entity.CourierBlueDart))
	assert.False(t, entity.ValidCourier("paloma_mensajera"))
	assert.True(t, entity.ValidParcelType(entity.ParcelMedicine))
	assert.False(t, entity.ValidParcelType("elefante"))
	assert.Equal(t, "Blue Dart", entity.CourierDisplay(entity.CourierBlueDart))
	assert.Equal(t, "Documento", entity.ParcelTypeDisplay(entity.ParcelDocument))
}
