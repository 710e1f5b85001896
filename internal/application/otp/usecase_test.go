package otp_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Paqueteria-api/internal/application/dto"
	"github.com/jhoicas/Paqueteria-api/internal/application/otp"
	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
	"github.com/jhoicas/Paqueteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Paqueteria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un GRN de punto de recogida con dos líneas y OTP vigente.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memory.Store
	notifier *memory.RecorderNotifier
	uc       *otp.UseCase
	pickup   *entity.Location
	operador *entity.User
	receiver *entity.User
	grn      *entity.GRN
	lines    []*entity.GRNLine
	otpRow   *entity.OTP
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	notifier := &memory.RecorderNotifier{}
	f := &fixture{
		store:    store,
		notifier: notifier,
		uc:       otp.NewUseCase(store, store.Users(), store.Locations(), notifier, logger.Nop()),
	}

	f.pickup = &entity.Location{ID: uuid.New().String(), Name: "Sede Centro", CreatedAt: time.Now()}
	require.NoError(t, store.Locations().Create(f.pickup))

	f.operador = &entity.User{
		ID: uuid.New().String(), Email: "operador@test.local", Name: "Operador Uno",
		Role: entity.RoleOperador, LocationID: f.pickup.ID, Status: "active",
	}
	f.receiver = &entity.User{
		ID: uuid.New().String(), Email: "receptor@test.local", Name: "Juan Pérez",
		Role: entity.RoleOperador, LocationID: f.pickup.ID, Status: "active",
	}
	require.NoError(t, store.Users().Create(f.operador))
	require.NoError(t, store.Users().Create(f.receiver))

	now := time.Now()
	f.grn = &entity.GRN{
		ID: uuid.New().String(), ReceiverID: f.receiver.ID,
		DeliveryLocationID: f.pickup.ID, CreatedBy: f.operador.ID, CreatedAt: now,
	}
	require.NoError(t, store.GRNs().Create(f.grn))
	for i, sender := range []string{"Acme SA", "Distribuidora Sur"} {
		line := &entity.GRNLine{
			ID: uuid.New().String(), GRNID: f.grn.ID, LineNumber: i + 1,
			SenderName: sender, CourierName: entity.CourierBlueDart,
			ParcelType: entity.ParcelDocument, CreatedAt: now,
		}
		require.NoError(t, store.Lines().Create(line))
		f.lines = append(f.lines, line)
	}

	f.otpRow = &entity.OTP{
		ID: uuid.New().String(), Code: "123456", GRNID: f.grn.ID,
		CreatedAt: now, Valid: true,
	}
	require.NoError(t, store.OTPs().Create(f.otpRow))
	return f
}

func (f *fixture) redeem(code string) (*dto.RedeemResponse, error) {
	return f.uc.Redeem(context.Background(), f.operador, "", dto.VerifyOTPRequest{Code: code})
}

// ──────────────────────────────────────────────────────────────────────────────
// Redeem
// ──────────────────────────────────────────────────────────────────────────────

func TestRedeem_EntregaTodasLasLineas(t *testing.T) {
	f := newFixture(t)

	resp, err := f.redeem("123456")
	require.NoError(t, err)
	assert.Equal(t, f.grn.ID, resp.GRNID)
	require.Len(t, resp.DeliveredLines, 2, "el canje entrega todas las líneas pendientes de una vez")

	for _, line := range f.lines {
		dn, err := f.store.DNs().GetByLine(line.ID)
		require.NoError(t, err)
		require.NotNil(t, dn)
		assert.False(t, dn.FromWarehouseInward)
		assert.Contains(t, dn.Remark, f.operador.Name)
	}

	row, err := f.store.OTPs().GetByGRN(f.grn.ID)
	require.NoError(t, err)
	assert.False(t, row.Valid, "el OTP queda invalidado tras el canje")
}

func TestRedeem_CodigoIncorrecto(t *testing.T) {
	f := newFixture(t)

	_, err := f.redeem("654321")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.redeem("12ab56")
	require.ErrorIs(t, err, domain.ErrInvalidInput, "un código con letras ni siquiera consulta")
}

func TestRedeem_SegundoCanjeFalla(t *testing.T) {
	f := newFixture(t)

	_, err := f.redeem("123456")
	require.NoError(t, err)

	_, err = f.redeem("123456")
	require.ErrorIs(t, err, domain.ErrNotFound, "un OTP canjeado es indistinguible de uno inexistente")
}

func TestRedeem_Expirado(t *testing.T) {
	f := newFixture(t)

	f.otpRow.CreatedAt = time.Now().Add(-25 * time.Hour)
	require.NoError(t, f.store.OTPs().Update(f.otpRow))

	_, err := f.redeem("123456")
	require.ErrorIs(t, err, domain.ErrOTPExpired)

	dn, err := f.store.DNs().GetByLine(f.lines[0].ID)
	require.NoError(t, err)
	assert.Nil(t, dn, "un canje expirado no entrega nada")
	row, err := f.store.OTPs().GetByGRN(f.grn.ID)
	require.NoError(t, err)
	assert.True(t, row.Valid, "la expiración es perezosa: la fila no se toca")
}

func TestRedeem_SoloLineasHermanasPendientes(t *testing.T) {
	f := newFixture(t)

	// La primera línea ya fue entregada en piso de bodega.
	require.NoError(t, f.store.DNs().Create(&entity.DN{
		ID: uuid.New().String(), GRNLineID: f.lines[0].ID,
		CreatedAt: time.Now(), FromWarehouseInward: true,
	}))

	resp, err := f.redeem("123456")
	require.NoError(t, err)
	require.Len(t, resp.DeliveredLines, 1, "solo la línea hermana pendiente se entrega")
	assert.Equal(t, f.lines[1].ID, resp.DeliveredLines[0].ID)
}

func TestRedeem_TodoEntregadoDejaOTPIntacto(t *testing.T) {
	f := newFixture(t)

	for _, line := range f.lines {
		require.NoError(t, f.store.DNs().Create(&entity.DN{
			ID: uuid.New().String(), GRNLineID: line.ID, CreatedAt: time.Now(),
		}))
	}

	_, err := f.redeem("123456")
	require.ErrorIs(t, err, domain.ErrAlreadyDelivered)

	row, err := f.store.OTPs().GetByGRN(f.grn.ID)
	require.NoError(t, err)
	assert.True(t, row.Valid, "el canje fallido revierte la invalidación")
}

func TestRedeem_OtraUbicacionProhibida(t *testing.T) {
	f := newFixture(t)

	otra := &entity.Location{ID: uuid.New().String(), Name: "Sede Sur", CreatedAt: time.Now()}
	require.NoError(t, f.store.Locations().Create(otra))
	ajeno := &entity.User{
		ID: uuid.New().String(), Email: "ajeno@test.local", Name: "Operador Ajeno",
		Role: entity.RoleOperador, LocationID: otra.ID, Status: "active",
	}
	require.NoError(t, f.store.Users().Create(ajeno))

	_, err := f.uc.Redeem(context.Background(), ajeno, "", dto.VerifyOTPRequest{Code: "123456"})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resend
// ──────────────────────────────────────────────────────────────────────────────

func TestResend_RegeneraSobreLaMismaFila(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Resend(context.Background(), f.operador, "", f.grn.ID)
	require.NoError(t, err)
	assert.Equal(t, f.receiver.Email, resp.SentTo)

	row, err := f.store.OTPs().GetByGRN(f.grn.ID)
	require.NoError(t, err)
	assert.Equal(t, f.otpRow.ID, row.ID, "se reutiliza la fila, no se acumula historial")
	assert.NotEqual(t, "123456", row.Code, "el código cambia")
	assert.True(t, row.Valid)

	// El código anterior deja de servir y el nuevo sí canjea.
	_, err = f.redeem("123456")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.redeem(row.Code)
	require.NoError(t, err)

	require.Len(t, f.notifier.Sent, 1)
	assert.Contains(t, f.notifier.Sent[0].Body, row.Code)
}

func TestResend_FalloDeCorreoConservaElCodigoAnterior(t *testing.T) {
	f := newFixture(t)
	f.notifier.FailWith = errors.New("ses: mailbox unavailable")

	_, err := f.uc.Resend(context.Background(), f.operador, "", f.grn.ID)
	require.ErrorIs(t, err, domain.ErrNotification)

	row, err := f.store.OTPs().GetByGRN(f.grn.ID)
	require.NoError(t, err)
	assert.Equal(t, "123456", row.Code, "sin correo no hay regeneración")
	assert.True(t, row.Valid)
}

func TestResend_GRNEntregado(t *testing.T) {
	f := newFixture(t)

	_, err := f.redeem("123456")
	require.NoError(t, err)

	_, err = f.uc.Resend(context.Background(), f.operador, "", f.grn.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyDelivered)
}

func TestResend_GRNDeBodega(t *testing.T) {
	f := newFixture(t)

	bodega := &entity.Location{ID: uuid.New().String(), Name: "Bodega Norte", IsWarehouse: true, CreatedAt: time.Now()}
	require.NoError(t, f.store.Locations().Create(bodega))
	grnBodega := &entity.GRN{
		ID: uuid.New().String(), ReceiverID: f.receiver.ID,
		DeliveryLocationID: bodega.ID, CreatedBy: f.operador.ID, CreatedAt: time.Now(),
	}
	require.NoError(t, f.store.GRNs().Create(grnBodega))
	require.NoError(t, f.store.Lines().Create(&entity.GRNLine{
		ID: uuid.New().String(), GRNID: grnBodega.ID, LineNumber: 1,
		SenderName: "Acme SA", CourierName: entity.CourierPost,
		ParcelType: entity.ParcelDocument, CreatedAt: time.Now(),
	}))

	admin := &entity.User{
		ID: uuid.New().String(), Email: "admin@test.local", Name: "Admin",
		Role: entity.RoleAdmin, Status: "active",
	}
	require.NoError(t, f.store.Users().Create(admin))

	_, err := f.uc.Resend(context.Background(), admin, "", grnBodega.ID)
	require.ErrorIs(t, err, domain.ErrConflict, "los GRN de bodega no manejan OTP")
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión
// ──────────────────────────────────────────────────────────────────────────────

func TestIssueForGRN_RechazaSegundaEmision(t *testing.T) {
	f := newFixture(t)

	_, err := otp.IssueForGRN(f.store.OTPs(), f.grn.ID, time.Now())
	require.ErrorIs(t, err, domain.ErrDuplicate, "un GRN tiene a lo sumo un OTP")
}

func TestGetOrRegenerate_CreaSiNoExiste(t *testing.T) {
	f := newFixture(t)

	otro := &entity.GRN{
		ID: uuid.New().String(), ReceiverID: f.receiver.ID,
		DeliveryLocationID: f.pickup.ID, CreatedBy: f.operador.ID, CreatedAt: time.Now(),
	}
	require.NoError(t, f.store.GRNs().Create(otro))

	row, err := otp.GetOrRegenerate(f.store.OTPs(), otro.ID, time.Now())
	require.NoError(t, err)
	assert.Len(t, row.Code, entity.OTPDigits)
	assert.True(t, row.Valid)

	again, err := otp.GetOrRegenerate(f.store.OTPs(), otro.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, row.ID, again.ID)
	assert.NotEqual(t, row.Code, again.Code)
}
