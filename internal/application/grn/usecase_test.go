package grn_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Paqueteria-api/internal/application/dto"
	"github.com/jhoicas/Paqueteria-api/internal/application/grn"
	"github.com/jhoicas/Paqueteria-api/internal/domain"
	"github.com/jhoicas/Paqueteria-api/internal/domain/entity"
	"github.com/jhoicas/Paqueteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Paqueteria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: almacén en memoria con un punto de recogida, una bodega, un
// operador y un receptor.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memory.Store
	notifier  *memory.RecorderNotifier
	uc        *grn.UseCase
	pickup    *entity.Location
	warehouse *entity.Location
	operador  *entity.User
	receiver  *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	notifier := &memory.RecorderNotifier{}

	f := &fixture{
		store:    store,
		notifier: notifier,
		uc: grn.NewUseCase(
			store, store.Users(), store.Locations(), store.GRNs(),
			store.Lines(), store.DNs(), store.Inwards(), notifier, logger.Nop(),
		),
	}

	f.pickup = &entity.Location{ID: uuid.New().String(), Name: "Sede Centro", CreatedAt: time.Now()}
	f.warehouse = &entity.Location{ID: uuid.New().String(), Name: "Bodega Norte", IsWarehouse: true, CreatedAt: time.Now()}
	require.NoError(t, store.Locations().Create(f.pickup))
	require.NoError(t, store.Locations().Create(f.warehouse))

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
	return f
}

func lineInput(sender, courier, parcelType string) dto.LineInput {
	return dto.LineInput{SenderName: sender, Phone: "3001234567", CourierName: courier, ParcelType: parcelType}
}

func (f *fixture) createRequest(locationID string, lines ...dto.LineInput) dto.CreateGRNRequest {
	return dto.CreateGRNRequest{
		ReceiverID:         f.receiver.ID,
		DeliveryLocationID: locationID,
		Place:              "Recepción principal",
		Lines:              lines,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NumeracionDensaYNotificacion(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Create(context.Background(), f.operador, f.createRequest(f.pickup.ID,
		lineInput("Acme SA", entity.CourierBlueDart, entity.ParcelDocument),
		dto.LineInput{}, // placeholder: se descarta sin error
		lineInput("Distribuidora Sur", entity.CourierDTDC, entity.ParcelSample),
	))
	require.NoError(t, err)

	require.Len(t, resp.Lines, 2, "los placeholders no cuentan como líneas")
	assert.Equal(t, 1, resp.Lines[0].LineNumber)
	assert.Equal(t, 2, resp.Lines[1].LineNumber)
	assert.Equal(t, 2, resp.TotalLines)
	assert.False(t, resp.IsDelivered)

	// OTP emitido y enviado al receptor.
	otp, err := f.store.OTPs().GetByGRN(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, otp, "un GRN de punto de recogida nace con OTP")
	assert.True(t, otp.Valid)

	require.Len(t, f.notifier.Sent, 1)
	assert.Equal(t, f.receiver.Email, f.notifier.Sent[0].To)
	assert.Contains(t, f.notifier.Sent[0].Body, otp.Code)
	assert.Contains(t, f.notifier.Sent[0].Body, "Acme SA")
}

func TestCreate_SoloPlaceholders(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), f.operador, f.createRequest(f.pickup.ID,
		dto.LineInput{}, dto.LineInput{},
	))
	require.ErrorIs(t, err, domain.ErrNoLines)

	list, err := f.uc.List(f.operador, "", dto.ListGRNsRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "un GRN sin líneas reales no llega a existir")
}

func TestCreate_CourierInvalido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), f.operador, f.createRequest(f.pickup.ID,
		lineInput("Acme SA", "courier_fantasma", entity.ParcelDocument),
	))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_EnBodegaNoEmiteOTP(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Create(context.Background(), f.operador, f.createRequest(f.warehouse.ID,
		lineInput("Acme SA", entity.CourierPost, entity.ParcelMedicine),
	))
	require.NoError(t, err)

	otp, err := f.store.OTPs().GetByGRN(resp.ID)
	require.NoError(t, err)
	assert.Nil(t, otp, "los GRN de bodega no manejan OTP")
	assert.Empty(t, f.notifier.Sent, "el traslado posterior es quien notifica")
	require.NotNil(t, resp.InwardStatus)
	assert.Equal(t, "Pendiente de Ingreso", *resp.InwardStatus)
}

func TestCreate_FalloDeCorreoRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.notifier.FailWith = errors.New("ses: throttled")

	_, err := f.uc.Create(context.Background(), f.operador, f.createRequest(f.pickup.ID,
		lineInput("Acme SA", entity.CourierBlueDart, entity.ParcelDocument),
	))
	require.ErrorIs(t, err, domain.ErrNotification)

	// Nada persiste: ni GRN, ni líneas, ni OTP.
	grns, listErr := f.uc.List(f.operador, "", dto.ListGRNsRequest{})
	require.NoError(t, listErr)
	assert.Empty(t, grns.Items, "la creación es todo-o-nada incluida la notificación")
}

func TestCreate_ReceptorInexistente(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest(f.pickup.ID, lineInput("Acme SA", entity.CourierBlueDart, entity.ParcelDocument))
	req.ReceiverID = uuid.New().String()
	_, err := f.uc.Create(context.Background(), f.operador, req)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RechazaConEntregas(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Create(context.Background(), f.operador, f.createRequest(f.pickup.ID,
		lineInput("Acme SA", entity.CourierBlueDart, entity.ParcelDocument),
	))
	require.NoError(t, err)

	// Se sella un DN sobre la primera línea.
	require.NoError(t, f.store.DNs().Create(&entity.DN{
		ID: uuid.New().String(), GRNLineID: resp.Lines[0].ID, CreatedAt: time.Now(),
	}))

	err = f.uc.Delete(context.Background(), f.operador, "", resp.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyDelivered, "un GRN con DN no se borra")
}

func TestDelete_CascadaSinEntregas(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Create(context.Background(), f.operador, f.createRequest(f.pickup.ID,
		lineInput("Acme SA", entity.CourierBlueDart, entity.ParcelDocument),
	))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), f.operador, "", resp.ID))

	_, err = f.uc.GetByID(f.operador, "", resp.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	otp, err := f.store.OTPs().GetByGRN(resp.ID)
	require.NoError(t, err)
	assert.Nil(t, otp, "el OTP cae en cascada con el GRN")
}

func TestDelete_OtraUbicacionProhibida(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Create(context.Background(), f.operador, f.createRequest(f.warehouse.ID,
		lineInput("Acme SA", entity.CourierBlueDart, entity.ParcelDocument),
	))
	require.NoError(t, err)

	// El operador está anclado al punto de recogida, no a la bodega.
	err = f.uc.Delete(context.Background(), f.operador, "", resp.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltroPorEstadoYCatalogo(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.Create(context.Background(), f.operador, f.createRequest(f.pickup.ID,
		lineInput("Acme SA", entity.CourierBlueDart, entity.ParcelDocument),
	))
	require.NoError(t, err)
	second, err := f.uc.Create(context.Background(), f.operador, f.createRequest(f.pickup.ID,
		lineInput("Distribuidora Sur", entity.CourierDTDC, entity.ParcelSample),
	))
	require.NoError(t, err)

	// El segundo GRN queda entregado.
	require.NoError(t, f.store.DNs().Create(&entity.DN{
		ID: uuid.New().String(), GRNLineID: second.Lines[0].ID, CreatedAt: time.Now(),
	}))

	delivered, err := f.uc.List(f.operador, "", dto.ListGRNsRequest{Status: "delivered"})
	require.NoError(t, err)
	require.Len(t, delivered.Items, 1)
	assert.Equal(t, second.ID, delivered.Items[0].ID)

	pending, err := f.uc.List(f.operador, "", dto.ListGRNsRequest{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, first.ID, pending.Items[0].ID)

	byCourier, err := f.uc.List(f.operador, "", dto.ListGRNsRequest{Courier: entity.CourierBlueDart})
	require.NoError(t, err)
	require.Len(t, byCourier.Items, 1)
	assert.Equal(t, first.ID, byCourier.Items[0].ID)

	// Un valor de filtro fuera de catálogo se ignora en vez de fallar.
	all, err := f.uc.List(f.operador, "", dto.ListGRNsRequest{Courier: "no_existe"})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestList_OperadorNoElijeOtraUbicacion(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.List(f.operador, f.warehouse.ID, dto.ListGRNsRequest{})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetByID_EstadoPorLinea(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Create(context.Background(), f.operador, f.createRequest(f.pickup.ID,
		lineInput("Acme SA", entity.CourierBlueDart, entity.ParcelDocument),
		lineInput("Distribuidora Sur", entity.CourierDTDC, entity.ParcelSample),
	))
	require.NoError(t, err)

	require.NoError(t, f.store.DNs().Create(&entity.DN{
		ID: uuid.New().String(), GRNLineID: resp.Lines[0].ID, CreatedAt: time.Now(),
	}))

	got, err := f.uc.GetByID(f.operador, "", resp.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
	assert.True(t, got.Lines[0].Delivered)
	assert.False(t, got.Lines[1].Delivered)
	assert.Equal(t, 1, got.DeliveredLines)
	assert.False(t, got.IsDelivered, "queda una línea pendiente")
}
