package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Paqueteria-api/internal/application/dto"
	"github.com/jhoicas/Paqueteria-api/internal/domain"
)

func doBatch(t *testing.T, result *dto.BatchResult, err error) *http.Response {
	t.Helper()
	h := &WarehouseHandler{}
	app := fiber.New()
	app.Post("/lote", func(c *fiber.Ctx) error {
		return h.batchJSON(c, result, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodPost, "/lote", nil), -1)
	require.NoError(t, reqErr)
	return resp
}

// Un lote con cero éxitos responde el status del error de dominio pero debe
// conservar los motivos por ítem que acumuló el usecase.
func TestBatchJSON_FalloTotalConservaMotivosPorItem(t *testing.T) {
	result := &dto.BatchResult{
		Failed: []dto.BatchError{
			{ID: "linea-1", Reason: "la ubicación de entrega no es una bodega"},
			{ID: "linea-2", Reason: "la línea ya fue ingresada a bodega"},
		},
	}
	resp := doBatch(t, result, domain.ErrInvalidInput)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body dto.CommandResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, result.Summary(), body.Message,
		"el mensaje debe resumir procesados/fallidos")
	require.Len(t, body.Errors, 2)
	assert.Contains(t, body.Errors[0], "la ubicación de entrega no es una bodega")
	assert.Contains(t, body.Errors[1], "la línea ya fue ingresada a bodega")
}

// Un lote con éxitos y fallos mezclados responde 200 con success=true y los
// fallos por ítem en errors.
func TestBatchJSON_ExitoParcialResponde200ConErrores(t *testing.T) {
	result := &dto.BatchResult{
		Succeeded: []string{"linea-1"},
		Failed:    []dto.BatchError{{ID: "linea-2", Reason: "la línea ya fue ingresada a bodega"}},
	}
	resp := doBatch(t, result, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.CommandResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Errors, 1)
	assert.Contains(t, body.Errors[0], "linea-2")
}

// Sin resultado (fallo previo a procesar el lote) se responde el ErrorResponse
// plano de errorJSON.
func TestBatchJSON_SinResultadoRespondeErrorPlano(t *testing.T) {
	resp := doBatch(t, nil, domain.ErrNoLocation)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "FORBIDDEN", body.Code)
}
