package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El middleware de Swagger hace panic en el arranque si el archivo estático
// no existe, por lo que docs/swagger.json debe ir versionado con el binario.
func TestSwaggerJSON_ExisteYEsValido(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "docs", "swagger.json"))
	require.NoError(t, err, "docs/swagger.json debe existir junto al repo")

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc), "el documento debe ser JSON válido")
	assert.Equal(t, "2.0", doc["swagger"])

	paths, ok := doc["paths"].(map[string]interface{})
	require.True(t, ok, "el documento debe declarar paths")
	for _, route := range []string{
		"/api/auth/login",
		"/api/grns",
		"/api/otp/redeem",
		"/api/warehouse/inward",
	} {
		assert.Contains(t, paths, route)
	}
}
