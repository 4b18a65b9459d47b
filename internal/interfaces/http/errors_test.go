package http

import (
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/domain"
)

// respondWith ejecuta respondError dentro de una app Fiber mínima y devuelve
// el estado y el cuerpo decodificado.
func respondWith(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/err", func(c *fiber.Ctx) error { return respondError(c, err) })

	resp, reqErr := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/err", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestRespondError_StockInsuficienteEs400ConFaltantes(t *testing.T) {
	status, body := respondWith(t, &domain.InsufficientStockError{Missing: []string{"harina", "queso"}})

	assert.Equal(t, stdhttp.StatusBadRequest, status,
		"la falta de stock se responde como petición inválida, no como conflicto")
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, []string{"harina", "queso"}, body.Missing)
}

func TestRespondError_SentinelStockInsuficienteEs400(t *testing.T) {
	status, body := respondWith(t, fmt.Errorf("salida: %w", domain.ErrInsufficientStock))

	assert.Equal(t, stdhttp.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
}

func TestRespondError_NoEncontradoEs404(t *testing.T) {
	status, body := respondWith(t, domain.ErrNotFound)

	assert.Equal(t, stdhttp.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestRespondError_DuplicadoEs409(t *testing.T) {
	status, body := respondWith(t, domain.ErrDuplicate)

	assert.Equal(t, stdhttp.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", body.Code)
}
