package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
)

// StockHandler maneja las peticiones HTTP de lotes de stock (protegido).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Upsert carga un lote nuevo o reemplaza cantidad, umbral y vencimiento del
// lote existente (ingrediente, lote). No es un ajuste relativo.
func (h *StockHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.uc.UpsertBatch(inventory.UpsertBatchInput{
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		MinThreshold: in.MinThreshold,
		Lot:          in.Lot,
		ExpiryDate:   in.ExpiryDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "lote registrado", "id": batch.ID})
}

// List devuelve todos los lotes de ingredientes activos.
func (h *StockHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToStockItemResponses(list))
}

// ListByIngredient devuelve los lotes de un ingrediente.
func (h *StockHandler) ListByIngredient(c *fiber.Ctx) error {
	list, err := h.uc.ListByIngredient(c.Params("ingredienteId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToStockItemResponses(list))
}

// BelowThreshold devuelve los lotes en o bajo su umbral mínimo.
func (h *StockHandler) BelowThreshold(c *fiber.Ctx) error {
	list, err := h.uc.BelowThreshold()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToStockItemResponses(list))
}

// Alerts devuelve las alertas de reabastecimiento ordenadas por urgencia.
func (h *StockHandler) Alerts(c *fiber.Ctx) error {
	alerts, err := h.uc.LowStockAlerts()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(alerts), "alertas": alerts})
}
