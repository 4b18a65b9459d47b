package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/availability"
	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
)

// AvailabilityHandler maneja las verificaciones de stock y la preparación de
// recetas (protegido).
type AvailabilityHandler struct {
	checker  *availability.UseCase
	preparer *inventory.PrepareUseCase
}

// NewAvailabilityHandler construye el handler.
func NewAvailabilityHandler(checker *availability.UseCase, preparer *inventory.PrepareUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{checker: checker, preparer: preparer}
}

// RankRecipes particiona el catálogo activo en disponibles y no disponibles.
func (h *AvailabilityHandler) RankRecipes(c *fiber.Ctx) error {
	ranking, err := h.checker.RankRecipes()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ranking)
}

// CheckRecipe verifica el stock de una receta escalado por cantidad.
// La respuesta detalla cada ingrediente; no descuenta nada.
func (h *AvailabilityHandler) CheckRecipe(c *fiber.Ctx) error {
	qty := c.QueryInt("cantidad", 1)
	check, err := h.checker.CheckRecipe(c.Params("recetaId"), qty)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(check)
}

// prepareRequest body para preparar una receta.
type prepareRequest struct {
	RecipeID  string `json:"receta_id"`
	Quantity  int    `json:"cantidad"`
	Reference string `json:"referencia"`
}

// Prepare descuenta del inventario los ingredientes de la receta.
// Responde 409 con la lista de faltantes si el stock no alcanza.
func (h *AvailabilityHandler) Prepare(c *fiber.Ctx) error {
	var in prepareRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RecipeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "receta_id es obligatorio"})
	}
	result, err := h.preparer.PrepareRecipe(c.Context(), in.RecipeID, in.Quantity, in.Reference, GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
