package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/catalog"
	"github.com/jhoicas/pizzeria-api/internal/application/dto"
)

// IngredientHandler maneja las peticiones HTTP del catálogo de ingredientes (protegido).
type IngredientHandler struct {
	uc *catalog.IngredientUseCase
}

// NewIngredientHandler construye el handler.
func NewIngredientHandler(uc *catalog.IngredientUseCase) *IngredientHandler {
	return &IngredientHandler{uc: uc}
}

// Create registra un ingrediente nuevo.
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var in dto.IngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ing, err := h.uc.Create(catalog.IngredientInput{
		Name:          in.Name,
		Unit:          in.Unit,
		UnitCost:      in.UnitCost,
		Allergens:     in.Allergens,
		ShelfLifeDays: in.ShelfLifeDays,
		Supplier:      in.Supplier,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToIngredientResponse(ing))
}

// List devuelve los ingredientes activos.
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToIngredientResponses(list))
}

// GetByID devuelve un ingrediente por id.
func (h *IngredientHandler) GetByID(c *fiber.Ctx) error {
	ing, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToIngredientResponse(ing))
}

// Update modifica un ingrediente.
func (h *IngredientHandler) Update(c *fiber.Ctx) error {
	var in dto.IngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ing, err := h.uc.Update(c.Params("id"), catalog.IngredientInput{
		Name:          in.Name,
		Unit:          in.Unit,
		UnitCost:      in.UnitCost,
		Allergens:     in.Allergens,
		ShelfLifeDays: in.ShelfLifeDays,
		Supplier:      in.Supplier,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToIngredientResponse(ing))
}

// Deactivate baja lógica de un ingrediente. Responde 409 si todavía tiene
// stock o participa de recetas activas.
func (h *IngredientHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ingrediente desactivado"})
}
