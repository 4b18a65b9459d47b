package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/catalog"
	"github.com/jhoicas/pizzeria-api/internal/application/dto"
)

// RecipeHandler maneja las peticiones HTTP del catálogo de recetas (protegido).
type RecipeHandler struct {
	uc *catalog.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *catalog.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

func toRecipeInput(in dto.RecipeRequest) catalog.RecipeInput {
	input := catalog.RecipeInput{
		Name:              in.Name,
		PizzaType:         in.PizzaType,
		Size:              in.Size,
		BasePrice:         in.BasePrice,
		SpoilageTolerance: in.SpoilageTolerance,
	}
	if in.Ingredients != nil {
		input.Ingredients = make([]catalog.RecipeIngredientInput, 0, len(in.Ingredients))
		for _, ri := range in.Ingredients {
			input.Ingredients = append(input.Ingredients, catalog.RecipeIngredientInput{
				IngredientID: ri.IngredientID,
				Required:     ri.Required,
			})
		}
	}
	return input
}

// Create registra una receta nueva. Responde 409 si ya existe una receta
// activa con el mismo tipo y tamaño.
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	var in dto.RecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	recipe, err := h.uc.Create(toRecipeInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToRecipeResponse(recipe))
}

// List devuelve las recetas activas con su costo derivado.
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToRecipeResponses(list))
}

// GetByID devuelve una receta por id.
func (h *RecipeHandler) GetByID(c *fiber.Ctx) error {
	recipe, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToRecipeResponse(recipe))
}

// Cost devuelve el desglose de costo, precio y margen de la receta.
func (h *RecipeHandler) Cost(c *fiber.Ctx) error {
	breakdown, err := h.uc.Cost(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(breakdown)
}

// Update modifica una receta. Un body con lista de ingredientes la reemplaza completa.
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	var in dto.RecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	recipe, err := h.uc.Update(c.Params("id"), toRecipeInput(in))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToRecipeResponse(recipe))
}

// Deactivate baja lógica incondicional de la receta.
func (h *RecipeHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "receta desactivada"})
}
