package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// RegisterEntry registra una entrada de stock. El actor sale del token.
func (h *MovementHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RegisterEntry(c.Context(), inventory.EntryInput{
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		Reference:    in.Reference,
		Actor:        GetActor(c),
		Lot:          in.Lot,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// RegisterExit registra una salida de stock con descuento FEFO todo-o-nada.
func (h *MovementHandler) RegisterExit(c *fiber.Ctx) error {
	var in dto.ExitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, lots, err := h.uc.RegisterExit(c.Context(), inventory.ExitInput{
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		Reference:    in.Reference,
		Actor:        GetActor(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExitResponse{
		Movement: dto.ToMovementResponse(mov),
		Lots:     lots,
	})
}

// List devuelve movimientos filtrados por ingrediente, tipo y rango de fechas.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		IngredientID: c.Query("ingrediente_id"),
		Type:         c.Query("tipo"),
		Limit:        c.QueryInt("limit"),
	}
	if v := c.Query("desde"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe ser RFC3339"})
		}
		filter.From = &t
	}
	if v := c.Query("hasta"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe ser RFC3339"})
		}
		filter.To = &t
	}
	list, err := h.uc.ListMovements(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponses(list))
}

// Summarize agrega entradas y salidas por ingrediente en un período.
func (h *MovementHandler) Summarize(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("fecha_inicio"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_inicio debe ser RFC3339"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("fecha_fin"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_fin debe ser RFC3339"})
	}
	summary, err := h.uc.Summarize(from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"desde": from, "hasta": to, "resumen": summary})
}
