package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/application/fulfillment"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// OrderHandler maneja la toma de órdenes y los borradores de cajero (protegido).
type OrderHandler struct {
	uc     *fulfillment.OrderUseCase
	drafts *fulfillment.DraftManager
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *fulfillment.OrderUseCase, drafts *fulfillment.DraftManager) *OrderHandler {
	return &OrderHandler{uc: uc, drafts: drafts}
}

// Create corre la saga de creación para una línea de orden.
// Sin stock suficiente responde 409 con la lista completa de faltantes y no
// registra nada.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateOrder(c.Context(), fulfillment.CreateOrderInput{
		OrderID:      in.OrderID,
		PizzaID:      in.PizzaID,
		PizzaName:    in.PizzaName,
		Category:     in.Category,
		Size:         in.Size,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		TotalPrice:   in.TotalPrice,
		RecipeID:     in.RecipeID,
		DeliveryMode: in.DeliveryMode,
		Address:      in.Address,
		CustomerName: in.CustomerName,
		Cashier:      GetActor(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToOrderItemResponse(item))
}

// List devuelve líneas de orden paginadas.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListOrders(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOrderItemResponses(list))
}

// GetByOrderID devuelve todas las líneas de una orden.
func (h *OrderHandler) GetByOrderID(c *fiber.Ctx) error {
	items, err := h.uc.GetOrder(c.Params("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOrderItemResponses(items))
}

// UpdateStatus avanza el ciclo de entrega de todas las líneas de la orden.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Params("orderId"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}

// OpenDraft abre una orden borrador nueva.
func (h *OrderHandler) OpenDraft(c *fiber.Ctx) error {
	draft := h.drafts.Open()
	return c.Status(fiber.StatusCreated).JSON(dto.ToDraftResponse(draft))
}

// GetDraft devuelve el estado de un borrador abierto.
func (h *OrderHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.drafts.Get(c.Params("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDraftResponse(draft))
}

// AddDraftItem agrega una línea a un borrador abierto.
func (h *OrderHandler) AddDraftItem(c *fiber.Ctx) error {
	var in dto.DraftItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := h.drafts.AddItem(c.Params("orderId"), entity.OrderItem{
		PizzaID:      in.PizzaID,
		PizzaName:    in.PizzaName,
		Category:     in.Category,
		Size:         in.Size,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		TotalPrice:   in.TotalPrice,
		RecipeID:     in.RecipeID,
		DeliveryMode: in.DeliveryMode,
		Address:      in.Address,
		CustomerName: in.CustomerName,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDraftResponse(draft))
}

// SubmitDraft finaliza el borrador y corre la saga para cada línea.
// El borrador deja de existir aunque alguna línea falle: las ya creadas se
// devuelven junto al error.
func (h *OrderHandler) SubmitDraft(c *fiber.Ctx) error {
	draft, err := h.drafts.Take(c.Params("orderId"))
	if err != nil {
		return respondError(c, err)
	}
	created, err := h.uc.SubmitDraft(c.Context(), draft, GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id": draft.OrderID,
		"items":    dto.ToOrderItemResponses(created),
	})
}

// DiscardDraft descarta un borrador sin enviarlo.
func (h *OrderHandler) DiscardDraft(c *fiber.Ctx) error {
	if err := h.drafts.Discard(c.Params("orderId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "borrador descartado"})
}
