package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// CreateOrderRequest body para crear una línea de orden.
type CreateOrderRequest struct {
	OrderID      string          `json:"order_id"`
	PizzaID      string          `json:"pizza_id"`
	PizzaName    string          `json:"nombre_pizza"`
	Category     string          `json:"categoria"`
	Size         string          `json:"tamano"`
	Quantity     int             `json:"cantidad"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	TotalPrice   decimal.Decimal `json:"precio_total"`
	RecipeID     string          `json:"receta_id"`
	DeliveryMode string          `json:"modo_entrega"`
	Address      string          `json:"direccion"`
	CustomerName string          `json:"nombre_cliente"`
}

// UpdateOrderStatusRequest body para avanzar el estado de entrega.
type UpdateOrderStatusRequest struct {
	Status string `json:"estado"`
}

// OrderItemResponse representación pública de una línea de orden.
type OrderItemResponse struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	PizzaID      string          `json:"pizza_id,omitempty"`
	PizzaName    string          `json:"nombre_pizza,omitempty"`
	Category     string          `json:"categoria,omitempty"`
	Size         string          `json:"tamano"`
	Quantity     int             `json:"cantidad"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	TotalPrice   decimal.Decimal `json:"precio_total"`
	RecipeID     string          `json:"receta_id,omitempty"`
	DeliveryMode string          `json:"modo_entrega"`
	Address      string          `json:"direccion,omitempty"`
	CustomerName string          `json:"nombre_cliente,omitempty"`
	Cashier      string          `json:"cajero"`
	Status       string          `json:"estado"`
	StockStatus  string          `json:"estado_inventario"`
	CreatedAt    time.Time       `json:"creado_en"`
}

// ToOrderItemResponse mapea la línea de orden a su representación pública.
func ToOrderItemResponse(it *entity.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:           it.ID,
		OrderID:      it.OrderID,
		PizzaID:      it.PizzaID,
		PizzaName:    it.PizzaName,
		Category:     it.Category,
		Size:         it.Size,
		Quantity:     it.Quantity,
		UnitPrice:    it.UnitPrice,
		TotalPrice:   it.TotalPrice,
		RecipeID:     it.RecipeID,
		DeliveryMode: it.DeliveryMode,
		Address:      it.Address,
		CustomerName: it.CustomerName,
		Cashier:      it.Cashier,
		Status:       it.Status,
		StockStatus:  it.StockStatus,
		CreatedAt:    it.CreatedAt,
	}
}

// ToOrderItemResponses mapea la lista completa.
func ToOrderItemResponses(list []*entity.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, ToOrderItemResponse(it))
	}
	return out
}

// DraftItemRequest body para agregar una línea a un borrador.
type DraftItemRequest struct {
	PizzaID      string          `json:"pizza_id"`
	PizzaName    string          `json:"nombre_pizza"`
	Category     string          `json:"categoria"`
	Size         string          `json:"tamano"`
	Quantity     int             `json:"cantidad"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	TotalPrice   decimal.Decimal `json:"precio_total"`
	RecipeID     string          `json:"receta_id"`
	DeliveryMode string          `json:"modo_entrega"`
	Address      string          `json:"direccion"`
	CustomerName string          `json:"nombre_cliente"`
}

// DraftResponse estado de una orden borrador.
type DraftResponse struct {
	OrderID string              `json:"order_id"`
	Status  string              `json:"estado"`
	Total   decimal.Decimal     `json:"total"`
	Items   []OrderItemResponse `json:"items"`
}

// ToDraftResponse mapea el borrador a su representación pública.
func ToDraftResponse(d *entity.DraftOrder) DraftResponse {
	items := make([]OrderItemResponse, 0, len(d.Items))
	for i := range d.Items {
		items = append(items, ToOrderItemResponse(&d.Items[i]))
	}
	return DraftResponse{
		OrderID: d.OrderID,
		Status:  d.Status,
		Total:   d.Total(),
		Items:   items,
	}
}
