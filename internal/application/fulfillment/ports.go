package fulfillment

import (
	"context"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// AvailabilityResult respuesta del chequeo de stock para una receta.
type AvailabilityResult struct {
	Sufficient bool
	Missing    []string
}

// InventoryPort es lo único que la toma de órdenes conoce del inventario.
// Hoy lo implementa un adaptador en proceso; el contrato admite reemplazarlo
// por un cliente remoto sin tocar la saga.
type InventoryPort interface {
	FindRecipeByName(name string) (*entity.Recipe, error)
	GetRecipe(id string) (*entity.Recipe, error)
	CheckAvailability(recipeID string, qty int) (*AvailabilityResult, error)
	Prepare(ctx context.Context, recipeID string, qty int, reference, actor string) error
}

// DeliveryRequest datos para despachar una orden a domicilio.
type DeliveryRequest struct {
	OrderID      string
	Address      string
	CustomerName string
	CashierEmail string
}

// DeliveryPort notifica al servicio de domicilios. La notificación es
// best-effort: la saga registra el error pero la orden queda en pie.
type DeliveryPort interface {
	CreateDelivery(ctx context.Context, req DeliveryRequest) error
}
