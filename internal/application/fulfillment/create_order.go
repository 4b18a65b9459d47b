package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
	"github.com/jhoicas/pizzeria-api/pkg/logger"
)

// OrderUseCase coordina la creación de órdenes como una saga: cada paso
// commitea por separado y los estados intermedios quedan persistidos. El único
// rechazo duro es la falta de stock verificada antes de registrar la orden;
// los fallos posteriores (descuento, domicilios) degradan el estado de la
// línea pero la orden queda en pie.
type OrderUseCase struct {
	orders    repository.OrderRepository
	inventory InventoryPort
	delivery  DeliveryPort
	log       *logger.Logger
}

// NewOrderUseCase construye el coordinador de órdenes.
func NewOrderUseCase(
	orders repository.OrderRepository,
	inventory InventoryPort,
	delivery DeliveryPort,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		inventory: inventory,
		delivery:  delivery,
		log:       log,
	}
}

// CreateOrderInput datos de una línea de orden entrante.
type CreateOrderInput struct {
	OrderID      string
	PizzaID      string
	PizzaName    string
	Category     string
	Size         string
	Quantity     int
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
	RecipeID     string
	DeliveryMode string
	Address      string
	CustomerName string
	Cashier      string
}

// resolveRecipe busca la receta por id o, en su defecto, por nombre de pizza.
// Una línea sin receta asociada es válida: se registra sin descuento de stock.
func (uc *OrderUseCase) resolveRecipe(in *CreateOrderInput) (*entity.Recipe, error) {
	if in.RecipeID != "" {
		recipe, err := uc.inventory.GetRecipe(in.RecipeID)
		if err != nil {
			return nil, err
		}
		if recipe == nil {
			return nil, domain.ErrInvalidReference
		}
		return recipe, nil
	}
	if in.PizzaName == "" {
		return nil, nil
	}
	return uc.inventory.FindRecipeByName(in.PizzaName)
}

// CreateOrder ejecuta la saga de creación para una línea:
//  1. valida y normaliza la entrada;
//  2. resuelve la receta y verifica disponibilidad; sin stock la orden se
//     rechaza completa, sin efectos;
//  3. registra la línea con paso de inventario "pendiente";
//  4. descuenta ingredientes y marca stock_aplicado o stock_fallido;
//  5. si es a domicilio, notifica al servicio de domicilios (best-effort).
func (uc *OrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*entity.OrderItem, error) {
	if in.DeliveryMode == "" {
		in.DeliveryMode = entity.DeliveryModeTakeaway
	}
	if in.DeliveryMode != entity.DeliveryModeTakeaway && in.DeliveryMode != entity.DeliveryModeDelivery {
		return nil, &domain.ValidationError{Field: "modo_entrega", Detail: "debe ser para_llevar o domicilio"}
	}
	if in.DeliveryMode == entity.DeliveryModeDelivery && strings.TrimSpace(in.Address) == "" {
		return nil, &domain.ValidationError{Field: "direccion", Detail: "es obligatoria para domicilio"}
	}
	if in.Quantity <= 0 {
		in.Quantity = 1
	}
	if strings.TrimSpace(in.Size) == "" {
		return nil, &domain.ValidationError{Field: "tamano", Detail: "es obligatorio"}
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, &domain.ValidationError{Field: "precio_unitario", Detail: "no puede ser negativo"}
	}
	// El total lo declara el cajero; un precio unitario ausente queda en 0 y no
	// se cruza contra el total.
	if !in.TotalPrice.GreaterThan(decimal.Zero) {
		return nil, &domain.ValidationError{Field: "precio_total", Detail: "es obligatorio"}
	}
	if in.OrderID == "" {
		in.OrderID = "ORD-" + uuid.New().String()
	}
	size := entity.NormalizeSize(in.Size)

	recipe, err := uc.resolveRecipe(&in)
	if err != nil {
		return nil, err
	}

	if recipe != nil {
		check, err := uc.inventory.CheckAvailability(recipe.ID, in.Quantity)
		if err != nil {
			return nil, err
		}
		if !check.Sufficient {
			return nil, &domain.InsufficientStockError{Missing: check.Missing}
		}
	}

	item := &entity.OrderItem{
		OrderID:      in.OrderID,
		PizzaID:      in.PizzaID,
		PizzaName:    in.PizzaName,
		Category:     in.Category,
		Size:         size,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		TotalPrice:   in.TotalPrice,
		DeliveryMode: in.DeliveryMode,
		Address:      in.Address,
		CustomerName: in.CustomerName,
		Cashier:      in.Cashier,
		Status:       entity.OrderStatusPending,
		StockStatus:  entity.StockStatusPending,
	}
	if recipe != nil {
		item.RecipeID = recipe.ID
	}
	if err := uc.orders.Create(item); err != nil {
		return nil, err
	}

	if recipe != nil {
		uc.applyStock(ctx, item, recipe)
	} else {
		// Sin receta no hay descuento: la línea nace aplicada.
		uc.markStock(item, entity.StockStatusApplied)
	}

	if in.DeliveryMode == entity.DeliveryModeDelivery {
		uc.notifyDelivery(ctx, item)
	}
	return item, nil
}

// applyStock descuenta los ingredientes y deja el resultado persistido en la
// línea. Un fallo aquí no revierte la orden: queda en stock_fallido para
// conciliación manual.
func (uc *OrderUseCase) applyStock(ctx context.Context, item *entity.OrderItem, recipe *entity.Recipe) {
	reference := fmt.Sprintf("orden %s", item.OrderID)
	err := uc.inventory.Prepare(ctx, recipe.ID, item.Quantity, reference, item.Cashier)
	if err != nil {
		uc.log.Warn().
			Err(err).
			Str("order_id", item.OrderID).
			Str("receta_id", recipe.ID).
			Msg("descuento de stock falló, la orden queda registrada")
		uc.markStock(item, entity.StockStatusFailed)
		return
	}
	uc.markStock(item, entity.StockStatusApplied)
}

func (uc *OrderUseCase) markStock(item *entity.OrderItem, status string) {
	if err := uc.orders.UpdateStockStatus(item.ID, status); err != nil {
		uc.log.Error().
			Err(err).
			Str("order_id", item.OrderID).
			Str("estado", status).
			Msg("no se pudo persistir el estado de inventario de la línea")
		return
	}
	item.StockStatus = status
}

// notifyDelivery avisa al servicio de domicilios. Los errores se registran y
// se tragan: la orden no depende del despacho.
func (uc *OrderUseCase) notifyDelivery(ctx context.Context, item *entity.OrderItem) {
	err := uc.delivery.CreateDelivery(ctx, DeliveryRequest{
		OrderID:      item.OrderID,
		Address:      item.Address,
		CustomerName: item.CustomerName,
		CashierEmail: item.Cashier,
	})
	if err != nil {
		evt := uc.log.Warn()
		if errors.Is(err, domain.ErrUpstreamUnavailable) {
			evt = uc.log.Error()
		}
		evt.Err(err).
			Str("order_id", item.OrderID).
			Msg("no se pudo notificar a domicilios")
	}
}

// SubmitDraft finaliza una orden borrador y corre la saga para cada línea.
// Las líneas se procesan en orden; la primera que falla detiene el envío y
// devuelve el error junto a las ya creadas.
func (uc *OrderUseCase) SubmitDraft(ctx context.Context, draft *entity.DraftOrder, cashier string) ([]*entity.OrderItem, error) {
	if draft.Status == entity.DraftStatusOpen {
		draft.Finalize()
	}
	created := make([]*entity.OrderItem, 0, len(draft.Items))
	for _, it := range draft.Items {
		item, err := uc.CreateOrder(ctx, CreateOrderInput{
			OrderID:      draft.OrderID,
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
			Cashier:      cashier,
		})
		if err != nil {
			return created, err
		}
		created = append(created, item)
	}
	return created, nil
}

// GetOrder devuelve todas las líneas de una orden.
func (uc *OrderUseCase) GetOrder(orderID string) ([]*entity.OrderItem, error) {
	items, err := uc.orders.ListByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrNotFound
	}
	return items, nil
}

// ListOrders devuelve líneas de orden paginadas.
func (uc *OrderUseCase) ListOrders(limit, offset int) ([]*entity.OrderItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.orders.List(limit, offset)
}

// UpdateStatus avanza el ciclo de entrega de todas las líneas de la orden.
func (uc *OrderUseCase) UpdateStatus(orderID, status string) error {
	switch status {
	case entity.OrderStatusPending, entity.OrderStatusOnTheWay, entity.OrderStatusDelivered:
	default:
		return &domain.ValidationError{Field: "estado", Detail: "debe ser pendiente, en_camino o entregado"}
	}
	items, err := uc.orders.ListByOrderID(orderID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrNotFound
	}
	return uc.orders.UpdateStatus(orderID, status)
}
