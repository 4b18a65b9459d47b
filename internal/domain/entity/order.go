package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrDraftFinalized indica un intento de modificar un borrador ya cerrado.
var ErrDraftFinalized = errors.New("la orden borrador ya fue finalizada")

// Modos de entrega.
const (
	DeliveryModeTakeaway = "para_llevar"
	DeliveryModeDelivery = "domicilio"
)

// Estados del ciclo de vida de entrega de una línea de orden.
const (
	OrderStatusPending   = "pendiente"
	OrderStatusOnTheWay  = "en_camino"
	OrderStatusDelivered = "entregado"
)

// Estado durable del paso de inventario de la saga de creación de órdenes.
// pendiente → stock_aplicado | stock_fallido. Un stock_fallido no invalida la
// orden: queda registrado para conciliación posterior.
const (
	StockStatusPending = "pendiente"
	StockStatusApplied = "stock_aplicado"
	StockStatusFailed  = "stock_fallido"
)

// OrderItem es una línea de orden: una receta (opcional), cantidad y precios.
// Varias líneas comparten OrderID cuando pertenecen a la misma orden.
type OrderItem struct {
	ID           string
	OrderID      string
	PizzaID      string
	PizzaName    string
	Category     string
	Size         string // código normalizado: S, M, L, XL
	Quantity     int
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal
	RecipeID     string
	DeliveryMode string
	Address      string
	CustomerName string
	Cashier      string
	Status       string // ciclo de entrega
	StockStatus  string // paso de inventario de la saga
	CreatedAt    time.Time
}

// sizeCodes normaliza etiquetas de tamaño en texto libre al código del enum.
var sizeCodes = map[string]string{
	"PEQUEÑA": "S", "PEQUEÑO": "S", "SMALL": "S", "S": "S",
	"MEDIANA": "M", "MEDIANO": "M", "MEDIUM": "M", "M": "M",
	"GRANDE": "L", "LARGE": "L", "L": "L",
	"FAMILIAR": "XL", "FAMILY": "XL", "XL": "XL", "EXTRA_LARGE": "XL",
}

// NormalizeSize mapea una etiqueta de tamaño al código S/M/L/XL.
// Etiquetas no reconocidas caen en M.
func NormalizeSize(label string) string {
	if code, ok := sizeCodes[strings.ToUpper(strings.TrimSpace(label))]; ok {
		return code
	}
	return "M"
}

// Estados de una orden borrador.
const (
	DraftStatusOpen      = "abierta"
	DraftStatusFinalized = "finalizada"
)

// DraftOrder agrupa líneas bajo un mismo OrderID mientras el cajero arma la
// orden. Reemplaza el estado mutable "orden actual" del cliente: la orden se
// finaliza explícitamente, no por ausencia de id.
type DraftOrder struct {
	OrderID string
	Items   []OrderItem
	Status  string
}

// NewDraftOrder abre una orden borrador vacía.
func NewDraftOrder(orderID string) *DraftOrder {
	return &DraftOrder{OrderID: orderID, Status: DraftStatusOpen}
}

// AddItem agrega una línea al borrador. Falla si ya fue finalizado.
func (d *DraftOrder) AddItem(item OrderItem) error {
	if d.Status != DraftStatusOpen {
		return ErrDraftFinalized
	}
	item.OrderID = d.OrderID
	d.Items = append(d.Items, item)
	return nil
}

// Finalize cierra el borrador; las líneas ya no aceptan cambios.
func (d *DraftOrder) Finalize() {
	d.Status = DraftStatusFinalized
}

// Total suma el precio total de todas las líneas.
func (d *DraftOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.Items {
		total = total.Add(it.TotalPrice)
	}
	return total
}
