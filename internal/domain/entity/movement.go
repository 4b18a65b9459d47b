package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. Los valores coinciden con el enum de la tabla.
const (
	MovementTypeEntry = "ENTRADA"
	MovementTypeExit  = "SALIDA"
)

// Movement es el registro inmutable de una entrada o salida de stock.
// Se crea exactamente una vez por cambio, dentro de la misma transacción que la
// mutación del lote que documenta; nunca se actualiza ni se borra.
type Movement struct {
	ID           string
	IngredientID string
	Type         string // ENTRADA | SALIDA
	Reason       string
	Quantity     decimal.Decimal // siempre positiva; el signo lo da Type
	Reference    string
	Actor        string
	Lot          string // opcional: lote afectado en entradas dirigidas
	CreatedAt    time.Time

	// Poblados en lecturas (join con ingredientes).
	IngredientName string
	Unit           string
}

// LotConsumption detalla cuánto se consumió de un lote durante una salida.
type LotConsumption struct {
	Lot            string          `json:"lote"`
	QuantityUsed   decimal.Decimal `json:"cantidad_usada"`
	RemainingAfter decimal.Decimal `json:"cantidad_restante"`
}
