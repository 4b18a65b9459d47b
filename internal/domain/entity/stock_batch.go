package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch representa un lote físico de un ingrediente con su propia fecha de
// vencimiento. La pareja (ingrediente, lote) es única; la cantidad nunca baja de
// cero y la fila se conserva aunque llegue a cero (historial).
type StockBatch struct {
	ID           string
	IngredientID string
	Quantity     decimal.Decimal
	MinThreshold decimal.Decimal
	Lot          string
	ExpiryDate   time.Time
	CreatedAt    time.Time
}

// StockItem es un lote enriquecido con datos del ingrediente para listados
// y alertas (join con ingredientes).
type StockItem struct {
	StockBatch
	IngredientName string
	Unit           string
	Supplier       string
}
