package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// StockBatchRepository define el puerto para consultar y mutar lotes de stock.
// Las variantes ForUpdate bloquean filas (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción; son lo que serializa salidas concurrentes
// del mismo ingrediente.
type StockBatchRepository interface {
	ListAll() ([]*entity.StockItem, error)
	ListByIngredient(ingredientID string) ([]*entity.StockItem, error)

	// Upsert inserta el lote o, si ya existe (ingrediente, lote), reemplaza
	// cantidad, umbral y vencimiento. No sirve para ajustes relativos.
	Upsert(batch *entity.StockBatch) error

	// SumAvailable suma la cantidad disponible de todos los lotes del ingrediente.
	SumAvailable(ingredientID string) (decimal.Decimal, error)

	// BelowThreshold devuelve los lotes con cantidad <= umbral mínimo,
	// de ingredientes activos, ordenados por nombre de ingrediente.
	BelowThreshold() ([]*entity.StockItem, error)

	// ListForDepletion devuelve los lotes con cantidad > 0 bloqueados para
	// update, ordenados por vencimiento ascendente y lote ascendente como
	// desempate (FEFO determinista).
	ListForDepletion(ingredientID string) ([]*entity.StockBatch, error)

	// GetByLotForUpdate bloquea y devuelve un lote puntual; nil si no existe.
	GetByLotForUpdate(ingredientID, lot string) (*entity.StockBatch, error)

	// OldestForUpdate bloquea y devuelve el lote de creación más antigua del
	// ingrediente (política de entrada sin lote); nil si no hay lotes.
	OldestForUpdate(ingredientID string) (*entity.StockBatch, error)

	// UpdateQuantity fija la cantidad de un lote ya bloqueado.
	UpdateQuantity(id string, quantity decimal.Decimal) error
}
