package inventory

import (
	"context"

	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para entradas y salidas:
// o se aplican la mutación de lotes y el movimiento, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockBatchRepository,
	) error) error
}
