package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// MovementUseCase registra entradas y salidas de stock de forma transaccional:
// la mutación de lotes y el movimiento que la documenta commitean juntos o no
// commitean. Las salidas descuentan por política FEFO (vence primero, sale
// primero) y son todo-o-nada.
type MovementUseCase struct {
	txRunner       TxRunner
	ingredientRepo repository.IngredientRepository
	movementRepo   repository.MovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	ingredientRepo repository.IngredientRepository,
	movementRepo repository.MovementRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:       txRunner,
		ingredientRepo: ingredientRepo,
		movementRepo:   movementRepo,
	}
}

// EntryInput datos para registrar una entrada.
// Si Lot viene vacío, la cantidad se suma al lote de creación más antigua.
type EntryInput struct {
	IngredientID string
	Quantity     decimal.Decimal
	Reason       string
	Reference    string
	Actor        string
	Lot          string
}

// ExitInput datos para registrar una salida.
type ExitInput struct {
	IngredientID string
	Quantity     decimal.Decimal
	Reason       string
	Reference    string
	Actor        string
}

// RegisterEntry registra una entrada: en una sola transacción suma la cantidad
// al lote destino e inserta el movimiento ENTRADA. Las entradas nunca crean
// lotes: si el lote indicado no existe, falla con ErrNotFound.
func (uc *MovementUseCase) RegisterEntry(ctx context.Context, in EntryInput) (*entity.Movement, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, &domain.ValidationError{Field: "cantidad", Detail: "debe ser mayor a cero"}
	}
	ing, err := uc.ingredientRepo.GetByID(in.IngredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}

	var mov *entity.Movement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockBatchRepository,
	) error {
		var batch *entity.StockBatch
		var err error
		if in.Lot != "" {
			batch, err = stockRepo.GetByLotForUpdate(in.IngredientID, in.Lot)
		} else {
			// Sin lote: política de recarga al lote más antiguo
			batch, err = stockRepo.OldestForUpdate(in.IngredientID)
		}
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if err := stockRepo.UpdateQuantity(batch.ID, batch.Quantity.Add(in.Quantity)); err != nil {
			return err
		}
		mov = &entity.Movement{
			IngredientID: in.IngredientID,
			Type:         entity.MovementTypeEntry,
			Reason:       in.Reason,
			Quantity:     in.Quantity,
			Reference:    in.Reference,
			Actor:        in.Actor,
			Lot:          in.Lot,
			CreatedAt:    time.Now(),
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	mov.IngredientName = ing.Name
	mov.Unit = ing.Unit
	return mov, nil
}

// RegisterExit registra una salida: en una sola transacción verifica la
// disponibilidad agregada, descuenta de los lotes en orden FEFO e inserta el
// movimiento SALIDA. Si el stock no alcanza no se escribe nada y falla con
// stock insuficiente; un descuento parcial jamás queda persistido.
func (uc *MovementUseCase) RegisterExit(ctx context.Context, in ExitInput) (*entity.Movement, []entity.LotConsumption, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, nil, &domain.ValidationError{Field: "cantidad", Detail: "debe ser mayor a cero"}
	}
	ing, err := uc.ingredientRepo.GetByID(in.IngredientID)
	if err != nil {
		return nil, nil, err
	}
	if ing == nil {
		return nil, nil, domain.ErrNotFound
	}

	var mov *entity.Movement
	var consumed []entity.LotConsumption
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockBatchRepository,
	) error {
		var err error
		consumed, err = deplete(stockRepo, ing, in.Quantity)
		if err != nil {
			return err
		}
		mov = &entity.Movement{
			IngredientID: in.IngredientID,
			Type:         entity.MovementTypeExit,
			Reason:       in.Reason,
			Quantity:     in.Quantity,
			Reference:    in.Reference,
			Actor:        in.Actor,
			CreatedAt:    time.Now(),
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, nil, err
	}
	mov.IngredientName = ing.Name
	mov.Unit = ing.Unit
	return mov, consumed, nil
}

// deplete descuenta quantity del ingrediente recorriendo sus lotes bloqueados
// en orden FEFO (vencimiento ascendente, lote ascendente como desempate).
// Debe correr dentro de una transacción: si el total no alcanza devuelve error
// y el rollback del caller deshace toda escritura.
func deplete(
	stockRepo repository.StockBatchRepository,
	ing *entity.Ingredient,
	quantity decimal.Decimal,
) ([]entity.LotConsumption, error) {
	batches, err := stockRepo.ListForDepletion(ing.ID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, b := range batches {
		total = total.Add(b.Quantity)
	}
	if total.LessThan(quantity) {
		return nil, &domain.InsufficientStockError{Missing: []string{ing.Name}}
	}

	remaining := quantity
	consumed := make([]entity.LotConsumption, 0, len(batches))
	for _, b := range batches {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		use := decimal.Min(b.Quantity, remaining)
		newQty := b.Quantity.Sub(use)
		if err := stockRepo.UpdateQuantity(b.ID, newQty); err != nil {
			return nil, err
		}
		consumed = append(consumed, entity.LotConsumption{
			Lot:            b.Lot,
			QuantityUsed:   use,
			RemainingAfter: newQty,
		})
		remaining = remaining.Sub(use)
	}
	return consumed, nil
}

// ListMovements devuelve movimientos filtrados, del más reciente al más antiguo.
func (uc *MovementUseCase) ListMovements(filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	return uc.movementRepo.List(filter)
}

// Summarize agrega entradas, salidas y conteo por ingrediente en un período.
func (uc *MovementUseCase) Summarize(from, to time.Time) ([]repository.MovementSummary, error) {
	if to.Before(from) {
		return nil, &domain.ValidationError{Field: "fecha_fin", Detail: "debe ser posterior a fecha_inicio"}
	}
	return uc.movementRepo.SummarizeByPeriod(from, to)
}
