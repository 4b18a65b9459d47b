package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pizzeria-api/internal/domain/inventory"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// StockUseCase consultas y carga de stock por lote. Las mutaciones relativas
// (sumar/restar) no pasan por aquí: van por el libro de movimientos.
type StockUseCase struct {
	stockRepo      repository.StockBatchRepository
	ingredientRepo repository.IngredientRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	stockRepo repository.StockBatchRepository,
	ingredientRepo repository.IngredientRepository,
) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo, ingredientRepo: ingredientRepo}
}

// UpsertBatchInput datos para cargar o reemplazar un lote.
type UpsertBatchInput struct {
	IngredientID string
	Quantity     decimal.Decimal
	MinThreshold decimal.Decimal
	Lot          string
	ExpiryDate   time.Time
}

// UpsertBatch inserta el lote o, si ya existe (ingrediente, lote), reemplaza
// cantidad, umbral y vencimiento. No es un ajuste relativo.
func (uc *StockUseCase) UpsertBatch(in UpsertBatchInput) (*entity.StockBatch, error) {
	if in.Lot == "" {
		return nil, &domain.ValidationError{Field: "lote", Detail: "es obligatorio"}
	}
	if in.Quantity.LessThan(decimal.Zero) {
		return nil, &domain.ValidationError{Field: "cantidad_disponible", Detail: "no puede ser negativa"}
	}
	ing, err := uc.ingredientRepo.GetByID(in.IngredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	batch := &entity.StockBatch{
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		MinThreshold: in.MinThreshold,
		Lot:          in.Lot,
		ExpiryDate:   in.ExpiryDate,
	}
	if err := uc.stockRepo.Upsert(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// ListAll devuelve todos los lotes de ingredientes activos.
func (uc *StockUseCase) ListAll() ([]*entity.StockItem, error) {
	return uc.stockRepo.ListAll()
}

// ListByIngredient devuelve los lotes de un ingrediente.
func (uc *StockUseCase) ListByIngredient(ingredientID string) ([]*entity.StockItem, error) {
	return uc.stockRepo.ListByIngredient(ingredientID)
}

// BelowThreshold devuelve los lotes en o bajo su umbral mínimo.
func (uc *StockUseCase) BelowThreshold() ([]*entity.StockItem, error) {
	return uc.stockRepo.BelowThreshold()
}

// LowStockAlerts devuelve las alertas de reabastecimiento ordenadas por
// urgencia descendente (CRITICA > ALTA > MEDIA).
func (uc *StockUseCase) LowStockAlerts() ([]domaininv.LowStockAlert, error) {
	items, err := uc.stockRepo.BelowThreshold()
	if err != nil {
		return nil, err
	}
	return domaininv.BuildAlerts(items), nil
}
