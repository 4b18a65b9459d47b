package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// PrepareUseCase descuenta del inventario todos los ingredientes de una receta.
// Primero verifica cada línea contra el stock agregado y junta TODOS los
// faltantes; solo si nada falta ejecuta las salidas, una transacción por
// ingrediente.
type PrepareUseCase struct {
	movements  *MovementUseCase
	recipeRepo repository.RecipeRepository
	stockRepo  repository.StockBatchRepository
}

// NewPrepareUseCase construye el caso de uso de preparación.
func NewPrepareUseCase(
	movements *MovementUseCase,
	recipeRepo repository.RecipeRepository,
	stockRepo repository.StockBatchRepository,
) *PrepareUseCase {
	return &PrepareUseCase{
		movements:  movements,
		recipeRepo: recipeRepo,
		stockRepo:  stockRepo,
	}
}

// PreparedLine detalle de lo descontado para un ingrediente de la receta.
type PreparedLine struct {
	IngredientID string                  `json:"ingrediente_id"`
	Name         string                  `json:"nombre"`
	Quantity     decimal.Decimal         `json:"cantidad_descontada"`
	Lots         []entity.LotConsumption `json:"lotes"`
}

// PrepareResult resultado de una preparación exitosa.
type PrepareResult struct {
	RecipeID   string         `json:"receta_id"`
	RecipeName string         `json:"nombre"`
	Quantity   int            `json:"cantidad"`
	Lines      []PreparedLine `json:"ingredientes"`
}

// PrepareRecipe descuenta los ingredientes de la receta escalados por qty.
// Si algún ingrediente no alcanza devuelve InsufficientStockError con la lista
// completa de faltantes y no descuenta nada. La verificación previa no bloquea
// filas, así que una carrera entre el chequeo y el descuento puede igualmente
// terminar en InsufficientStockError; en ese caso las salidas ya aplicadas de
// otros ingredientes quedan commiteadas y documentadas en el libro.
func (uc *PrepareUseCase) PrepareRecipe(ctx context.Context, recipeID string, qty int, reference, actor string) (*PrepareResult, error) {
	if qty <= 0 {
		qty = 1
	}
	recipe, err := uc.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	if len(recipe.Ingredients) == 0 {
		return nil, &domain.ValidationError{Field: "ingredientes", Detail: "la receta no tiene ingredientes"}
	}

	factor := decimal.NewFromInt(int64(qty))
	var missing []string
	for _, ri := range recipe.Ingredients {
		available, err := uc.stockRepo.SumAvailable(ri.IngredientID)
		if err != nil {
			return nil, err
		}
		if available.LessThan(ri.Required.Mul(factor)) {
			missing = append(missing, ri.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.InsufficientStockError{Missing: missing}
	}

	reason := fmt.Sprintf("Preparación de receta: %s x%d", recipe.Name, qty)
	result := &PrepareResult{
		RecipeID:   recipe.ID,
		RecipeName: recipe.Name,
		Quantity:   qty,
	}
	for _, ri := range recipe.Ingredients {
		required := ri.Required.Mul(factor)
		_, lots, err := uc.movements.RegisterExit(ctx, ExitInput{
			IngredientID: ri.IngredientID,
			Quantity:     required,
			Reason:       reason,
			Reference:    reference,
			Actor:        actor,
		})
		if err != nil {
			return nil, err
		}
		result.Lines = append(result.Lines, PreparedLine{
			IngredientID: ri.IngredientID,
			Name:         ri.Name,
			Quantity:     required,
			Lots:         lots,
		})
	}
	return result, nil
}
