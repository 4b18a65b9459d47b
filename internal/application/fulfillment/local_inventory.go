package fulfillment

import (
	"context"

	"github.com/jhoicas/pizzeria-api/internal/application/availability"
	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ InventoryPort = (*LocalInventory)(nil)

// LocalInventory implementación en proceso de InventoryPort: delega en los
// casos de uso de disponibilidad y preparación del mismo binario.
type LocalInventory struct {
	recipeRepo repository.RecipeRepository
	checker    *availability.UseCase
	preparer   *inventory.PrepareUseCase
}

// NewLocalInventory construye el adaptador.
func NewLocalInventory(
	recipeRepo repository.RecipeRepository,
	checker *availability.UseCase,
	preparer *inventory.PrepareUseCase,
) *LocalInventory {
	return &LocalInventory{
		recipeRepo: recipeRepo,
		checker:    checker,
		preparer:   preparer,
	}
}

// FindRecipeByName busca una receta activa por nombre (coincidencia parcial).
func (li *LocalInventory) FindRecipeByName(name string) (*entity.Recipe, error) {
	return li.recipeRepo.FindByName(name)
}

// GetRecipe obtiene una receta activa por id; nil si no existe.
func (li *LocalInventory) GetRecipe(id string) (*entity.Recipe, error) {
	return li.recipeRepo.GetByID(id)
}

// CheckAvailability verifica el stock de la receta escalado por qty.
func (li *LocalInventory) CheckAvailability(recipeID string, qty int) (*AvailabilityResult, error) {
	check, err := li.checker.CheckRecipe(recipeID, qty)
	if err != nil {
		return nil, err
	}
	return &AvailabilityResult{
		Sufficient: check.Sufficient,
		Missing:    check.Missing(),
	}, nil
}

// Prepare descuenta los ingredientes de la receta del inventario.
func (li *LocalInventory) Prepare(ctx context.Context, recipeID string, qty int, reference, actor string) error {
	_, err := li.preparer.PrepareRecipe(ctx, recipeID, qty, reference, actor)
	return err
}
