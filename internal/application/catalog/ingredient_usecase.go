package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// IngredientUseCase administración del catálogo de ingredientes.
type IngredientUseCase struct {
	ingredientRepo repository.IngredientRepository
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(ingredientRepo repository.IngredientRepository) *IngredientUseCase {
	return &IngredientUseCase{ingredientRepo: ingredientRepo}
}

// IngredientInput datos de alta o edición de un ingrediente.
type IngredientInput struct {
	Name          string
	Unit          string
	UnitCost      decimal.Decimal
	Allergens     string
	ShelfLifeDays int
	Supplier      string
}

func (in *IngredientInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &domain.ValidationError{Field: "nombre", Detail: "es obligatorio"}
	}
	if strings.TrimSpace(in.Unit) == "" {
		return &domain.ValidationError{Field: "unidad_medida", Detail: "es obligatoria"}
	}
	if in.UnitCost.LessThan(decimal.Zero) {
		return &domain.ValidationError{Field: "costo_unitario", Detail: "no puede ser negativo"}
	}
	if in.ShelfLifeDays < 0 {
		return &domain.ValidationError{Field: "vida_util_dias", Detail: "no puede ser negativa"}
	}
	return nil
}

// Create da de alta un ingrediente. El nombre es único entre activos.
func (uc *IngredientUseCase) Create(in IngredientInput) (*entity.Ingredient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	exists, err := uc.ingredientRepo.ExistsByName(in.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	ing := &entity.Ingredient{
		Name:          strings.TrimSpace(in.Name),
		Unit:          in.Unit,
		UnitCost:      in.UnitCost,
		Allergens:     in.Allergens,
		ShelfLifeDays: in.ShelfLifeDays,
		Supplier:      in.Supplier,
		Active:        true,
	}
	if err := uc.ingredientRepo.Create(ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// Update modifica un ingrediente existente.
func (uc *IngredientUseCase) Update(id string, in IngredientInput) (*entity.Ingredient, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	ing, err := uc.ingredientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	exists, err := uc.ingredientRepo.ExistsByName(in.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	ing.Name = strings.TrimSpace(in.Name)
	ing.Unit = in.Unit
	ing.UnitCost = in.UnitCost
	ing.Allergens = in.Allergens
	ing.ShelfLifeDays = in.ShelfLifeDays
	ing.Supplier = in.Supplier
	if err := uc.ingredientRepo.Update(ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// GetByID obtiene un ingrediente activo.
func (uc *IngredientUseCase) GetByID(id string) (*entity.Ingredient, error) {
	ing, err := uc.ingredientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	return ing, nil
}

// List devuelve los ingredientes activos.
func (uc *IngredientUseCase) List() ([]*entity.Ingredient, error) {
	return uc.ingredientRepo.List()
}

// Deactivate baja lógica de un ingrediente. Se rechaza con ErrConflict si el
// ingrediente todavía tiene lotes con cantidad o participa de recetas activas.
func (uc *IngredientUseCase) Deactivate(id string) error {
	ing, err := uc.ingredientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if ing == nil {
		return domain.ErrNotFound
	}
	hasStock, err := uc.ingredientRepo.HasLiveStock(id)
	if err != nil {
		return err
	}
	if hasStock {
		return domain.ErrConflict
	}
	inRecipes, err := uc.ingredientRepo.InActiveRecipes(id)
	if err != nil {
		return err
	}
	if inRecipes {
		return domain.ErrConflict
	}
	return uc.ingredientRepo.Deactivate(id)
}
