package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// RecipeUseCase administración del catálogo de recetas.
type RecipeUseCase struct {
	recipeRepo repository.RecipeRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(recipeRepo repository.RecipeRepository) *RecipeUseCase {
	return &RecipeUseCase{recipeRepo: recipeRepo}
}

// RecipeIngredientInput línea de requerimiento en el alta o edición.
type RecipeIngredientInput struct {
	IngredientID string
	Required     decimal.Decimal
}

// RecipeInput datos de alta o edición de una receta.
// En edición, Ingredients nil significa conservar la lista actual; una lista
// (incluso vacía) la reemplaza completa.
type RecipeInput struct {
	Name              string
	PizzaType         string
	Size              string
	BasePrice         decimal.Decimal
	SpoilageTolerance decimal.Decimal
	Ingredients       []RecipeIngredientInput
}

func (in *RecipeInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &domain.ValidationError{Field: "nombre", Detail: "es obligatorio"}
	}
	if strings.TrimSpace(in.PizzaType) == "" {
		return &domain.ValidationError{Field: "tipo_pizza", Detail: "es obligatorio"}
	}
	if strings.TrimSpace(in.Size) == "" {
		return &domain.ValidationError{Field: "tamano", Detail: "es obligatorio"}
	}
	if in.BasePrice.LessThan(decimal.Zero) {
		return &domain.ValidationError{Field: "precio_base", Detail: "no puede ser negativo"}
	}
	for _, ri := range in.Ingredients {
		if ri.IngredientID == "" {
			return &domain.ValidationError{Field: "ingredientes", Detail: "cada línea requiere ingrediente_id"}
		}
		if !ri.Required.GreaterThan(decimal.Zero) {
			return &domain.ValidationError{Field: "ingredientes", Detail: "la cantidad requerida debe ser mayor a cero"}
		}
	}
	return nil
}

func toRecipeLines(inputs []RecipeIngredientInput) []entity.RecipeIngredient {
	lines := make([]entity.RecipeIngredient, 0, len(inputs))
	for _, ri := range inputs {
		lines = append(lines, entity.RecipeIngredient{
			IngredientID: ri.IngredientID,
			Required:     ri.Required,
		})
	}
	return lines
}

// Create da de alta una receta. La pareja (tipo, tamaño) es única entre activas.
func (uc *RecipeUseCase) Create(in RecipeInput) (*entity.Recipe, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	size := entity.NormalizeSize(in.Size)
	exists, err := uc.recipeRepo.ExistsByTypeAndSize(in.PizzaType, size, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}
	recipe := &entity.Recipe{
		Name:              strings.TrimSpace(in.Name),
		PizzaType:         in.PizzaType,
		Size:              size,
		BasePrice:         in.BasePrice,
		SpoilageTolerance: in.SpoilageTolerance,
		Active:            true,
		Ingredients:       toRecipeLines(in.Ingredients),
	}
	if err := uc.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}
	return uc.GetByID(recipe.ID)
}

// Update modifica una receta. Si el input trae lista de ingredientes, la lista
// persistida se descarta y se reinserta completa.
func (uc *RecipeUseCase) Update(id string, in RecipeInput) (*entity.Recipe, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	size := entity.NormalizeSize(in.Size)
	exists, err := uc.recipeRepo.ExistsByTypeAndSize(in.PizzaType, size, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}
	recipe.Name = strings.TrimSpace(in.Name)
	recipe.PizzaType = in.PizzaType
	recipe.Size = size
	recipe.BasePrice = in.BasePrice
	recipe.SpoilageTolerance = in.SpoilageTolerance
	replace := in.Ingredients != nil
	if replace {
		recipe.Ingredients = toRecipeLines(in.Ingredients)
	}
	if err := uc.recipeRepo.Update(recipe, replace); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// GetByID obtiene una receta activa con sus líneas.
func (uc *RecipeUseCase) GetByID(id string) (*entity.Recipe, error) {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	return recipe, nil
}

// List devuelve las recetas activas.
func (uc *RecipeUseCase) List() ([]*entity.Recipe, error) {
	return uc.recipeRepo.List()
}

// Cost devuelve el desglose de costo y margen de la receta.
func (uc *RecipeUseCase) Cost(id string) (*entity.CostBreakdown, error) {
	recipe, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	breakdown := recipe.Breakdown()
	return &breakdown, nil
}

// Deactivate baja lógica incondicional de la receta. A diferencia de los
// ingredientes, una receta se puede retirar aunque existan órdenes o stock
// que la mencionen.
func (uc *RecipeUseCase) Deactivate(id string) error {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	return uc.recipeRepo.Deactivate(id)
}
