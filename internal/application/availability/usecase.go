package availability

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// UseCase responde si el stock agregado alcanza para un ingrediente, una
// receta o todo el catálogo. Solo lee: nunca descuenta.
type UseCase struct {
	stockRepo  repository.StockBatchRepository
	recipeRepo repository.RecipeRepository
}

// NewUseCase construye el verificador de disponibilidad.
func NewUseCase(
	stockRepo repository.StockBatchRepository,
	recipeRepo repository.RecipeRepository,
) *UseCase {
	return &UseCase{stockRepo: stockRepo, recipeRepo: recipeRepo}
}

// IngredientCheck resultado por ingrediente de una verificación de receta.
type IngredientCheck struct {
	IngredientID string          `json:"ingrediente_id"`
	Name         string          `json:"nombre"`
	Required     decimal.Decimal `json:"cantidad_requerida"`
	Unit         string          `json:"unidad_medida"`
	Sufficient   bool            `json:"stock_suficiente"`
}

// RecipeCheck resultado agregado de verificar una receta.
// Sufficient es el AND lógico de todas las líneas: no hay sustituciones ni
// cumplimiento parcial.
type RecipeCheck struct {
	RecipeID   string            `json:"receta_id"`
	RecipeName string            `json:"nombre"`
	Sufficient bool              `json:"stock_suficiente"`
	Checks     []IngredientCheck `json:"verificaciones"`
}

// Missing devuelve los nombres de los ingredientes que no alcanzan.
func (rc *RecipeCheck) Missing() []string {
	var missing []string
	for _, c := range rc.Checks {
		if !c.Sufficient {
			missing = append(missing, c.Name)
		}
	}
	return missing
}

// CheckIngredient compara la suma de todos los lotes contra la cantidad
// requerida. Igualdad exacta alcanza (>=, no >).
func (uc *UseCase) CheckIngredient(ingredientID string, required decimal.Decimal) (bool, error) {
	total, err := uc.stockRepo.SumAvailable(ingredientID)
	if err != nil {
		return false, err
	}
	return total.GreaterThanOrEqual(required), nil
}

// CheckRecipe verifica cada línea de la receta escalada por multiplier.
// La receta se lee fresca en cada llamada, sin caché.
func (uc *UseCase) CheckRecipe(recipeID string, multiplier int) (*RecipeCheck, error) {
	if multiplier <= 0 {
		multiplier = 1
	}
	recipe, err := uc.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	return uc.checkRecipe(recipe, multiplier)
}

func (uc *UseCase) checkRecipe(recipe *entity.Recipe, multiplier int) (*RecipeCheck, error) {
	factor := decimal.NewFromInt(int64(multiplier))
	result := &RecipeCheck{
		RecipeID:   recipe.ID,
		RecipeName: recipe.Name,
		Sufficient: true,
	}
	for _, ri := range recipe.Ingredients {
		required := ri.Required.Mul(factor)
		ok, err := uc.CheckIngredient(ri.IngredientID, required)
		if err != nil {
			return nil, err
		}
		result.Checks = append(result.Checks, IngredientCheck{
			IngredientID: ri.IngredientID,
			Name:         ri.Name,
			Required:     required,
			Unit:         ri.Unit,
			Sufficient:   ok,
		})
		if !ok {
			result.Sufficient = false
		}
	}
	return result, nil
}

// RecipeRanking particiona el catálogo activo según disponibilidad a
// multiplicador 1.
type RecipeRanking struct {
	Available   []RankedRecipe `json:"recetas_disponibles"`
	Unavailable []RankedRecipe `json:"recetas_no_disponibles"`
}

// RankedRecipe receta con su detalle de disponibilidad para la toma de órdenes.
type RankedRecipe struct {
	RecipeID     string            `json:"id"`
	Name         string            `json:"nombre"`
	PizzaType    string            `json:"tipo_pizza"`
	Size         string            `json:"tamano"`
	BasePrice    decimal.Decimal   `json:"precio_base"`
	CostEstimate decimal.Decimal   `json:"costo_estimado"`
	Missing      []IngredientCheck `json:"ingredientes_faltantes,omitempty"`
}

// RankRecipes corre la verificación para cada receta activa. Cada chequeo es
// independiente (sin transacción compartida) para tolerar catálogos grandes.
func (uc *UseCase) RankRecipes() (*RecipeRanking, error) {
	recipes, err := uc.recipeRepo.List()
	if err != nil {
		return nil, err
	}
	ranking := &RecipeRanking{
		Available:   []RankedRecipe{},
		Unavailable: []RankedRecipe{},
	}
	for _, recipe := range recipes {
		check, err := uc.checkRecipe(recipe, 1)
		if err != nil {
			return nil, err
		}
		ranked := RankedRecipe{
			RecipeID:     recipe.ID,
			Name:         recipe.Name,
			PizzaType:    recipe.PizzaType,
			Size:         recipe.Size,
			BasePrice:    recipe.BasePrice,
			CostEstimate: recipe.CostEstimate(),
		}
		if check.Sufficient {
			ranking.Available = append(ranking.Available, ranked)
			continue
		}
		for _, c := range check.Checks {
			if !c.Sufficient {
				ranked.Missing = append(ranked.Missing, c)
			}
		}
		ranking.Unavailable = append(ranking.Unavailable, ranked)
	}
	return ranking, nil
}
