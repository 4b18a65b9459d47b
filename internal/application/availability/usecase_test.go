package availability_test

import (
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizzeria-api/internal/application/availability"
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

// stubStockRepo solo responde SumAvailable; el resto del puerto no se usa aquí.
type stubStockRepo struct {
	totals map[string]decimal.Decimal
}

func (s *stubStockRepo) SumAvailable(ingredientID string) (decimal.Decimal, error) {
	return s.totals[ingredientID], nil
}

func (s *stubStockRepo) ListAll() ([]*entity.StockItem, error)                       { return nil, nil }
func (s *stubStockRepo) ListByIngredient(string) ([]*entity.StockItem, error)        { return nil, nil }
func (s *stubStockRepo) Upsert(*entity.StockBatch) error                             { return nil }
func (s *stubStockRepo) BelowThreshold() ([]*entity.StockItem, error)                { return nil, nil }
func (s *stubStockRepo) ListForDepletion(string) ([]*entity.StockBatch, error)       { return nil, nil }
func (s *stubStockRepo) GetByLotForUpdate(string, string) (*entity.StockBatch, error) { return nil, nil }
func (s *stubStockRepo) OldestForUpdate(string) (*entity.StockBatch, error)          { return nil, nil }
func (s *stubStockRepo) UpdateQuantity(string, decimal.Decimal) error                { return nil }

type stubRecipeRepo struct {
	recipes map[string]*entity.Recipe
}

func (s *stubRecipeRepo) GetByID(id string) (*entity.Recipe, error) { return s.recipes[id], nil }
func (s *stubRecipeRepo) List() ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	for _, r := range s.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (s *stubRecipeRepo) FindByName(string) (*entity.Recipe, error)                { return nil, nil }
func (s *stubRecipeRepo) GetByTypeAndSize(string, string) (*entity.Recipe, error)  { return nil, nil }
func (s *stubRecipeRepo) Create(*entity.Recipe) error                              { return nil }
func (s *stubRecipeRepo) Update(*entity.Recipe, bool) error                        { return nil }
func (s *stubRecipeRepo) Deactivate(string) error                                  { return nil }
func (s *stubRecipeRepo) ExistsByTypeAndSize(string, string, string) (bool, error) { return false, nil }

var _ repository.StockBatchRepository = (*stubStockRepo)(nil)
var _ repository.RecipeRepository = (*stubRecipeRepo)(nil)

func margarita() *entity.Recipe {
	return &entity.Recipe{
		ID:        "rec-1",
		Name:      "Margarita",
		PizzaType: "margarita",
		Size:      "M",
		BasePrice: d("20"),
		Active:    true,
		CreatedAt: time.Now(),
		Ingredients: []entity.RecipeIngredient{
			{IngredientID: "ing-harina", Name: "harina", Unit: "gr", Required: d("250")},
			{IngredientID: "ing-queso", Name: "queso", Unit: "gr", Required: d("100")},
		},
	}
}

func setup(totals map[string]decimal.Decimal, recipes ...*entity.Recipe) *availability.UseCase {
	m := make(map[string]*entity.Recipe, len(recipes))
	for _, r := range recipes {
		m[r.ID] = r
	}
	return availability.NewUseCase(&stubStockRepo{totals: totals}, &stubRecipeRepo{recipes: m})
}

func TestCheckIngredient_IgualdadExactaAlcanza(t *testing.T) {
	uc := setup(map[string]decimal.Decimal{"ing-harina": d("250")})

	ok, err := uc.CheckIngredient("ing-harina", d("250"))

	require.NoError(t, err)
	assert.True(t, ok, "disponible igual a requerido debe alcanzar")
}

func TestCheckRecipe_EscalaPorMultiplicador(t *testing.T) {
	// Alcanza para 1 pero no para 3.
	uc := setup(map[string]decimal.Decimal{
		"ing-harina": d("600"),
		"ing-queso":  d("500"),
	}, margarita())

	check1, err := uc.CheckRecipe("rec-1", 1)
	require.NoError(t, err)
	assert.True(t, check1.Sufficient)

	check3, err := uc.CheckRecipe("rec-1", 3)
	require.NoError(t, err)
	assert.False(t, check3.Sufficient)
	assert.Equal(t, []string{"harina"}, check3.Missing(),
		"solo la harina falta a multiplicador 3 (se requieren 750)")
}

func TestCheckRecipe_DetallaCadaIngrediente(t *testing.T) {
	uc := setup(map[string]decimal.Decimal{
		"ing-harina": d("1000"),
		"ing-queso":  d("50"),
	}, margarita())

	check, err := uc.CheckRecipe("rec-1", 1)

	require.NoError(t, err)
	require.Len(t, check.Checks, 2)
	assert.True(t, check.Checks[0].Sufficient)
	assert.False(t, check.Checks[1].Sufficient)
	assert.False(t, check.Sufficient, "una sola línea insuficiente tumba el AND global")
}

func TestCheckRecipe_MultiplicadorInvalidoCaeEnUno(t *testing.T) {
	uc := setup(map[string]decimal.Decimal{
		"ing-harina": d("250"),
		"ing-queso":  d("100"),
	}, margarita())

	check, err := uc.CheckRecipe("rec-1", 0)

	require.NoError(t, err)
	assert.True(t, check.Sufficient)
	assert.True(t, check.Checks[0].Required.Equal(d("250")))
}

func TestCheckRecipe_RecetaInexistente(t *testing.T) {
	uc := setup(nil)

	_, err := uc.CheckRecipe("no-existe", 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRankRecipes_ParticionaElCatalogo(t *testing.T) {
	napolitana := &entity.Recipe{
		ID:        "rec-2",
		Name:      "Napolitana",
		PizzaType: "napolitana",
		Size:      "M",
		Active:    true,
		Ingredients: []entity.RecipeIngredient{
			{IngredientID: "ing-anchoa", Name: "anchoa", Required: d("50")},
		},
	}
	uc := setup(map[string]decimal.Decimal{
		"ing-harina": d("1000"),
		"ing-queso":  d("500"),
		// sin anchoas
	}, margarita(), napolitana)

	ranking, err := uc.RankRecipes()

	require.NoError(t, err)
	require.Len(t, ranking.Available, 1)
	require.Len(t, ranking.Unavailable, 1)
	assert.Equal(t, "Margarita", ranking.Available[0].Name)
	assert.Equal(t, "Napolitana", ranking.Unavailable[0].Name)
	require.Len(t, ranking.Unavailable[0].Missing, 1)
	assert.Equal(t, "anchoa", ranking.Unavailable[0].Missing[0].Name)
}
