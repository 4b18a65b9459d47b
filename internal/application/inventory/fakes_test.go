package inventory_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia. Replican la semántica de
// las consultas (orden FEFO, lote más antiguo, suma agregada) sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

type fakeStockRepo struct {
	batches []*entity.StockBatch
}

func (f *fakeStockRepo) find(id string) *entity.StockBatch {
	for _, b := range f.batches {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (f *fakeStockRepo) ListAll() ([]*entity.StockItem, error) {
	out := make([]*entity.StockItem, 0, len(f.batches))
	for _, b := range f.batches {
		out = append(out, &entity.StockItem{StockBatch: *b})
	}
	return out, nil
}

func (f *fakeStockRepo) ListByIngredient(ingredientID string) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, b := range f.batches {
		if b.IngredientID == ingredientID {
			out = append(out, &entity.StockItem{StockBatch: *b})
		}
	}
	return out, nil
}

func (f *fakeStockRepo) Upsert(batch *entity.StockBatch) error {
	for _, b := range f.batches {
		if b.IngredientID == batch.IngredientID && b.Lot == batch.Lot {
			b.Quantity = batch.Quantity
			b.MinThreshold = batch.MinThreshold
			b.ExpiryDate = batch.ExpiryDate
			batch.ID = b.ID
			return nil
		}
	}
	if batch.ID == "" {
		batch.ID = fmt.Sprintf("batch-%d", len(f.batches)+1)
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now()
	}
	cp := *batch
	f.batches = append(f.batches, &cp)
	return nil
}

func (f *fakeStockRepo) SumAvailable(ingredientID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range f.batches {
		if b.IngredientID == ingredientID {
			total = total.Add(b.Quantity)
		}
	}
	return total, nil
}

func (f *fakeStockRepo) BelowThreshold() ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for _, b := range f.batches {
		if b.Quantity.LessThanOrEqual(b.MinThreshold) {
			out = append(out, &entity.StockItem{StockBatch: *b})
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ListForDepletion(ingredientID string) ([]*entity.StockBatch, error) {
	var out []*entity.StockBatch
	for _, b := range f.batches {
		if b.IngredientID == ingredientID && b.Quantity.GreaterThan(decimal.Zero) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiryDate.Equal(out[j].ExpiryDate) {
			return out[i].ExpiryDate.Before(out[j].ExpiryDate)
		}
		return out[i].Lot < out[j].Lot
	})
	return out, nil
}

func (f *fakeStockRepo) GetByLotForUpdate(ingredientID, lot string) (*entity.StockBatch, error) {
	for _, b := range f.batches {
		if b.IngredientID == ingredientID && b.Lot == lot {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeStockRepo) OldestForUpdate(ingredientID string) (*entity.StockBatch, error) {
	var oldest *entity.StockBatch
	for _, b := range f.batches {
		if b.IngredientID != ingredientID {
			continue
		}
		if oldest == nil || b.CreatedAt.Before(oldest.CreatedAt) {
			oldest = b
		}
	}
	return oldest, nil
}

func (f *fakeStockRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	b := f.find(id)
	if b == nil {
		return fmt.Errorf("lote %s no existe", id)
	}
	b.Quantity = quantity
	return nil
}

type fakeIngredientRepo struct {
	ingredients map[string]*entity.Ingredient
}

func newFakeIngredientRepo(ings ...*entity.Ingredient) *fakeIngredientRepo {
	m := make(map[string]*entity.Ingredient, len(ings))
	for _, ing := range ings {
		m[ing.ID] = ing
	}
	return &fakeIngredientRepo{ingredients: m}
}

func (f *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return f.ingredients[id], nil
}

func (f *fakeIngredientRepo) List() ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, ing := range f.ingredients {
		out = append(out, ing)
	}
	return out, nil
}

func (f *fakeIngredientRepo) Create(ing *entity.Ingredient) error {
	if ing.ID == "" {
		ing.ID = fmt.Sprintf("ing-%d", len(f.ingredients)+1)
	}
	f.ingredients[ing.ID] = ing
	return nil
}

func (f *fakeIngredientRepo) Update(ing *entity.Ingredient) error {
	f.ingredients[ing.ID] = ing
	return nil
}

func (f *fakeIngredientRepo) Deactivate(id string) error {
	delete(f.ingredients, id)
	return nil
}

func (f *fakeIngredientRepo) ExistsByName(name, excludeID string) (bool, error) {
	for _, ing := range f.ingredients {
		if ing.Name == name && ing.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeIngredientRepo) HasLiveStock(id string) (bool, error)   { return false, nil }
func (f *fakeIngredientRepo) InActiveRecipes(id string) (bool, error) { return false, nil }

type fakeMovementRepo struct {
	movements []*entity.Movement
}

func (f *fakeMovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = fmt.Sprintf("mov-%d", len(f.movements)+1)
	}
	cp := *m
	f.movements = append(f.movements, &cp)
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range f.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range f.movements {
		if filter.IngredientID != "" && m.IngredientID != filter.IngredientID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, m)
	}
	// Misma semántica que la consulta real: del más reciente al más antiguo.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeMovementRepo) SummarizeByPeriod(from, to time.Time) ([]repository.MovementSummary, error) {
	byID := make(map[string]*repository.MovementSummary)
	for _, m := range f.movements {
		if m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		s, ok := byID[m.IngredientID]
		if !ok {
			s = &repository.MovementSummary{
				IngredientID:   m.IngredientID,
				IngredientName: m.IngredientName,
				TotalEntries:   decimal.Zero,
				TotalExits:     decimal.Zero,
			}
			byID[m.IngredientID] = s
		}
		if m.Type == entity.MovementTypeEntry {
			s.TotalEntries = s.TotalEntries.Add(m.Quantity)
		} else {
			s.TotalExits = s.TotalExits.Add(m.Quantity)
		}
		s.MovementCount++
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]repository.MovementSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, *byID[id])
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directo, sin transacción. Los fakes no
// hacen rollback: la atomicidad que verifican los tests es la del pre-chequeo.
type fakeTxRunner struct {
	movRepo   repository.MovementRepository
	stockRepo repository.StockBatchRepository
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockBatchRepository,
) error) error {
	return fn(f.movRepo, f.stockRepo)
}

type fakeRecipeRepo struct {
	recipes map[string]*entity.Recipe
}

func newFakeRecipeRepo(recipes ...*entity.Recipe) *fakeRecipeRepo {
	m := make(map[string]*entity.Recipe, len(recipes))
	for _, r := range recipes {
		m[r.ID] = r
	}
	return &fakeRecipeRepo{recipes: m}
}

func (f *fakeRecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	return f.recipes[id], nil
}

func (f *fakeRecipeRepo) List() ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	for _, r := range f.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRecipeRepo) FindByName(name string) (*entity.Recipe, error) {
	for _, r := range f.recipes {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecipeRepo) GetByTypeAndSize(pizzaType, size string) (*entity.Recipe, error) {
	for _, r := range f.recipes {
		if r.PizzaType == pizzaType && r.Size == size {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecipeRepo) Create(r *entity.Recipe) error {
	if r.ID == "" {
		r.ID = fmt.Sprintf("rec-%d", len(f.recipes)+1)
	}
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRecipeRepo) Update(r *entity.Recipe, replaceIngredients bool) error {
	f.recipes[r.ID] = r
	return nil
}

func (f *fakeRecipeRepo) Deactivate(id string) error {
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) ExistsByTypeAndSize(pizzaType, size, excludeID string) (bool, error) {
	for _, r := range f.recipes {
		if r.PizzaType == pizzaType && r.Size == size && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
