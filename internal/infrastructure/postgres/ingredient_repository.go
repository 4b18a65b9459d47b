package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, name, unit, unit_cost, allergens, shelf_life_days, supplier, active, created_at, updated_at`

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var ing entity.Ingredient
	err := row.Scan(
		&ing.ID, &ing.Name, &ing.Unit, &ing.UnitCost, &ing.Allergens,
		&ing.ShelfLifeDays, &ing.Supplier, &ing.Active, &ing.CreatedAt, &ing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// GetByID obtiene un ingrediente activo por ID; nil si no existe.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1 AND active = TRUE`
	ing, err := scanIngredient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// List devuelve los ingredientes activos ordenados por nombre.
func (r *IngredientRepo) List() ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE active = TRUE ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

// Create persiste un nuevo ingrediente.
func (r *IngredientRepo) Create(ing *entity.Ingredient) error {
	if ing.ID == "" {
		ing.ID = uuid.New().String()
	}
	if ing.CreatedAt.IsZero() {
		ing.CreatedAt = time.Now()
		ing.UpdatedAt = ing.CreatedAt
	}
	query := `
		INSERT INTO ingredients (id, name, unit, unit_cost, allergens, shelf_life_days, supplier, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		ing.ID, ing.Name, ing.Unit, ing.UnitCost, ing.Allergens,
		ing.ShelfLifeDays, ing.Supplier, ing.CreatedAt, ing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// Update actualiza un ingrediente activo.
func (r *IngredientRepo) Update(ing *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $1, unit = $2, unit_cost = $3, allergens = $4,
		    shelf_life_days = $5, supplier = $6, updated_at = $7
		WHERE id = $8 AND active = TRUE`
	_, err := r.q.Exec(context.Background(), query,
		ing.Name, ing.Unit, ing.UnitCost, ing.Allergens,
		ing.ShelfLifeDays, ing.Supplier, time.Now(), ing.ID,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

// Deactivate baja lógica del ingrediente.
func (r *IngredientRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ingredients SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate ingredient: %w", err)
	}
	return nil
}

// ExistsByName verifica si hay otro ingrediente activo con el mismo nombre.
func (r *IngredientRepo) ExistsByName(name, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM ingredients WHERE name = $1 AND active = TRUE`
	args := []any{name}
	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}
	var count int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("exists by name: %w", err)
	}
	return count > 0, nil
}

// HasLiveStock indica si el ingrediente tiene lotes con existencias.
func (r *IngredientRepo) HasLiveStock(id string) (bool, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_batches WHERE ingredient_id = $1 AND quantity > 0`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("has live stock: %w", err)
	}
	return count > 0, nil
}

// InActiveRecipes indica si alguna receta activa requiere el ingrediente.
func (r *IngredientRepo) InActiveRecipes(id string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM recipe_ingredients ri
		INNER JOIN recipes r ON r.id = ri.recipe_id
		WHERE ri.ingredient_id = $1 AND r.active = TRUE`
	var count int
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&count); err != nil {
		return false, fmt.Errorf("in active recipes: %w", err)
	}
	return count > 0, nil
}
