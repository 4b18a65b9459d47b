package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL.
// Usa el pool directamente: el agregado receta + requerimientos se escribe en su
// propia transacción (la lista se reemplaza completa, nunca se parchea).
type RecipeRepo struct {
	pool *pgxpool.Pool
}

// NewRecipeRepository construye el adaptador de recetas.
func NewRecipeRepository(pool *pgxpool.Pool) *RecipeRepo {
	return &RecipeRepo{pool: pool}
}

const recipeColumns = `id, name, pizza_type, size, base_price, spoilage_tolerance, active, created_at, updated_at`

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.PizzaType, &rec.Size, &rec.BasePrice,
		&rec.SpoilageTolerance, &rec.Active, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetByID obtiene una receta activa con sus líneas de ingredientes; nil si no existe.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1 AND active = TRUE`
	rec, err := scanRecipe(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if err := r.loadIngredients(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List devuelve las recetas activas con sus líneas, ordenadas por tipo y tamaño.
func (r *RecipeRepo) List() ([]*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE active = TRUE ORDER BY pizza_type, size`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rec := range list {
		if err := r.loadIngredients(rec); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// FindByName busca la primera receta activa cuyo nombre contenga el texto (case-insensitive).
func (r *RecipeRepo) FindByName(name string) (*entity.Recipe, error) {
	query := `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE active = TRUE AND name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 1`
	rec, err := scanRecipe(r.pool.QueryRow(context.Background(), query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find recipe by name: %w", err)
	}
	if err := r.loadIngredients(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByTypeAndSize obtiene la receta activa de un (tipo, tamaño); nil si no existe.
func (r *RecipeRepo) GetByTypeAndSize(pizzaType, size string) (*entity.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE pizza_type = $1 AND size = $2 AND active = TRUE`
	rec, err := scanRecipe(r.pool.QueryRow(context.Background(), query, pizzaType, size))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe by type and size: %w", err)
	}
	if err := r.loadIngredients(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// loadIngredients puebla las líneas de requerimiento (solo ingredientes activos).
func (r *RecipeRepo) loadIngredients(rec *entity.Recipe) error {
	query := `
		SELECT ri.ingredient_id, ri.required_quantity, i.name, i.unit, i.unit_cost
		FROM recipe_ingredients ri
		INNER JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = $1 AND i.active = TRUE
		ORDER BY i.name`
	rows, err := r.pool.Query(context.Background(), query, rec.ID)
	if err != nil {
		return fmt.Errorf("load recipe ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ri entity.RecipeIngredient
		if err := rows.Scan(&ri.IngredientID, &ri.Required, &ri.Name, &ri.Unit, &ri.UnitCost); err != nil {
			return fmt.Errorf("scan recipe ingredient: %w", err)
		}
		rec.Ingredients = append(rec.Ingredients, ri)
	}
	return rows.Err()
}

// Create persiste la receta y sus requerimientos en una sola transacción.
func (r *RecipeRepo) Create(rec *entity.Recipe) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()
	_, err = tx.Exec(ctx, `
		INSERT INTO recipes (id, name, pizza_type, size, base_price, spoilage_tolerance, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8)`,
		rec.ID, rec.Name, rec.PizzaType, rec.Size, rec.BasePrice, rec.SpoilageTolerance, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	if err := insertRequirements(ctx, tx, rec); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Update actualiza la receta; si replaceIngredients, descarta e inserta la lista completa.
func (r *RecipeRepo) Update(rec *entity.Recipe, replaceIngredients bool) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		UPDATE recipes
		SET name = $1, pizza_type = $2, size = $3, base_price = $4, spoilage_tolerance = $5, updated_at = $6
		WHERE id = $7 AND active = TRUE`,
		rec.Name, rec.PizzaType, rec.Size, rec.BasePrice, rec.SpoilageTolerance, time.Now(), rec.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update recipe: %w", err)
	}
	if replaceIngredients {
		if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, rec.ID); err != nil {
			return fmt.Errorf("delete recipe ingredients: %w", err)
		}
		if err := insertRequirements(ctx, tx, rec); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertRequirements(ctx context.Context, tx pgx.Tx, rec *entity.Recipe) error {
	for _, ri := range rec.Ingredients {
		_, err := tx.Exec(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, required_quantity)
			VALUES ($1, $2, $3)`,
			rec.ID, ri.IngredientID, ri.Required,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return errInvalidReference(err)
			}
			return fmt.Errorf("insert recipe ingredient: %w", err)
		}
	}
	return nil
}

// Deactivate baja lógica incondicional de la receta.
func (r *RecipeRepo) Deactivate(id string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE recipes SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate recipe: %w", err)
	}
	return nil
}

// ExistsByTypeAndSize verifica si otra receta activa ya usa el (tipo, tamaño).
func (r *RecipeRepo) ExistsByTypeAndSize(pizzaType, size, excludeID string) (bool, error) {
	query := `SELECT COUNT(*) FROM recipes WHERE pizza_type = $1 AND size = $2 AND active = TRUE`
	args := []any{pizzaType, size}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}
	var count int
	if err := r.pool.QueryRow(context.Background(), query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("exists by type and size: %w", err)
	}
	return count > 0, nil
}
