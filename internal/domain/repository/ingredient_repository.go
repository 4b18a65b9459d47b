package repository

import "github.com/jhoicas/pizzeria-api/internal/domain/entity"

// IngredientRepository define el puerto de persistencia para ingredientes.
// Solo trabaja sobre ingredientes activos; la baja es lógica.
type IngredientRepository interface {
	GetByID(id string) (*entity.Ingredient, error)
	List() ([]*entity.Ingredient, error)
	Create(ing *entity.Ingredient) error
	Update(ing *entity.Ingredient) error
	Deactivate(id string) error
	ExistsByName(name, excludeID string) (bool, error)

	// HasLiveStock indica si el ingrediente tiene lotes con cantidad > 0.
	HasLiveStock(id string) (bool, error)
	// InActiveRecipes indica si alguna receta activa lo requiere.
	InActiveRecipes(id string) (bool, error)
}
