package repository

import "github.com/jhoicas/pizzeria-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para recetas.
// Las lecturas devuelven la receta con sus líneas de ingredientes activas
// pobladas. La lista de requerimientos es un agregado: en Update se descarta
// completa y se reinserta, nunca se parchea línea a línea.
type RecipeRepository interface {
	GetByID(id string) (*entity.Recipe, error)
	List() ([]*entity.Recipe, error)
	FindByName(name string) (*entity.Recipe, error)
	GetByTypeAndSize(pizzaType, size string) (*entity.Recipe, error)
	Create(r *entity.Recipe) error
	// Update reemplaza los datos de la receta; si replaceIngredients es true,
	// borra e inserta la lista de requerimientos completa.
	Update(r *entity.Recipe, replaceIngredients bool) error
	// Deactivate baja lógica incondicional (no valida stock ni movimientos).
	Deactivate(id string) error
	ExistsByTypeAndSize(pizzaType, size, excludeID string) (bool, error)
}
