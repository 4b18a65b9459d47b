package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/availability"
	"github.com/jhoicas/pizzeria-api/internal/application/catalog"
	"github.com/jhoicas/pizzeria-api/internal/application/fulfillment"
	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IngredientUC *catalog.IngredientUseCase
	RecipeUC     *catalog.RecipeUseCase
	StockUC      *inventory.StockUseCase
	MovementUC   *inventory.MovementUseCase
	PrepareUC    *inventory.PrepareUseCase
	Checker      *availability.UseCase
	OrderUC      *fulfillment.OrderUseCase
	Drafts       *fulfillment.DraftManager
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// El catálogo lo muta solo el admin; el resto de roles consulta.
	adminOnly := RequireRole("admin")

	// Ingredientes (protegido)
	ingredients := protected.Group("/ingredientes")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredients.Post("/", adminOnly, ingredientHandler.Create)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/:id", ingredientHandler.GetByID)
	ingredients.Put("/:id", adminOnly, ingredientHandler.Update)
	ingredients.Delete("/:id", adminOnly, ingredientHandler.Deactivate)

	// Recetas (protegido)
	recipes := protected.Group("/recetas")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/", adminOnly, recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Get("/:id/costo", recipeHandler.Cost)
	recipes.Put("/:id", adminOnly, recipeHandler.Update)
	recipes.Delete("/:id", adminOnly, recipeHandler.Deactivate)

	// Stock por lote (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Post("/", stockHandler.Upsert)
	stock.Get("/", stockHandler.List)
	stock.Get("/bajo-umbral", stockHandler.BelowThreshold)
	stock.Get("/alertas", stockHandler.Alerts)
	stock.Get("/ingrediente/:ingredienteId", stockHandler.ListByIngredient)

	// Libro de movimientos (protegido)
	movements := protected.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/entrada", movementHandler.RegisterEntry)
	movements.Post("/salida", movementHandler.RegisterExit)
	movements.Get("/", movementHandler.List)
	movements.Get("/resumen", movementHandler.Summarize)

	// Validaciones de disponibilidad y preparación (protegido)
	validations := protected.Group("/validaciones")
	availabilityHandler := NewAvailabilityHandler(deps.Checker, deps.PrepareUC)
	validations.Get("/recetas-disponibles", availabilityHandler.RankRecipes)
	validations.Get("/stock-suficiente/:recetaId", availabilityHandler.CheckRecipe)
	validations.Post("/preparar-receta", availabilityHandler.Prepare)

	// Órdenes y borradores (protegido)
	orders := protected.Group("/ordenes")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Drafts)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Post("/borradores", orderHandler.OpenDraft)
	orders.Get("/borradores/:orderId", orderHandler.GetDraft)
	orders.Post("/borradores/:orderId/items", orderHandler.AddDraftItem)
	orders.Post("/borradores/:orderId/enviar", orderHandler.SubmitDraft)
	orders.Delete("/borradores/:orderId", orderHandler.DiscardDraft)
	orders.Get("/:orderId", orderHandler.GetByOrderID)
	orders.Put("/:orderId/estado", orderHandler.UpdateStatus)
}
