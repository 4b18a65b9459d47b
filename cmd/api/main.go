package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pizzeria-api/internal/application/availability"
	"github.com/jhoicas/pizzeria-api/internal/application/catalog"
	"github.com/jhoicas/pizzeria-api/internal/application/fulfillment"
	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
	infradelivery "github.com/jhoicas/pizzeria-api/internal/infrastructure/delivery"
	"github.com/jhoicas/pizzeria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pizzeria-api/internal/interfaces/http"
	"github.com/jhoicas/pizzeria-api/pkg/config"
	"github.com/jhoicas/pizzeria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ingredientRepo := postgres.NewIngredientRepository(pool)
	stockRepo := postgres.NewStockBatchRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ingredientUC := catalog.NewIngredientUseCase(ingredientRepo)
	recipeUC := catalog.NewRecipeUseCase(recipeRepo)
	stockUC := inventory.NewStockUseCase(stockRepo, ingredientRepo)
	movementUC := inventory.NewMovementUseCase(txRunner, ingredientRepo, movementRepo)
	prepareUC := inventory.NewPrepareUseCase(movementUC, recipeRepo, stockRepo)
	checker := availability.NewUseCase(stockRepo, recipeRepo)

	deliveryClient := infradelivery.NewClient(
		cfg.Services.DeliveryURL,
		time.Duration(cfg.Services.TimeoutSeconds)*time.Second,
		log,
	)
	inventoryPort := fulfillment.NewLocalInventory(recipeRepo, checker, prepareUC)
	orderUC := fulfillment.NewOrderUseCase(orderRepo, inventoryPort, deliveryClient, log)
	drafts := fulfillment.NewDraftManager()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IngredientUC: ingredientUC,
		RecipeUC:     recipeUC,
		StockUC:      stockUC,
		MovementUC:   movementUC,
		PrepareUC:    prepareUC,
		Checker:      checker,
		OrderUC:      orderUC,
		Drafts:       drafts,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
