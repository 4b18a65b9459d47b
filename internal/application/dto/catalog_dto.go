package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// IngredientRequest body para alta y edición de ingredientes.
type IngredientRequest struct {
	Name          string          `json:"nombre"`
	Unit          string          `json:"unidad_medida"`
	UnitCost      decimal.Decimal `json:"costo_unitario"`
	Allergens     string          `json:"alergenos"`
	ShelfLifeDays int             `json:"vida_util_dias"`
	Supplier      string          `json:"proveedor"`
}

// IngredientResponse representación pública de un ingrediente.
type IngredientResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"nombre"`
	Unit          string          `json:"unidad_medida"`
	UnitCost      decimal.Decimal `json:"costo_unitario"`
	Allergens     string          `json:"alergenos,omitempty"`
	ShelfLifeDays int             `json:"vida_util_dias"`
	Supplier      string          `json:"proveedor,omitempty"`
	CreatedAt     time.Time       `json:"creado_en"`
	UpdatedAt     time.Time       `json:"actualizado_en"`
}

// ToIngredientResponse mapea la entidad a su representación pública.
func ToIngredientResponse(ing *entity.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:            ing.ID,
		Name:          ing.Name,
		Unit:          ing.Unit,
		UnitCost:      ing.UnitCost,
		Allergens:     ing.Allergens,
		ShelfLifeDays: ing.ShelfLifeDays,
		Supplier:      ing.Supplier,
		CreatedAt:     ing.CreatedAt,
		UpdatedAt:     ing.UpdatedAt,
	}
}

// ToIngredientResponses mapea la lista completa.
func ToIngredientResponses(list []*entity.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(list))
	for _, ing := range list {
		out = append(out, ToIngredientResponse(ing))
	}
	return out
}

// RecipeIngredientRequest línea de requerimiento en el body de recetas.
type RecipeIngredientRequest struct {
	IngredientID string          `json:"ingrediente_id"`
	Required     decimal.Decimal `json:"cantidad_requerida"`
}

// RecipeRequest body para alta y edición de recetas.
// Ingredients nil en edición conserva la lista actual.
type RecipeRequest struct {
	Name              string                    `json:"nombre"`
	PizzaType         string                    `json:"tipo_pizza"`
	Size              string                    `json:"tamano"`
	BasePrice         decimal.Decimal           `json:"precio_base"`
	SpoilageTolerance decimal.Decimal           `json:"tolerancia_merma"`
	Ingredients       []RecipeIngredientRequest `json:"ingredientes"`
}

// RecipeIngredientResponse línea de requerimiento con los datos del ingrediente.
type RecipeIngredientResponse struct {
	IngredientID string          `json:"ingrediente_id"`
	Name         string          `json:"nombre"`
	Unit         string          `json:"unidad_medida"`
	Required     decimal.Decimal `json:"cantidad_requerida"`
	UnitCost     decimal.Decimal `json:"costo_unitario"`
}

// RecipeResponse representación pública de una receta con costo derivado.
type RecipeResponse struct {
	ID                string                     `json:"id"`
	Name              string                     `json:"nombre"`
	PizzaType         string                     `json:"tipo_pizza"`
	Size              string                     `json:"tamano"`
	BasePrice         decimal.Decimal            `json:"precio_base"`
	SpoilageTolerance decimal.Decimal            `json:"tolerancia_merma"`
	CostEstimate      decimal.Decimal            `json:"costo_estimado"`
	Ingredients       []RecipeIngredientResponse `json:"ingredientes"`
	CreatedAt         time.Time                  `json:"creado_en"`
	UpdatedAt         time.Time                  `json:"actualizado_en"`
}

// ToRecipeResponse mapea la entidad a su representación pública.
func ToRecipeResponse(r *entity.Recipe) RecipeResponse {
	lines := make([]RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		lines = append(lines, RecipeIngredientResponse{
			IngredientID: ri.IngredientID,
			Name:         ri.Name,
			Unit:         ri.Unit,
			Required:     ri.Required,
			UnitCost:     ri.UnitCost,
		})
	}
	return RecipeResponse{
		ID:                r.ID,
		Name:              r.Name,
		PizzaType:         r.PizzaType,
		Size:              r.Size,
		BasePrice:         r.BasePrice,
		SpoilageTolerance: r.SpoilageTolerance,
		CostEstimate:      r.CostEstimate(),
		Ingredients:       lines,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// ToRecipeResponses mapea la lista completa.
func ToRecipeResponses(list []*entity.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ToRecipeResponse(r))
	}
	return out
}
