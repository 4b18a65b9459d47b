package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe define un producto preparable (tipo de pizza + tamaño) con sus
// requerimientos de ingredientes por unidad. La pareja (tipo, tamaño) es única
// entre recetas activas. El costo no se persiste: se deriva en cada lectura.
type Recipe struct {
	ID                string
	Name              string
	PizzaType         string
	Size              string
	BasePrice         decimal.Decimal
	SpoilageTolerance decimal.Decimal // tolerancia de merma en %
	Active            bool
	Ingredients       []RecipeIngredient
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RecipeIngredient es una línea de requerimiento de la receta.
// Name, Unit y UnitCost vienen del join con ingredientes activos.
type RecipeIngredient struct {
	IngredientID string
	Required     decimal.Decimal // cantidad requerida por unidad preparada
	Name         string
	Unit         string
	UnitCost     decimal.Decimal
}

// CostEstimate deriva el costo de la receta: Σ(cantidad requerida × costo unitario)
// sobre los ingredientes activos cargados. Nunca se persiste, por lo que siempre
// refleja los costos vigentes.
func (r *Recipe) CostEstimate() decimal.Decimal {
	total := decimal.Zero
	for _, ing := range r.Ingredients {
		total = total.Add(ing.Required.Mul(ing.UnitCost))
	}
	return total
}

// CostBreakdown desglosa costo, precio base y margen de una receta.
type CostBreakdown struct {
	RecipeID      string          `json:"receta_id"`
	CostEstimate  decimal.Decimal `json:"costo_estimado"`
	BasePrice     decimal.Decimal `json:"precio_base"`
	Margin        decimal.Decimal `json:"margen"`
	MarginPercent decimal.Decimal `json:"margen_porcentaje"`
}

// Breakdown calcula el desglose de costos de la receta.
// Si el precio base es cero el porcentaje de margen queda en cero.
func (r *Recipe) Breakdown() CostBreakdown {
	cost := r.CostEstimate()
	margin := r.BasePrice.Sub(cost)
	pct := decimal.Zero
	if r.BasePrice.GreaterThan(decimal.Zero) {
		pct = margin.Div(r.BasePrice).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return CostBreakdown{
		RecipeID:      r.ID,
		CostEstimate:  cost,
		BasePrice:     r.BasePrice,
		Margin:        margin,
		MarginPercent: pct,
	}
}
