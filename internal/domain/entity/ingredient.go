package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa un ingrediente perecedero del inventario.
// Nunca se borra físicamente: se desactiva (activo = false) cuando deja de usarse.
type Ingredient struct {
	ID            string
	Name          string
	Unit          string // unidad de medida: gr, ml, unidad, etc.
	UnitCost      decimal.Decimal
	Allergens     string
	ShelfLifeDays int // vida útil en días
	Supplier      string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
