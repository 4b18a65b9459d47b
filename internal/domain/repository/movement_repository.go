package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// MovementFilter filtros para el listado de movimientos.
type MovementFilter struct {
	IngredientID string
	Type         string // ENTRADA | SALIDA, vacío = todos
	From         *time.Time
	To           *time.Time
	Limit        int
}

// MovementSummary totales de entradas/salidas por ingrediente en un período.
type MovementSummary struct {
	IngredientID   string          `json:"ingrediente_id"`
	IngredientName string          `json:"ingrediente"`
	TotalEntries   decimal.Decimal `json:"total_entradas"`
	TotalExits     decimal.Decimal `json:"total_salidas"`
	MovementCount  int             `json:"total_movimientos"`
}

// MovementRepository define el puerto del libro de movimientos (append-only).
// Los movimientos nunca se actualizan ni se borran.
type MovementRepository interface {
	Create(m *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// List devuelve movimientos ordenados del más reciente al más antiguo.
	List(filter MovementFilter) ([]*entity.Movement, error)
	// SummarizeByPeriod agrega entradas, salidas y conteo por ingrediente.
	SummarizeByPeriod(from, to time.Time) ([]MovementSummary, error)
}
