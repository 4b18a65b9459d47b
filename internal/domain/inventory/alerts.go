package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// Niveles de urgencia de una alerta de reabastecimiento.
const (
	UrgencyCritical = "CRITICA"
	UrgencyHigh     = "ALTA"
	UrgencyMedium   = "MEDIA"
)

var urgencyRank = map[string]int{
	UrgencyCritical: 3,
	UrgencyHigh:     2,
	UrgencyMedium:   1,
}

// LowStockAlert describe un lote por debajo de su umbral mínimo.
type LowStockAlert struct {
	IngredientID   string          `json:"ingrediente_id"`
	IngredientName string          `json:"nombre"`
	Lot            string          `json:"lote"`
	Available      decimal.Decimal `json:"cantidad_actual"`
	MinThreshold   decimal.Decimal `json:"umbral_minimo"`
	Unit           string          `json:"unidad_medida"`
	Supplier       string          `json:"proveedor"`
	Deficit        decimal.Decimal `json:"deficit"`
	Urgency        string          `json:"urgencia"`
}

// Urgency clasifica la severidad del faltante:
// CRITICA sin existencias, ALTA por debajo de la mitad del umbral, MEDIA el resto.
func Urgency(available, threshold decimal.Decimal) string {
	switch {
	case available.IsZero():
		return UrgencyCritical
	case available.LessThan(threshold.Div(decimal.NewFromInt(2))):
		return UrgencyHigh
	default:
		return UrgencyMedium
	}
}

// BuildAlerts convierte lotes bajo umbral en alertas ordenadas por urgencia
// descendente. El déficit nunca es negativo.
func BuildAlerts(items []*entity.StockItem) []LowStockAlert {
	alerts := make([]LowStockAlert, 0, len(items))
	for _, it := range items {
		deficit := it.MinThreshold.Sub(it.Quantity)
		if deficit.LessThan(decimal.Zero) {
			deficit = decimal.Zero
		}
		alerts = append(alerts, LowStockAlert{
			IngredientID:   it.IngredientID,
			IngredientName: it.IngredientName,
			Lot:            it.Lot,
			Available:      it.Quantity,
			MinThreshold:   it.MinThreshold,
			Unit:           it.Unit,
			Supplier:       it.Supplier,
			Deficit:        deficit,
			Urgency:        Urgency(it.Quantity, it.MinThreshold),
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return urgencyRank[alerts[i].Urgency] > urgencyRank[alerts[j].Urgency]
	})
	return alerts
}
