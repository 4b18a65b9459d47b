package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestUrgency_SinExistenciasEsCritica(t *testing.T) {
	assert.Equal(t, inventory.UrgencyCritical, inventory.Urgency(d("0"), d("10")),
		"cantidad cero debe clasificar CRITICA")
}

func TestUrgency_BajoMitadDelUmbralEsAlta(t *testing.T) {
	assert.Equal(t, inventory.UrgencyHigh, inventory.Urgency(d("4"), d("10")),
		"menos de la mitad del umbral debe clasificar ALTA")
}

func TestUrgency_MitadExactaEsMedia(t *testing.T) {
	// El corte es estricto: exactamente la mitad no es ALTA.
	assert.Equal(t, inventory.UrgencyMedium, inventory.Urgency(d("5"), d("10")),
		"la mitad exacta del umbral debe clasificar MEDIA")
}

func TestUrgency_EnElUmbralEsMedia(t *testing.T) {
	assert.Equal(t, inventory.UrgencyMedium, inventory.Urgency(d("10"), d("10")),
		"cantidad igual al umbral debe clasificar MEDIA")
}

func batch(name, lot, qty, threshold string) *entity.StockItem {
	return &entity.StockItem{
		StockBatch: entity.StockBatch{
			IngredientID: "ing-" + name,
			Quantity:     d(qty),
			MinThreshold: d(threshold),
			Lot:          lot,
		},
		IngredientName: name,
		Unit:           "gr",
	}
}

func TestBuildAlerts_OrdenaPorUrgenciaDescendente(t *testing.T) {
	items := []*entity.StockItem{
		batch("harina", "L1", "8", "10"),   // MEDIA
		batch("queso", "L2", "0", "10"),    // CRITICA
		batch("tomate", "L3", "3", "10"),   // ALTA
		batch("aceituna", "L4", "0", "5"),  // CRITICA
	}

	alerts := inventory.BuildAlerts(items)

	assert.Len(t, alerts, 4)
	assert.Equal(t, inventory.UrgencyCritical, alerts[0].Urgency)
	assert.Equal(t, inventory.UrgencyCritical, alerts[1].Urgency)
	assert.Equal(t, inventory.UrgencyHigh, alerts[2].Urgency)
	assert.Equal(t, inventory.UrgencyMedium, alerts[3].Urgency)

	// El orden entre iguales es estable: queso llegó antes que aceituna.
	assert.Equal(t, "queso", alerts[0].IngredientName)
	assert.Equal(t, "aceituna", alerts[1].IngredientName)
}

func TestBuildAlerts_DeficitNuncaNegativo(t *testing.T) {
	items := []*entity.StockItem{batch("harina", "L1", "12", "10")}

	alerts := inventory.BuildAlerts(items)

	assert.True(t, alerts[0].Deficit.IsZero(),
		"un lote por encima del umbral no puede reportar déficit negativo")
}

func TestBuildAlerts_CalculaDeficit(t *testing.T) {
	items := []*entity.StockItem{batch("queso", "L1", "3", "10")}

	alerts := inventory.BuildAlerts(items)

	assert.True(t, alerts[0].Deficit.Equal(d("7")),
		"el déficit debe ser umbral menos cantidad: esperado 7, obtenido %s", alerts[0].Deficit)
}
