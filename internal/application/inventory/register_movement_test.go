package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

var (
	day1 = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	day3 = time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)
)

func setupMovements(batches ...*entity.StockBatch) (*inventory.MovementUseCase, *fakeStockRepo, *fakeMovementRepo) {
	stockRepo := &fakeStockRepo{batches: batches}
	movRepo := &fakeMovementRepo{}
	ingRepo := newFakeIngredientRepo(&entity.Ingredient{ID: "ing-1", Name: "harina", Unit: "gr", Active: true})
	tx := &fakeTxRunner{movRepo: movRepo, stockRepo: stockRepo}
	return inventory.NewMovementUseCase(tx, ingRepo, movRepo), stockRepo, movRepo
}

func lote(id, lot, qty string, expiry time.Time, created time.Time) *entity.StockBatch {
	return &entity.StockBatch{
		ID:           id,
		IngredientID: "ing-1",
		Quantity:     d(qty),
		Lot:          lot,
		ExpiryDate:   expiry,
		CreatedAt:    created,
	}
}

func TestRegisterExit_DescuentaEnOrdenFEFO(t *testing.T) {
	// El lote B vence antes aunque A se creó primero: FEFO manda por vencimiento.
	uc, stockRepo, _ := setupMovements(
		lote("A", "L-A", "200", day3, day1),
		lote("B", "L-B", "100", day1, day2),
	)

	mov, consumed, err := uc.RegisterExit(context.Background(), inventory.ExitInput{
		IngredientID: "ing-1",
		Quantity:     d("150"),
		Reason:       "venta",
		Actor:        "cajero@pizzeria.local",
	})

	require.NoError(t, err)
	require.Len(t, consumed, 2)
	assert.Equal(t, "L-B", consumed[0].Lot, "primero el lote que vence antes")
	assert.True(t, consumed[0].QuantityUsed.Equal(d("100")))
	assert.True(t, consumed[0].RemainingAfter.IsZero())
	assert.Equal(t, "L-A", consumed[1].Lot)
	assert.True(t, consumed[1].QuantityUsed.Equal(d("50")))
	assert.True(t, consumed[1].RemainingAfter.Equal(d("150")))

	assert.True(t, stockRepo.find("B").Quantity.IsZero())
	assert.True(t, stockRepo.find("A").Quantity.Equal(d("150")))

	assert.Equal(t, entity.MovementTypeExit, mov.Type)
	assert.True(t, mov.Quantity.Equal(d("150")), "el movimiento registra la cantidad en positivo")
}

func TestRegisterExit_EmpateDeVencimientoDesempataPorLote(t *testing.T) {
	uc, _, _ := setupMovements(
		lote("A", "L-2", "100", day1, day1),
		lote("B", "L-1", "100", day1, day1),
	)

	_, consumed, err := uc.RegisterExit(context.Background(), inventory.ExitInput{
		IngredientID: "ing-1",
		Quantity:     d("150"),
	})

	require.NoError(t, err)
	assert.Equal(t, "L-1", consumed[0].Lot, "a igual vencimiento gana el lote menor")
	assert.Equal(t, "L-2", consumed[1].Lot)
}

func TestRegisterExit_StockInsuficienteNoDescuentaNada(t *testing.T) {
	uc, stockRepo, movRepo := setupMovements(
		lote("A", "L-A", "50", day1, day1),
		lote("B", "L-B", "30", day2, day1),
	)

	_, _, err := uc.RegisterExit(context.Background(), inventory.ExitInput{
		IngredientID: "ing-1",
		Quantity:     d("100"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, []string{"harina"}, stockErr.Missing)

	// Ningún lote cambió y el libro quedó vacío.
	assert.True(t, stockRepo.find("A").Quantity.Equal(d("50")))
	assert.True(t, stockRepo.find("B").Quantity.Equal(d("30")))
	assert.Empty(t, movRepo.movements)
}

func TestRegisterExit_IgualdadExactaAlcanza(t *testing.T) {
	uc, stockRepo, _ := setupMovements(lote("A", "L-A", "100", day1, day1))

	_, consumed, err := uc.RegisterExit(context.Background(), inventory.ExitInput{
		IngredientID: "ing-1",
		Quantity:     d("100"),
	})

	require.NoError(t, err)
	require.Len(t, consumed, 1)
	assert.True(t, stockRepo.find("A").Quantity.IsZero(),
		"disponible igual a lo pedido debe alcanzar, sin margen extra")
}

func TestRegisterExit_CantidadCeroInvalida(t *testing.T) {
	uc, _, _ := setupMovements(lote("A", "L-A", "100", day1, day1))

	_, _, err := uc.RegisterExit(context.Background(), inventory.ExitInput{
		IngredientID: "ing-1",
		Quantity:     d("0"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterExit_IngredienteInexistente(t *testing.T) {
	uc, _, _ := setupMovements()

	_, _, err := uc.RegisterExit(context.Background(), inventory.ExitInput{
		IngredientID: "no-existe",
		Quantity:     d("10"),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterEntry_ConLoteSumaAlLoteIndicado(t *testing.T) {
	uc, stockRepo, movRepo := setupMovements(
		lote("A", "L-A", "100", day1, day1),
		lote("B", "L-B", "100", day2, day2),
	)

	mov, err := uc.RegisterEntry(context.Background(), inventory.EntryInput{
		IngredientID: "ing-1",
		Quantity:     d("40"),
		Lot:          "L-B",
		Reason:       "compra",
	})

	require.NoError(t, err)
	assert.True(t, stockRepo.find("B").Quantity.Equal(d("140")))
	assert.True(t, stockRepo.find("A").Quantity.Equal(d("100")), "el otro lote no se toca")
	assert.Equal(t, entity.MovementTypeEntry, mov.Type)
	assert.Equal(t, "L-B", mov.Lot)
	require.Len(t, movRepo.movements, 1)
}

func TestRegisterEntry_SinLoteRecargaElMasAntiguo(t *testing.T) {
	uc, stockRepo, _ := setupMovements(
		lote("A", "L-A", "100", day1, day2), // creado después
		lote("B", "L-B", "100", day2, day1), // creado primero
	)

	_, err := uc.RegisterEntry(context.Background(), inventory.EntryInput{
		IngredientID: "ing-1",
		Quantity:     d("40"),
	})

	require.NoError(t, err)
	assert.True(t, stockRepo.find("B").Quantity.Equal(d("140")),
		"sin lote explícito la entrada recarga el lote de creación más antigua")
	assert.True(t, stockRepo.find("A").Quantity.Equal(d("100")))
}

func TestRegisterEntry_LoteInexistenteFalla(t *testing.T) {
	uc, _, movRepo := setupMovements(lote("A", "L-A", "100", day1, day1))

	_, err := uc.RegisterEntry(context.Background(), inventory.EntryInput{
		IngredientID: "ing-1",
		Quantity:     d("40"),
		Lot:          "L-X",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound,
		"las entradas nunca crean lotes nuevos")
	assert.Empty(t, movRepo.movements)
}

func TestRegisterEntry_SinLotesExistentesFalla(t *testing.T) {
	uc, _, _ := setupMovements()

	_, err := uc.RegisterEntry(context.Background(), inventory.EntryInput{
		IngredientID: "ing-1",
		Quantity:     d("40"),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
