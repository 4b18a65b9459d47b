package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación de StockBatchRepository sobre PostgreSQL (usable con pool o tx).
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

const stockItemColumns = `
	s.id, s.ingredient_id, s.quantity, s.min_threshold, s.lot, s.expiry_date, s.created_at,
	i.name, i.unit, i.supplier`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	err := row.Scan(
		&it.ID, &it.IngredientID, &it.Quantity, &it.MinThreshold, &it.Lot,
		&it.ExpiryDate, &it.CreatedAt, &it.IngredientName, &it.Unit, &it.Supplier,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListAll devuelve todos los lotes de ingredientes activos, ordenados por nombre.
func (r *StockBatchRepo) ListAll() ([]*entity.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_batches s
		INNER JOIN ingredients i ON i.id = s.ingredient_id
		WHERE i.active = TRUE
		ORDER BY i.name, s.lot`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

// ListByIngredient devuelve los lotes de un ingrediente activo.
func (r *StockBatchRepo) ListByIngredient(ingredientID string) ([]*entity.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_batches s
		INNER JOIN ingredients i ON i.id = s.ingredient_id
		WHERE s.ingredient_id = $1 AND i.active = TRUE
		ORDER BY s.lot`
	rows, err := r.q.Query(context.Background(), query, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list stock by ingredient: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

func collectStockItems(rows pgx.Rows) ([]*entity.StockItem, error) {
	var list []*entity.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Upsert inserta el lote o reemplaza cantidad/umbral/vencimiento si ya existe
// (ingrediente, lote). Idempotente: dos upserts del mismo lote dejan una sola fila.
func (r *StockBatchRepo) Upsert(batch *entity.StockBatch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_batches (id, ingredient_id, quantity, min_threshold, lot, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (ingredient_id, lot)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              min_threshold = EXCLUDED.min_threshold,
		              expiry_date = EXCLUDED.expiry_date`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.IngredientID, batch.Quantity, batch.MinThreshold, batch.Lot, batch.ExpiryDate,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("upsert stock batch: %w", errInvalidReference(err))
		}
		return fmt.Errorf("upsert stock batch: %w", err)
	}
	return nil
}

// SumAvailable suma la cantidad disponible de todos los lotes del ingrediente.
func (r *StockBatchRepo) SumAvailable(ingredientID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_batches WHERE ingredient_id = $1`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, ingredientID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum available: %w", err)
	}
	return total, nil
}

// BelowThreshold devuelve los lotes con cantidad <= umbral mínimo (ingredientes activos).
func (r *StockBatchRepo) BelowThreshold() ([]*entity.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + `
		FROM stock_batches s
		INNER JOIN ingredients i ON i.id = s.ingredient_id
		WHERE s.quantity <= s.min_threshold AND i.active = TRUE
		ORDER BY i.name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list below threshold: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

// ListForDepletion bloquea (FOR UPDATE) los lotes con existencias del ingrediente,
// ordenados por vencimiento ascendente y lote ascendente como desempate (FEFO).
func (r *StockBatchRepo) ListForDepletion(ingredientID string) ([]*entity.StockBatch, error) {
	query := `
		SELECT id, ingredient_id, quantity, min_threshold, lot, expiry_date, created_at
		FROM stock_batches
		WHERE ingredient_id = $1 AND quantity > 0
		ORDER BY expiry_date ASC, lot ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list for depletion: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		if err := rows.Scan(&b.ID, &b.IngredientID, &b.Quantity, &b.MinThreshold,
			&b.Lot, &b.ExpiryDate, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// GetByLotForUpdate bloquea y devuelve un lote puntual; nil si no existe.
func (r *StockBatchRepo) GetByLotForUpdate(ingredientID, lot string) (*entity.StockBatch, error) {
	query := `
		SELECT id, ingredient_id, quantity, min_threshold, lot, expiry_date, created_at
		FROM stock_batches
		WHERE ingredient_id = $1 AND lot = $2
		FOR UPDATE`
	return r.getBatch(query, ingredientID, lot)
}

// OldestForUpdate bloquea y devuelve el lote de creación más antigua; nil si no hay.
func (r *StockBatchRepo) OldestForUpdate(ingredientID string) (*entity.StockBatch, error) {
	query := `
		SELECT id, ingredient_id, quantity, min_threshold, lot, expiry_date, created_at
		FROM stock_batches
		WHERE ingredient_id = $1
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE`
	return r.getBatch(query, ingredientID)
}

func (r *StockBatchRepo) getBatch(query string, args ...any) (*entity.StockBatch, error) {
	var b entity.StockBatch
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&b.ID, &b.IngredientID, &b.Quantity, &b.MinThreshold, &b.Lot, &b.ExpiryDate, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock batch: %w", err)
	}
	return &b, nil
}

// UpdateQuantity fija la cantidad de un lote (la fila debe estar bloqueada por el caller).
func (r *StockBatchRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_batches SET quantity = $1 WHERE id = $2`, quantity, id)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	return nil
}
