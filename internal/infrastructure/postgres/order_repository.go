package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL.
// Cada línea commitea por separado: el flujo de orden no es una sola transacción.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository construye el adaptador de órdenes.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

const orderColumns = `id, order_id, pizza_id, pizza_name, category, size, quantity, unit_price, total_price,
	recipe_id, delivery_mode, address, customer_name, cashier, status, stock_status, created_at`

func scanOrderItem(row pgx.Row) (*entity.OrderItem, error) {
	var it entity.OrderItem
	var pizzaID, pizzaName, category, recipeID, address, customerName *string
	err := row.Scan(
		&it.ID, &it.OrderID, &pizzaID, &pizzaName, &category, &it.Size,
		&it.Quantity, &it.UnitPrice, &it.TotalPrice, &recipeID, &it.DeliveryMode,
		&address, &customerName, &it.Cashier, &it.Status, &it.StockStatus, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if pizzaID != nil {
		it.PizzaID = *pizzaID
	}
	if pizzaName != nil {
		it.PizzaName = *pizzaName
	}
	if category != nil {
		it.Category = *category
	}
	if recipeID != nil {
		it.RecipeID = *recipeID
	}
	if address != nil {
		it.Address = *address
	}
	if customerName != nil {
		it.CustomerName = *customerName
	}
	return &it, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create persiste una línea de orden.
func (r *OrderRepo) Create(item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO order_items (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.pool.Exec(context.Background(), query,
		item.ID, item.OrderID, nullable(item.PizzaID), nullable(item.PizzaName),
		nullable(item.Category), item.Size, item.Quantity, item.UnitPrice, item.TotalPrice,
		nullable(item.RecipeID), item.DeliveryMode, nullable(item.Address),
		nullable(item.CustomerName), item.Cashier, item.Status, item.StockStatus, item.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert order item: %w", errInvalidReference(err))
		}
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene una línea de orden; nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.OrderItem, error) {
	query := `SELECT ` + orderColumns + ` FROM order_items WHERE id = $1`
	it, err := scanOrderItem(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return it, nil
}

// ListByOrderID devuelve todas las líneas de una orden.
func (r *OrderRepo) ListByOrderID(orderID string) ([]*entity.OrderItem, error) {
	query := `SELECT ` + orderColumns + ` FROM order_items WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list by order id: %w", err)
	}
	defer rows.Close()
	return collectOrderItems(rows)
}

// List devuelve líneas de orden paginadas, de la más reciente a la más antigua.
func (r *OrderRepo) List(limit, offset int) ([]*entity.OrderItem, error) {
	query := `SELECT ` + orderColumns + ` FROM order_items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	return collectOrderItems(rows)
}

func collectOrderItems(rows pgx.Rows) ([]*entity.OrderItem, error) {
	var list []*entity.OrderItem
	for rows.Next() {
		it, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// UpdateStockStatus actualiza el estado del paso de inventario de una línea.
func (r *OrderRepo) UpdateStockStatus(id, status string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE order_items SET stock_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update stock status: %w", err)
	}
	return nil
}

// UpdateStatus actualiza el estado de entrega de todas las líneas de la orden.
func (r *OrderRepo) UpdateStatus(orderID, status string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE order_items SET status = $1 WHERE order_id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
