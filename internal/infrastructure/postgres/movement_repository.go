package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
	"github.com/jhoicas/pizzeria-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: la tabla es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	lot := (*string)(nil)
	if m.Lot != "" {
		lot = &m.Lot
	}
	query := `
		INSERT INTO inventory_movements (id, ingredient_id, type, reason, quantity, reference, actor, lot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.IngredientID, m.Type, m.Reason, m.Quantity, m.Reference, m.Actor, lot, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create movement: %w", errInvalidReference(err))
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

const movementColumns = `
	m.id, m.ingredient_id, m.type, m.reason, m.quantity, m.reference, m.actor, m.lot, m.created_at,
	i.name, i.unit`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var lot *string
	err := row.Scan(
		&m.ID, &m.IngredientID, &m.Type, &m.Reason, &m.Quantity, &m.Reference,
		&m.Actor, &lot, &m.CreatedAt, &m.IngredientName, &m.Unit,
	)
	if err != nil {
		return nil, err
	}
	if lot != nil {
		m.Lot = *lot
	}
	return &m, nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements m
		INNER JOIN ingredients i ON i.id = m.ingredient_id
		WHERE m.id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List devuelve movimientos filtrados, del más reciente al más antiguo.
// Sin cursor en servidor: cada llamada es finita y reiniciable.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements m
		INNER JOIN ingredients i ON i.id = m.ingredient_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.IngredientID != "" {
		query += fmt.Sprintf(" AND m.ingredient_id = $%d", pos)
		args = append(args, filter.IngredientID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND m.type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += " ORDER BY m.created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, filter.Limit)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SummarizeByPeriod agrega entradas, salidas y conteo por ingrediente en un rango.
// Consulta pura, sin efectos.
func (r *MovementRepo) SummarizeByPeriod(from, to time.Time) ([]repository.MovementSummary, error) {
	query := `
		SELECT
			m.ingredient_id,
			i.name,
			COALESCE(SUM(CASE WHEN m.type = 'ENTRADA' THEN m.quantity ELSE 0 END), 0) AS total_entries,
			COALESCE(SUM(CASE WHEN m.type = 'SALIDA' THEN m.quantity ELSE 0 END), 0) AS total_exits,
			COUNT(*) AS movement_count
		FROM inventory_movements m
		INNER JOIN ingredients i ON i.id = m.ingredient_id
		WHERE m.created_at BETWEEN $1 AND $2
		GROUP BY m.ingredient_id, i.name
		ORDER BY i.name`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("summarize movements: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementSummary
	for rows.Next() {
		var s repository.MovementSummary
		if err := rows.Scan(&s.IngredientID, &s.IngredientName, &s.TotalEntries,
			&s.TotalExits, &s.MovementCount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
