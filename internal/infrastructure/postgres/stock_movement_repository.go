package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL (usable con pool o tx). El ledger es append-only: no hay UPDATE
// individual de movimientos; las únicas mutaciones son las de los cascades.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un nuevo movimiento.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, type, quantity, previous_quantity,
			new_quantity, reason, notes, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.PreviousQuantity, movement.NewQuantity, movement.Reason,
		movement.Notes, movement.PerformedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

const movementRefsQuery = `
	SELECT m.id, m.product_id, m.type, m.quantity, m.previous_quantity, m.new_quantity,
		m.reason, m.notes, m.performed_by, m.created_at,
		COALESCE(p.name, ''), COALESCE(p.sku, ''), COALESCE(u.name, '')
	FROM stock_movements m
	LEFT JOIN products p ON p.id = m.product_id
	LEFT JOIN users u ON u.id = m.performed_by`

// GetWithRefs obtiene un movimiento con producto y usuario resueltos.
func (r *StockMovementRepo) GetWithRefs(id string) (*repository.MovementRow, error) {
	var row repository.MovementRow
	m := &row.Movement
	err := r.q.QueryRow(context.Background(), movementRefsQuery+` WHERE m.id = $1`, id).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PreviousQuantity, &m.NewQuantity,
		&m.Reason, &m.Notes, &m.PerformedBy, &m.CreatedAt,
		&row.ProductName, &row.ProductSKU, &row.PerformedByName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &row, nil
}

// ListWithRefs lista movimientos del más reciente al más antiguo.
// productID vacío = todos los productos.
func (r *StockMovementRepo) ListWithRefs(productID string, limit, offset int) ([]*repository.MovementRow, error) {
	query := movementRefsQuery
	var args []any
	if productID != "" {
		args = append(args, productID)
		query += ` WHERE m.product_id = $1`
	}
	query += fmt.Sprintf(` ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*repository.MovementRow
	for rows.Next() {
		var row repository.MovementRow
		m := &row.Movement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PreviousQuantity, &m.NewQuantity,
			&m.Reason, &m.Notes, &m.PerformedBy, &m.CreatedAt,
			&row.ProductName, &row.ProductSKU, &row.PerformedByName,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// Count cuenta movimientos, opcionalmente filtrados por producto.
func (r *StockMovementRepo) Count(productID string) (int64, error) {
	query := `SELECT COUNT(*) FROM stock_movements`
	var args []any
	if productID != "" {
		query += ` WHERE product_id = $1`
		args = append(args, productID)
	}
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

// DeleteByProduct elimina los movimientos de un producto y devuelve filas afectadas.
func (r *StockMovementRepo) DeleteByProduct(productID string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete movements by product: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByProducts elimina los movimientos de un conjunto de productos.
func (r *StockMovementRepo) DeleteByProducts(productIDs []string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE product_id = ANY($1)`, productIDs)
	if err != nil {
		return 0, fmt.Errorf("delete movements by products: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByCategory elimina los movimientos de todos los productos de una
// categoría (cascade de segundo orden).
func (r *StockMovementRepo) DeleteByCategory(categoryID string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `
		DELETE FROM stock_movements
		WHERE product_id IN (SELECT id FROM products WHERE category_id = $1)`, categoryID)
	if err != nil {
		return 0, fmt.Errorf("delete movements by category: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DetachUser anula performed_by en los movimientos del usuario y anexa note al
// campo notes, preservando el rastro de auditoría.
func (r *StockMovementRepo) DetachUser(userID, note string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE stock_movements
		SET performed_by = NULL,
		    notes = TRIM(BOTH ' ' FROM notes || ' ' || $2)
		WHERE performed_by = $1`, userID, note)
	if err != nil {
		return 0, fmt.Errorf("detach user from movements: %w", err)
	}
	return cmd.RowsAffected(), nil
}
