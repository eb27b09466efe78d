package postgres

import (
	"context"
	"fmt"

	"github.com/salcar420/InnovaLogix/internal/domain/entity"
	"github.com/salcar420/InnovaLogix/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// Solo INSERT y SELECT: la tabla es solo-append.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento y asigna su ID.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO inventory_movements (product_id, type, quantity, previous_stock, new_stock, reference, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.ProductID, m.Type, m.Quantity, m.PreviousStock, m.NewStock, m.Reference, m.Timestamp,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByProduct devuelve el kardex de un producto, más reciente primero.
func (r *MovementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, product_id, type, quantity, previous_stock, new_stock, reference, ts
		FROM inventory_movements
		WHERE product_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.Reference, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
