package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/salcar420/InnovaLogix/internal/domain/entity"
	"github.com/salcar420/InnovaLogix/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = "id, supplier_id, supplier_name, total, date, invoice_number, status, estimated_delivery"

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta cabecera y líneas, asignando IDs.
func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchases (supplier_id, supplier_name, total, date, invoice_number, status, estimated_delivery)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.SupplierID, p.SupplierName, p.Total, p.Date, p.InvoiceNumber, p.Status, p.EstimatedDelivery,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}

	for i := range p.Items {
		it := &p.Items[i]
		it.PurchaseID = p.ID
		err := r.q.QueryRow(ctx, `
			INSERT INTO purchase_items (purchase_id, product_id, product_name, quantity, cost)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			it.PurchaseID, it.ProductID, it.ProductName, it.Quantity, it.Cost,
		).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("create purchase item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseRepo) get(id int64, forUpdate bool) (*entity.Purchase, error) {
	ctx := context.Background()
	query := "SELECT " + purchaseColumns + " FROM purchases WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}

	var p entity.Purchase
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.SupplierID, &p.SupplierName, &p.Total, &p.Date,
		&p.InvoiceNumber, &p.Status, &p.EstimatedDelivery,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}

	items, err := r.itemsFor(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

// GetByID obtiene la compra con sus líneas; (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(id int64) (*entity.Purchase, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la compra bloqueando la cabecera (SELECT FOR UPDATE).
func (r *PurchaseRepo) GetForUpdate(id int64) (*entity.Purchase, error) {
	return r.get(id, true)
}

func (r *PurchaseRepo) itemsFor(ctx context.Context, purchaseID int64) ([]entity.PurchaseItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_id, product_id, product_name, quantity, cost
		FROM purchase_items WHERE purchase_id = $1 ORDER BY id`, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()

	var items []entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Cost); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List devuelve las compras con sus líneas, más reciente primero.
func (r *PurchaseRepo) List() ([]*entity.Purchase, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, "SELECT "+purchaseColumns+" FROM purchases ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var list []*entity.Purchase
	byID := make(map[int64]*entity.Purchase)
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.SupplierName, &p.Total, &p.Date,
			&p.InvoiceNumber, &p.Status, &p.EstimatedDelivery); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT id, purchase_id, product_id, product_name, quantity, cost
		FROM purchase_items ORDER BY purchase_id DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it entity.PurchaseItem
		if err := itemRows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Cost); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		if p, ok := byID[it.PurchaseID]; ok {
			p.Items = append(p.Items, it)
		}
	}
	return list, itemRows.Err()
}

// UpdateStatus fija el estado de la compra. La validación de la máquina
// de estados es responsabilidad del motor, no del repositorio.
func (r *PurchaseRepo) UpdateStatus(id int64, status string) error {
	_, err := r.q.Exec(context.Background(),
		"UPDATE purchases SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	return nil
}
