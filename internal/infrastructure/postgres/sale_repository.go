package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/salcar420/InnovaLogix/internal/domain/entity"
	"github.com/salcar420/InnovaLogix/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// CreateHeader inserta la cabecera de venta y asigna su ID.
func (r *SaleRepo) CreateHeader(s *entity.Sale) error {
	query := `
		INSERT INTO sales (client_ref, date, total, item_count, payment_method, receipt_type, receipt_number, client_name, client_doc, client_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		s.ClientRef, s.Date, s.Total, s.ItemCount, s.PaymentMethod,
		s.ReceiptType, s.ReceiptNumber, s.ClientName, s.ClientDoc, s.ClientAddress,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de venta (snapshot de nombre y precio).
func (r *SaleRepo) CreateItem(it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (sale_id, product_name, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		it.SaleID, it.ProductName, it.Quantity, it.Price,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("create sale item: %w", err)
	}
	return nil
}

// List devuelve las ventas con sus líneas, más reciente primero.
func (r *SaleRepo) List() ([]*entity.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT id, client_ref, date, total, item_count, payment_method, receipt_type, receipt_number, client_name, client_doc, client_address
		FROM sales ORDER BY id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	byID := make(map[int64]*entity.Sale)
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ClientRef, &s.Date, &s.Total, &s.ItemCount,
			&s.PaymentMethod, &s.ReceiptType, &s.ReceiptNumber,
			&s.ClientName, &s.ClientDoc, &s.ClientAddress); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
		byID[s.ID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_name, quantity, price
		FROM sale_items ORDER BY sale_id DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it entity.SaleItem
		if err := itemRows.Scan(&it.ID, &it.SaleID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return list, itemRows.Err()
}

// TotalSoldSince agrega unidades vendidas por nombre de producto desde la
// fecha dada (insumo de la política dinámica de reposición).
func (r *SaleRepo) TotalSoldSince(since time.Time) (map[string]int, error) {
	query := `
		SELECT si.product_name, COALESCE(SUM(si.quantity), 0)
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.id
		WHERE s.date >= $1
		GROUP BY si.product_name`
	rows, err := r.q.Query(context.Background(), query, since)
	if err != nil {
		return nil, fmt.Errorf("total sold: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var name string
		var total int
		if err := rows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("scan total sold: %w", err)
		}
		totals[name] = total
	}
	return totals, rows.Err()
}
