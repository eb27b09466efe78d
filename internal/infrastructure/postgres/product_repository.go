package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/salcar420/InnovaLogix/internal/domain"
	"github.com/salcar420/InnovaLogix/internal/domain/entity"
	"github.com/salcar420/InnovaLogix/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, name, price, cost, stock, min_stock, category, image"

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Cost, &p.Stock, &p.MinStock, &p.Category, &p.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

// Create inserta el producto y asigna su ID.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (name, price, cost, stock, min_stock, category, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.Name, p.Price, p.Cost, p.Stock, p.MinStock, p.Category, p.Image,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: producto %q", domain.ErrDuplicate, p.Name)
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"
	return scanProduct(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1 FOR UPDATE"
	return scanProduct(r.q.QueryRow(context.Background(), query, id))
}

// List devuelve el catálogo completo ordenado por nombre.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := "SELECT " + productColumns + " FROM products ORDER BY name"
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Cost, &p.Stock, &p.MinStock, &p.Category, &p.Image); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza los campos de catálogo. Deliberadamente no toca stock.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $1, price = $2, cost = $3, min_stock = $4, category = $5, image = $6
		WHERE id = $7`
	_, err := r.q.Exec(context.Background(), query,
		p.Name, p.Price, p.Cost, p.MinStock, p.Category, p.Image, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: producto %q", domain.ErrDuplicate, p.Name)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija el contador de stock. Solo lo invoca el motor de
// inventario dentro de una transacción con la fila ya bloqueada.
func (r *ProductRepo) UpdateStock(id int64, stock int) error {
	_, err := r.q.Exec(context.Background(),
		"UPDATE products SET stock = $1 WHERE id = $2", stock, id)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// UpdateCost fija el costo unitario (al confirmar compras).
func (r *ProductRepo) UpdateCost(id int64, cost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		"UPDATE products SET cost = $1 WHERE id = $2", cost, id)
	if err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	return nil
}

// Delete elimina el producto. Los movimientos del kardex se conservan.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
