package repository

import (
	"github.com/shopspring/decimal"

	"github.com/salcar420/InnovaLogix/internal/domain/entity"
)

// ProductRepository puerto de persistencia de productos.
// Las implementaciones devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(p *entity.Product) error // asigna p.ID
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila (SELECT FOR UPDATE).
	// Es el único mecanismo de exclusión mutua sobre el stock: dos ventas
	// concurrentes del mismo producto se serializan aquí.
	GetForUpdate(id int64) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(p *entity.Product) error // no toca Stock
	UpdateStock(id int64, stock int) error
	UpdateCost(id int64, cost decimal.Decimal) error
	Delete(id int64) error
}
