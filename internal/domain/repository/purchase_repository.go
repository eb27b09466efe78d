package repository

import "github.com/salcar420/InnovaLogix/internal/domain/entity"

// PurchaseRepository puerto de persistencia de órdenes de compra.
// Las implementaciones devuelven (nil, nil) cuando la compra no existe.
type PurchaseRepository interface {
	Create(p *entity.Purchase) error // asigna p.ID y los IDs de las líneas
	GetByID(id int64) (*entity.Purchase, error)
	// GetForUpdate lee la compra con sus líneas bloqueando la cabecera,
	// para que confirmaciones y cancelaciones concurrentes se serialicen.
	GetForUpdate(id int64) (*entity.Purchase, error)
	List() ([]*entity.Purchase, error)
	UpdateStatus(id int64, status string) error
}
