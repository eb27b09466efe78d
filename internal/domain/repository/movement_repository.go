package repository

import "github.com/salcar420/InnovaLogix/internal/domain/entity"

// MovementRepository puerto del kardex. Solo inserta y lista: los
// movimientos no se actualizan ni se borran.
type MovementRepository interface {
	Create(m *entity.Movement) error // asigna m.ID
	// ListByProduct devuelve el kardex de un producto, más reciente primero.
	ListByProduct(productID int64, limit, offset int) ([]*entity.Movement, error)
}
