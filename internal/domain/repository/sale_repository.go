package repository

import (
	"time"

	"github.com/salcar420/InnovaLogix/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas.
type SaleRepository interface {
	CreateHeader(s *entity.Sale) error   // asigna s.ID
	CreateItem(it *entity.SaleItem) error
	// List devuelve las ventas con sus líneas, más reciente primero.
	List() ([]*entity.Sale, error)
	// TotalSoldSince agrega unidades vendidas por nombre de producto desde
	// la fecha dada. Se agrupa por el nombre snapshot de la línea (no por
	// id): así lo consumen las alertas de reposición.
	TotalSoldSince(since time.Time) (map[string]int, error)
}
