package sales

import (
	"context"

	"github.com/salcar420/InnovaLogix/internal/domain/entity"
	"github.com/salcar420/InnovaLogix/internal/domain/repository"
)

// UseCase consultas de ventas. El registro de ventas no vive aquí: es una
// mutación de stock y la ejecuta el motor de inventario.
type UseCase struct {
	saleRepo repository.SaleRepository
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{saleRepo: saleRepo}
}

// List devuelve las ventas con sus líneas, más reciente primero.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Sale, error) {
	return uc.saleRepo.List()
}
