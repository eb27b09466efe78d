package inventory

import (
	"context"
	"fmt"

	"github.com/salcar420/InnovaLogix/internal/domain"
	"github.com/salcar420/InnovaLogix/internal/domain/entity"
	"github.com/salcar420/InnovaLogix/internal/domain/repository"
)

// KardexUseCase proyección de solo lectura del historial de movimientos.
type KardexUseCase struct {
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
}

// NewKardexUseCase construye el caso de uso de kardex.
func NewKardexUseCase(movementRepo repository.MovementRepository, productRepo repository.ProductRepository) *KardexUseCase {
	return &KardexUseCase{movementRepo: movementRepo, productRepo: productRepo}
}

// Kardex devuelve los movimientos de un producto, más reciente primero.
func (uc *KardexUseCase) Kardex(ctx context.Context, productID int64, limit, offset int) ([]*entity.Movement, error) {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, productID)
	}
	if limit <= 0 {
		limit = 100
	}
	return uc.movementRepo.ListByProduct(productID, limit, offset)
}
