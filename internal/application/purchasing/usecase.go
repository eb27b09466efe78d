package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
	"github.com/salcar420/InnovaLogix/internal/application/inventory"
	"github.com/salcar420/InnovaLogix/internal/domain"
	"github.com/salcar420/InnovaLogix/internal/domain/entity"
	"github.com/salcar420/InnovaLogix/internal/domain/repository"
)

// PurchaseUseCase registro y consulta de órdenes de compra. El cambio de
// estado (confirmar/cancelar) no vive aquí: es una mutación de stock y la
// ejecuta el motor de inventario.
type PurchaseUseCase struct {
	txRunner     inventory.TxRunner
	purchaseRepo repository.PurchaseRepository
}

// NewPurchaseUseCase construye el caso de uso de compras.
func NewPurchaseUseCase(txRunner inventory.TxRunner, purchaseRepo repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, purchaseRepo: purchaseRepo}
}

// Create registra la orden con sus líneas en una transacción. Nace
// Pending: sin efecto sobre stock ni kardex hasta confirmarse.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*entity.Purchase, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: compra sin líneas", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
		}
	}

	p := &entity.Purchase{
		SupplierID:        in.SupplierID,
		SupplierName:      in.SupplierName,
		Total:             in.Total,
		Date:              time.Now(),
		InvoiceNumber:     in.InvoiceNumber,
		Status:            entity.PurchaseStatusPending,
		EstimatedDelivery: in.EstimatedDelivery,
	}
	for _, it := range in.Items {
		p.Items = append(p.Items, entity.PurchaseItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Cost:        it.Cost,
		})
	}

	err := uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		return r.Purchases.Create(p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List devuelve las órdenes con sus líneas, más reciente primero.
func (uc *PurchaseUseCase) List(ctx context.Context) ([]*entity.Purchase, error) {
	return uc.purchaseRepo.List()
}
