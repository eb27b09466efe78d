package catalog

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

// ProductUseCase CRUD de catálogo. El alta escribe el producto y su fila
// INITIAL_STOCK en la misma transacción; la edición nunca toca el stock.
type ProductUseCase struct {
	txRunner    inventory.TxRunner
	engine      *inventory.Engine
	productRepo repository.ProductRepository
	cache       inventory.StockCache
}

// NewProductUseCase construye el caso de uso de catálogo.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	engine *inventory.Engine,
	productRepo repository.ProductRepository,
	cache inventory.StockCache,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, engine: engine, productRepo: productRepo, cache: cache}
}

// Create da de alta un producto. Si nace con stock, el kardex arranca con
// un movimiento INITIAL_STOCK de 0 → stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock inicial negativo", domain.ErrInvalidInput)
	}

	p := &entity.Product{
		Name:     in.Name,
		Price:    in.Price,
		Cost:     in.Cost,
		Stock:    in.Stock,
		MinStock: in.MinStock,
		Category: in.Category,
		Image:    in.Image,
	}

	now := time.Now()
	err := uc.txRunner.Run(ctx, func(r inventory.Repos) error {
		if err := r.Products.Create(p); err != nil {
			return err
		}
		return uc.engine.RegisterInitialStockInTx(r, p, now)
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Set(p.ID, p.Name, p.Stock)
	return p, nil
}

// List devuelve el catálogo completo.
func (uc *ProductUseCase) List(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.List()
}

// GetByID devuelve un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, id)
	}
	return p, nil
}

// Update edita los campos de catálogo. El stock actual se preserva tal
// cual: corregirlo es un ajuste del motor, no una edición.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*entity.Product, error) {
	p, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.Price = in.Price
	p.Cost = in.Cost
	p.MinStock = in.MinStock
	p.Category = in.Category
	p.Image = in.Image

	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	uc.cache.Set(p.ID, p.Name, p.Stock)
	return p, nil
}

// Delete elimina un producto del catálogo y retira su entrada del cache.
// El kardex se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	if err := uc.productRepo.Delete(id); err != nil {
		return err
	}
	uc.cache.Delete(id)
	return nil
}
