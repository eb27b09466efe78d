package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salcar420/InnovaLogix/internal/application/inventory"
	"github.com/salcar420/InnovaLogix/internal/domain"
	"github.com/salcar420/InnovaLogix/internal/domain/entity"
)

// stubProductRepo repositorio de productos en memoria para el caso de uso.
type stubProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[int64]*entity.Product)}
}

func (r *stubProductRepo) Create(p *entity.Product) error {
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) GetForUpdate(id int64) (*entity.Product, error) { return r.GetByID(id) }

func (r *stubProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubProductRepo) Update(p *entity.Product) error {
	cur := r.products[p.ID]
	cp := *p
	cp.Stock = cur.Stock
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) UpdateStock(id int64, stock int) error           { r.products[id].Stock = stock; return nil }
func (r *stubProductRepo) UpdateCost(id int64, cost decimal.Decimal) error { return nil }
func (r *stubProductRepo) Delete(id int64) error                           { delete(r.products, id); return nil }

// stubCache registra altas y bajas de entradas.
type stubCache struct {
	entries map[int64]inventory.StockSnapshot
	deleted []int64
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[int64]inventory.StockSnapshot)}
}

func (c *stubCache) Set(productID int64, name string, stock int) {
	c.entries[productID] = inventory.StockSnapshot{ProductID: productID, Name: name, Stock: stock}
}

func (c *stubCache) Get(ctx context.Context, productID int64) (inventory.StockSnapshot, error) {
	return c.entries[productID], nil
}

func (c *stubCache) Delete(productID int64) {
	delete(c.entries, productID)
	c.deleted = append(c.deleted, productID)
}

func (c *stubCache) Refresh(ctx context.Context) error { return nil }

// stubTxRunner ejecuta el callback directo sobre los repos dados.
type stubTxRunner struct{ repos inventory.Repos }

func (r *stubTxRunner) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	return fn(r.repos)
}

func TestDeleteRemovesCacheEntry(t *testing.T) {
	repo := newStubProductRepo()
	cache := newStubCache()
	uc := NewProductUseCase(&stubTxRunner{repos: inventory.Repos{Products: repo}}, nil, repo, cache)

	p := &entity.Product{Name: "Pan", Stock: 12}
	require.NoError(t, repo.Create(p))
	cache.Set(p.ID, p.Name, p.Stock)

	require.NoError(t, uc.Delete(context.Background(), p.ID))

	// Ni en el catálogo ni en el cache: sin entradas fantasma hasta el
	// próximo Refresh.
	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, cache.entries)
	assert.Equal(t, []int64{p.ID}, cache.deleted)
}

func TestDeleteUnknownProduct(t *testing.T) {
	repo := newStubProductRepo()
	cache := newStubCache()
	uc := NewProductUseCase(&stubTxRunner{repos: inventory.Repos{Products: repo}}, nil, repo, cache)

	err := uc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, cache.deleted)
}
