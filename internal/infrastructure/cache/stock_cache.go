package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/salcar420/InnovaLogix/internal/application/inventory"
	"github.com/salcar420/InnovaLogix/internal/domain"
	"github.com/salcar420/InnovaLogix/internal/domain/repository"
)

var _ inventory.StockCache = (*StockCache)(nil)

// StockCache cache en memoria (productId) → (nombre, stock). Derivado y
// reconstruible desde la tabla de productos; nunca fuente de verdad. Lo
// escribe el mismo proceso dueño de la transacción recién confirmada y lo
// leen el resto de handlers, por eso RWMutex con lecturas mayoritarias.
type StockCache struct {
	mu       sync.RWMutex
	entries  map[int64]inventory.StockSnapshot
	products repository.ProductRepository
}

// NewStockCache construye el cache vacío; llamar Refresh al arrancar.
func NewStockCache(products repository.ProductRepository) *StockCache {
	return &StockCache{
		entries:  make(map[int64]inventory.StockSnapshot),
		products: products,
	}
}

// Refresh recarga el cache completo desde la BD. Se usa al arrancar y
// como red de seguridad periódica contra derivas.
func (c *StockCache) Refresh(ctx context.Context) error {
	products, err := c.products.List()
	if err != nil {
		return fmt.Errorf("refresh stock cache: %w", err)
	}

	entries := make(map[int64]inventory.StockSnapshot, len(products))
	for _, p := range products {
		entries[p.ID] = inventory.StockSnapshot{ProductID: p.ID, Name: p.Name, Stock: p.Stock}
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
	return nil
}

// Get devuelve la entrada cacheada o, en caso de miss, lee de la BD y
// puebla el cache como efecto secundario (read-through).
func (c *StockCache) Get(ctx context.Context, productID int64) (inventory.StockSnapshot, error) {
	c.mu.RLock()
	entry, ok := c.entries[productID]
	c.mu.RUnlock()
	if ok {
		return entry, nil
	}

	p, err := c.products.GetByID(productID)
	if err != nil {
		return inventory.StockSnapshot{}, err
	}
	if p == nil {
		return inventory.StockSnapshot{}, fmt.Errorf("%w: id %d", domain.ErrProductNotFound, productID)
	}

	entry = inventory.StockSnapshot{ProductID: p.ID, Name: p.Name, Stock: p.Stock}
	c.Set(entry.ProductID, entry.Name, entry.Stock)
	return entry, nil
}

// Set actualiza una entrada. Se invoca solo tras el commit de la
// transacción que mutó el stock.
func (c *StockCache) Set(productID int64, name string, stock int) {
	c.mu.Lock()
	c.entries[productID] = inventory.StockSnapshot{ProductID: productID, Name: name, Stock: stock}
	c.mu.Unlock()
}

// Delete retira la entrada de un producto dado de baja del catálogo; si
// quedara, Get y Snapshot seguirían sirviéndolo hasta el próximo Refresh.
func (c *StockCache) Delete(productID int64) {
	c.mu.Lock()
	delete(c.entries, productID)
	c.mu.Unlock()
}

// Len cantidad de entradas cacheadas.
func (c *StockCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot copia del contenido completo del cache, para el endpoint de
// consulta rápida de stock.
func (c *StockCache) Snapshot() []inventory.StockSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]inventory.StockSnapshot, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out
}
