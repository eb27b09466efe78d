package posclient

import (
	"sync"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
)

// Projection es la copia local del catálogo con la que opera el POS sin
// servidor. Lleva dos capas de stock: el autoritativo (último conocido del
// servidor) y el tentativo, que descuenta además las ventas encoladas aún
// no reconciliadas. La UI muestra el tentativo; SetAuthoritative descarta
// lo tentativo al llegar verdad nueva del servidor.
type Projection struct {
	mu        sync.RWMutex
	products  map[int64]dto.ProductResponse
	tentative map[int64]int
}

// NewProjection construye una proyección vacía.
func NewProjection() *Projection {
	return &Projection{
		products:  make(map[int64]dto.ProductResponse),
		tentative: make(map[int64]int),
	}
}

// SetAuthoritative reemplaza la proyección con el catálogo del servidor y
// descarta todos los descuentos tentativos: el servidor ya incorporó (o
// rechazó) las ventas que los originaron.
func (p *Projection) SetAuthoritative(products []dto.ProductResponse) {
	byID := make(map[int64]dto.ProductResponse, len(products))
	for _, pr := range products {
		byID[pr.ID] = pr
	}
	p.mu.Lock()
	p.products = byID
	p.tentative = make(map[int64]int)
	p.mu.Unlock()
}

// ApplyTentativeSale descuenta las cantidades de una venta local todavía
// no confirmada por el servidor.
func (p *Projection) ApplyTentativeSale(items []dto.SaleItemRequest) {
	p.mu.Lock()
	for _, it := range items {
		p.tentative[it.ProductID] += it.Quantity
	}
	p.mu.Unlock()
}

// RevertTentativeSale deshace el descuento tentativo de una venta que el
// servidor rechazó: lo tentativo nunca sobrevive a la respuesta.
func (p *Projection) RevertTentativeSale(items []dto.SaleItemRequest) {
	p.mu.Lock()
	for _, it := range items {
		p.tentative[it.ProductID] -= it.Quantity
		if p.tentative[it.ProductID] <= 0 {
			delete(p.tentative, it.ProductID)
		}
	}
	p.mu.Unlock()
}

// SetAuthoritativeStock fija el stock de un producto con el valor que
// respondió el servidor y descarta su descuento tentativo. Es la segunda
// fase del envío online: la respuesta por ítem reemplaza la estimación.
func (p *Projection) SetAuthoritativeStock(productID int64, name string, stock int) {
	p.mu.Lock()
	pr, ok := p.products[productID]
	if !ok {
		pr = dto.ProductResponse{ID: productID, Name: name}
	}
	pr.Stock = stock
	p.products[productID] = pr
	delete(p.tentative, productID)
	p.mu.Unlock()
}

// Stock devuelve el stock tentativo de un producto.
func (p *Projection) Stock(productID int64) (int, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pr, ok := p.products[productID]
	if !ok {
		return 0, false
	}
	return pr.Stock - p.tentative[productID], true
}

// Products devuelve el catálogo con el stock tentativo aplicado.
func (p *Projection) Products() []dto.ProductResponse {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]dto.ProductResponse, 0, len(p.products))
	for _, pr := range p.products {
		pr.Stock -= p.tentative[pr.ID]
		out = append(out, pr)
	}
	return out
}
