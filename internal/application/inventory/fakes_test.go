package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salcar420/InnovaLogix/internal/domain/entity"
)

// memStore almacén en memoria compartido por los repos falsos. El runner
// transaccional trabaja siempre sobre una copia y solo la promueve a
// estado visible si el callback termina sin error, igual que un commit.
type memStore struct {
	products  map[int64]*entity.Product
	movements []*entity.Movement
	sales     []*entity.Sale
	saleItems []*entity.SaleItem
	purchases map[int64]*entity.Purchase
	nextID    int64
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[int64]*entity.Product),
		purchases: make(map[int64]*entity.Purchase),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) clone() *memStore {
	c := &memStore{
		products:  make(map[int64]*entity.Product, len(s.products)),
		movements: make([]*entity.Movement, len(s.movements)),
		sales:     make([]*entity.Sale, len(s.sales)),
		saleItems: make([]*entity.SaleItem, len(s.saleItems)),
		purchases: make(map[int64]*entity.Purchase, len(s.purchases)),
		nextID:    s.nextID,
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for i, m := range s.movements {
		cm := *m
		c.movements[i] = &cm
	}
	for i, sl := range s.sales {
		cs := *sl
		c.sales[i] = &cs
	}
	for i, it := range s.saleItems {
		ci := *it
		c.saleItems[i] = &ci
	}
	for id, p := range s.purchases {
		cp := *p
		cp.Items = append([]entity.PurchaseItem(nil), p.Items...)
		c.purchases[id] = &cp
	}
	return c
}

func (s *memStore) addProduct(name string, stock, minStock int) *entity.Product {
	p := &entity.Product{
		ID:       s.id(),
		Name:     name,
		Price:    decimal.NewFromInt(100),
		Cost:     decimal.NewFromInt(60),
		Stock:    stock,
		MinStock: minStock,
	}
	s.products[p.ID] = p
	return p
}

func (s *memStore) addPurchase(items ...entity.PurchaseItem) *entity.Purchase {
	p := &entity.Purchase{
		ID:           s.id(),
		SupplierName: "Proveedor SA",
		Date:         time.Now(),
		Status:       entity.PurchaseStatusPending,
		Items:        items,
	}
	s.purchases[p.ID] = p
	return p
}

// memTxRunner implementa inventory.TxRunner sobre memStore con semántica
// de rollback real: los cambios de un callback fallido no se ven nunca.
type memTxRunner struct {
	mu    sync.Mutex
	store *memStore
}

func newMemTxRunner(store *memStore) *memTxRunner {
	return &memTxRunner{store: store}
}

func (r *memTxRunner) Run(ctx context.Context, fn func(repos Repos) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := r.store.clone()
	repos := Repos{
		Products:  &memProductRepo{s: tx},
		Movements: &memMovementRepo{s: tx},
		Sales:     &memSaleRepo{s: tx},
		Purchases: &memPurchaseRepo{s: tx},
	}
	if err := fn(repos); err != nil {
		return err
	}
	*r.store = *tx
	return nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	p.ID = r.s.id()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cur := r.s.products[p.ID]
	cp := *p
	cp.Stock = cur.Stock
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(id int64, stock int) error {
	r.s.products[id].Stock = stock
	return nil
}

func (r *memProductRepo) UpdateCost(id int64, cost decimal.Decimal) error {
	r.s.products[id].Cost = cost
	return nil
}

func (r *memProductRepo) Delete(id int64) error {
	delete(r.s.products, id)
	return nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	m.ID = r.s.id()
	cm := *m
	r.s.movements = append(r.s.movements, &cm)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.Movement, error) {
	var all []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ProductID == productID {
			cm := *r.s.movements[i]
			all = append(all, &cm)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) CreateHeader(sl *entity.Sale) error {
	sl.ID = r.s.id()
	cs := *sl
	r.s.sales = append(r.s.sales, &cs)
	return nil
}

func (r *memSaleRepo) CreateItem(it *entity.SaleItem) error {
	it.ID = r.s.id()
	ci := *it
	r.s.saleItems = append(r.s.saleItems, &ci)
	return nil
}

func (r *memSaleRepo) List() ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.s.sales))
	for i := len(r.s.sales) - 1; i >= 0; i-- {
		cs := *r.s.sales[i]
		for _, it := range r.s.saleItems {
			if it.SaleID == cs.ID {
				cs.Items = append(cs.Items, *it)
			}
		}
		out = append(out, &cs)
	}
	return out, nil
}

func (r *memSaleRepo) TotalSoldSince(since time.Time) (map[string]int, error) {
	dates := make(map[int64]time.Time, len(r.s.sales))
	for _, sl := range r.s.sales {
		dates[sl.ID] = sl.Date
	}
	out := make(map[string]int)
	for _, it := range r.s.saleItems {
		if dates[it.SaleID].Before(since) {
			continue
		}
		out[it.ProductName] += it.Quantity
	}
	return out, nil
}

type memPurchaseRepo struct{ s *memStore }

func (r *memPurchaseRepo) Create(p *entity.Purchase) error {
	p.ID = r.s.id()
	cp := *p
	cp.Items = append([]entity.PurchaseItem(nil), p.Items...)
	for i := range cp.Items {
		cp.Items[i].ID = r.s.id()
		cp.Items[i].PurchaseID = cp.ID
	}
	r.s.purchases[cp.ID] = &cp
	return nil
}

func (r *memPurchaseRepo) GetByID(id int64) (*entity.Purchase, error) {
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Items = append([]entity.PurchaseItem(nil), p.Items...)
	return &cp, nil
}

func (r *memPurchaseRepo) GetForUpdate(id int64) (*entity.Purchase, error) {
	return r.GetByID(id)
}

func (r *memPurchaseRepo) List() ([]*entity.Purchase, error) {
	out := make([]*entity.Purchase, 0, len(r.s.purchases))
	for id := range r.s.purchases {
		p, _ := r.GetByID(id)
		out = append(out, p)
	}
	return out, nil
}

func (r *memPurchaseRepo) UpdateStatus(id int64, status string) error {
	r.s.purchases[id].Status = status
	return nil
}

// fakeCache registra cada Set para verificar que el cache solo se toca
// tras un commit.
type fakeCache struct {
	mu      sync.Mutex
	entries map[int64]StockSnapshot
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64]StockSnapshot)}
}

func (c *fakeCache) Set(productID int64, name string, stock int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[productID] = StockSnapshot{ProductID: productID, Name: name, Stock: stock}
	c.sets++
}

func (c *fakeCache) Get(ctx context.Context, productID int64) (StockSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[productID], nil
}

func (c *fakeCache) Delete(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, productID)
}

func (c *fakeCache) Refresh(ctx context.Context) error { return nil }

// fakePublisher acumula los eventos difundidos.
type fakePublisher struct {
	mu     sync.Mutex
	events []StockEvent
}

func (p *fakePublisher) Publish(ev StockEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

// newTestEngine arma motor + almacén + espías para los tests.
func newTestEngine() (*Engine, *memStore, *fakeCache, *fakePublisher) {
	store := newMemStore()
	cache := newFakeCache()
	pub := &fakePublisher{}
	engine := NewEngine(newMemTxRunner(store), cache, pub)
	return engine, store, cache, pub
}
