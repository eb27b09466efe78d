package inventory

import (
	"context"

	"github.com/salcar420/InnovaLogix/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Sales     repository.SaleRepository
	Purchases repository.PurchaseRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: o se aplican todos los cambios de un evento de negocio, o
// ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// StockSnapshot es la entrada del cache de difusión: (producto) → (nombre, stock).
// Derivada y reconstruible; nunca fuente de verdad.
type StockSnapshot struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
}

// StockCache cache en memoria del stock por producto. Set se invoca solo
// después del commit de la transacción dueña del cambio; Get hace
// read-through contra la BD en caso de miss; Delete retira la entrada de
// un producto dado de baja; Refresh recarga todo.
type StockCache interface {
	Set(productID int64, name string, stock int)
	Get(ctx context.Context, productID int64) (StockSnapshot, error)
	Delete(productID int64)
	Refresh(ctx context.Context) error
}

// StockEvent es el evento que se difunde a los clientes conectados tras
// cada mutación confirmada. Action es el tipo de movimiento que lo originó.
type StockEvent struct {
	ProductID     int64  `json:"productId"`
	ProductName   string `json:"productName"`
	Stock         int    `json:"stock"`
	Action        string `json:"action"`
	QuantityDelta int    `json:"quantityDelta"`
}

// Publisher difunde eventos de stock. Se llama exactamente una vez por
// mutación confirmada, nunca antes del commit. Entrega best-effort,
// a-lo-sumo-una-vez: un suscriptor desconectado se repone con el próximo
// fetch completo o Refresh del cache.
type Publisher interface {
	Publish(ev StockEvent)
}
