package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es la cabecera de una venta. ClientRef lo genera el punto de venta
// (uuid) y viaja con la venta aunque esta se encole offline; permite
// detectar reenvíos de la cola de reconciliación.
type Sale struct {
	ID            int64
	ClientRef     string
	Date          time.Time
	Total         decimal.Decimal
	ItemCount     int
	PaymentMethod string
	ReceiptType   string // boleta, factura, ticket
	ReceiptNumber string
	ClientName    string
	ClientDoc     string
	ClientAddress string
	Items         []SaleItem
}

// SaleItem es una línea de venta. ProductName y Price son snapshots
// deliberadamente desnormalizados: el comprobante histórico no cambia
// aunque el catálogo se edite después.
type SaleItem struct {
	ID          int64
	SaleID      int64
	ProductName string
	Quantity    int
	Price       decimal.Decimal // precio unitario al momento de la venta
}
