package entity

import "time"

// Tipos de movimiento de inventario (kardex).
const (
	MovementTypeInitialStock    = "INITIAL_STOCK"    // alta de producto
	MovementTypeSale            = "SALE"             // venta (cantidad negativa)
	MovementTypePurchaseConfirm = "PURCHASE_CONFIRM" // compra confirmada (positiva)
	MovementTypePurchaseCancel  = "PURCHASE_CANCEL"  // reverso de compra (negativa)
	MovementTypeAdjustment      = "ADJUSTMENT"       // corrección manual (con signo)
)

// Movement es una fila del kardex: inmutable, solo-append, una por evento
// que afecta stock, creada en la misma transacción que la actualización del
// producto. Nunca se edita ni se borra: es la pista de auditoría.
type Movement struct {
	ID            int64
	ProductID     int64
	Type          string
	Quantity      int // delta con signo
	PreviousStock int // stock inmediatamente antes del delta
	NewStock      int // stock inmediatamente después
	Reference     string
	Timestamp     time.Time
}
