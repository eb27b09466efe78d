package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseStatusPending   = "Pending"
	PurchaseStatusConfirmed = "Confirmed"
	PurchaseStatusCancelled = "Cancelled"
)

// Purchase es una orden de compra a proveedor. El stock solo se mueve al
// confirmar (suma) o al cancelar una compra ya confirmada (resta).
type Purchase struct {
	ID                int64
	SupplierID        int64
	SupplierName      string
	Total             decimal.Decimal
	Date              time.Time
	InvoiceNumber     string
	Status            string
	EstimatedDelivery string
	Items             []PurchaseItem
}

// PurchaseItem es una línea de compra.
type PurchaseItem struct {
	ID          int64
	PurchaseID  int64
	ProductID   int64
	ProductName string
	Quantity    int
	Cost        decimal.Decimal // costo unitario pactado con el proveedor
}

// ValidStatusTransition indica si el cambio de estado está permitido.
// Máquina: Pending → Confirmed | Cancelled; Confirmed → Cancelled.
// Cancelled es terminal y Confirmed → Pending no existe.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case PurchaseStatusPending:
		return to == PurchaseStatusConfirmed || to == PurchaseStatusCancelled
	case PurchaseStatusConfirmed:
		return to == PurchaseStatusCancelled
	default:
		return false
	}
}
