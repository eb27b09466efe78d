package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de orden de compra.
type PurchaseItemRequest struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Cost        decimal.Decimal `json:"cost"`
}

// CreatePurchaseRequest cuerpo de POST /api/purchases. La orden nace
// Pending y no toca stock hasta confirmarse.
type CreatePurchaseRequest struct {
	SupplierID        int64                 `json:"supplierId"`
	SupplierName      string                `json:"supplierName"`
	Total             decimal.Decimal       `json:"total"`
	InvoiceNumber     string                `json:"invoiceNumber"`
	EstimatedDelivery string                `json:"estimatedDelivery"`
	Items             []PurchaseItemRequest `json:"items"`
}

// UpdatePurchaseStatusRequest cuerpo de PUT /api/purchases/:id/status.
type UpdatePurchaseStatusRequest struct {
	Status string `json:"status"`
}

// PurchaseItemResponse línea de compra persistida.
type PurchaseItemResponse struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Cost        decimal.Decimal `json:"cost"`
}

// PurchaseResponse orden de compra con líneas.
type PurchaseResponse struct {
	ID                int64                  `json:"id"`
	SupplierID        int64                  `json:"supplierId"`
	SupplierName      string                 `json:"supplierName"`
	Total             decimal.Decimal        `json:"total"`
	Date              time.Time              `json:"date"`
	InvoiceNumber     string                 `json:"invoiceNumber"`
	Status            string                 `json:"status"`
	EstimatedDelivery string                 `json:"estimatedDelivery,omitempty"`
	Items             []PurchaseItemResponse `json:"items"`
}

// PurchaseStatusResponse resultado del cambio de estado, con el stock
// resultante por producto cuando hubo efecto sobre inventario.
type PurchaseStatusResponse struct {
	ID      int64               `json:"id"`
	Status  string              `json:"status"`
	Changed bool                `json:"changed"`
	Items   []ItemStockResponse `json:"items"`
}
