package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta solicitada.
type SaleItemRequest struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// ClientData datos opcionales del cliente para el comprobante.
type ClientData struct {
	Name      string `json:"name"`
	DocNumber string `json:"docNumber"`
	Address   string `json:"address"`
}

// CreateSaleRequest cuerpo de POST /api/sales. También es el payload que
// el agente POS serializa en la cola offline, de ahí ClientRef: el mismo
// uuid viaja en el envío online y en cada reintento de reconciliación.
type CreateSaleRequest struct {
	ClientRef     string            `json:"clientRef"`
	Total         decimal.Decimal   `json:"total"`
	PaymentMethod string            `json:"paymentMethod"`
	ReceiptType   string            `json:"receiptType"`
	ReceiptNumber string            `json:"receiptNumber"`
	ClientData    *ClientData       `json:"clientData,omitempty"`
	CartItems     []SaleItemRequest `json:"cartItems"`
}

// ItemStockResponse stock resultante por producto tras la venta.
type ItemStockResponse struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	NewStock    int    `json:"newStock"`
}

// CreateSaleResponse respuesta de POST /api/sales.
type CreateSaleResponse struct {
	ID            int64               `json:"id"`
	ReceiptNumber string              `json:"receiptNumber"`
	Items         []ItemStockResponse `json:"items"`
}

// SaleItemResponse línea de venta persistida (snapshot).
type SaleItemResponse struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID            int64              `json:"id"`
	ClientRef     string             `json:"clientRef,omitempty"`
	Date          time.Time          `json:"date"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	ReceiptType   string             `json:"receiptType"`
	ReceiptNumber string             `json:"receiptNumber"`
	ClientName    string             `json:"clientName,omitempty"`
	Items         []SaleItemResponse `json:"items"`
}
