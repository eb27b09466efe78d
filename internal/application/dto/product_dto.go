package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto. Stock es el inventario inicial y
// genera la fila INITIAL_STOCK del kardex.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"minStock"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}

// UpdateProductRequest edición de catálogo. No incluye stock: el stock
// solo se mueve por el motor de inventario.
type UpdateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	MinStock int             `json:"minStock"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}

// ProductResponse proyección de producto para la API.
type ProductResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"minStock"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}
