package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo.
// Stock es la cantidad actual autoritativa; solo la muta el motor de
// inventario (nunca los endpoints CRUD ni los reportes). Invariante:
// Stock == suma de las cantidades con signo del kardex del producto.
type Product struct {
	ID       int64
	Name     string
	Price    decimal.Decimal // precio de venta unitario
	Cost     decimal.Decimal // costo unitario (se actualiza al confirmar compras)
	Stock    int
	MinStock int // piso estático de reorden
	Category string
	Image    string
}
