package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrProductNotFound         = errors.New("producto no encontrado")
	ErrPurchaseNotFound        = errors.New("compra no encontrada")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrInvalidStatusTransition = errors.New("transición de estado inválida")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")

	// Errores del lado cliente (agente POS).
	ErrNetworkUnavailable = errors.New("servidor no disponible")
	ErrQueuePersistence   = errors.New("no se pudo guardar la venta en la cola local")
)

// InsufficientStockError lleva el detalle que se muestra al operador:
// producto, disponible y solicitado. Envuelve ErrInsufficientStock.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s. Disponible: %d, Solicitado: %d",
		e.Product, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// StatusTransitionError detalla una transición de compra rechazada.
// Envuelve ErrInvalidStatusTransition.
type StatusTransitionError struct {
	From string
	To   string
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("transición de estado inválida: %s → %s", e.From, e.To)
}

func (e *StatusTransitionError) Unwrap() error { return ErrInvalidStatusTransition }
