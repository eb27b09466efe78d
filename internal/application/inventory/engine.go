package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salcar420/InnovaLogix/internal/domain"
	"github.com/salcar420/InnovaLogix/internal/domain/entity"
)

// Engine es el motor de mutación de stock: ventas, confirmación y
// cancelación de compras y ajustes manuales. Cada operación ejecuta una
// única transacción (bloqueo de fila por producto + kardex + contador de
// stock) y solo tras el commit actualiza el cache y difunde el evento.
// Una transacción fallida nunca llega ni al cache ni a los suscriptores.
type Engine struct {
	txRunner  TxRunner
	cache     StockCache
	publisher Publisher
}

// NewEngine construye el motor con sus puertos.
func NewEngine(txRunner TxRunner, cache StockCache, publisher Publisher) *Engine {
	return &Engine{txRunner: txRunner, cache: cache, publisher: publisher}
}

// SaleItemInput es una línea solicitada de venta.
type SaleItemInput struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// SaleInput entrada de ApplySale.
type SaleInput struct {
	ClientRef     string
	Total         decimal.Decimal
	PaymentMethod string
	ReceiptType   string
	ReceiptNumber string
	ClientName    string
	ClientDoc     string
	ClientAddress string
	Items         []SaleItemInput
}

// ItemStock es el stock resultante de un producto tras una mutación.
type ItemStock struct {
	ProductID     int64
	ProductName   string
	NewStock      int
	QuantityDelta int
}

// SaleResult resultado de una venta aplicada.
type SaleResult struct {
	SaleID        int64
	ReceiptNumber string
	Items         []ItemStock
}

// ApplySale registra una venta completa en una transacción: cabecera,
// líneas (con snapshot de nombre y precio), decremento de stock y una fila
// SALE del kardex por línea. Si cualquier línea falla (producto
// inexistente o stock insuficiente) la venta entera se revierte: sin
// aplicación parcial.
func (e *Engine) ApplySale(ctx context.Context, in SaleInput) (*SaleResult, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: venta sin líneas", domain.ErrInvalidInput)
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	result := &SaleResult{ReceiptNumber: in.ReceiptNumber}

	err := e.txRunner.Run(ctx, func(r Repos) error {
		sale := &entity.Sale{
			ClientRef:     in.ClientRef,
			Date:          now,
			Total:         in.Total,
			ItemCount:     len(in.Items),
			PaymentMethod: in.PaymentMethod,
			ReceiptType:   in.ReceiptType,
			ReceiptNumber: in.ReceiptNumber,
			ClientName:    in.ClientName,
			ClientDoc:     in.ClientDoc,
			ClientAddress: in.ClientAddress,
		}
		if err := r.Sales.CreateHeader(sale); err != nil {
			return err
		}
		result.SaleID = sale.ID
		result.Items = result.Items[:0]

		for _, it := range in.Items {
			// Bloquea la fila del producto: ventas concurrentes sobre el
			// mismo producto se serializan aquí y no pueden leer ambas el
			// mismo stock previo.
			p, err := r.Products.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, it.ProductID)
			}
			if p.Stock < it.Quantity {
				return &domain.InsufficientStockError{
					Product:   p.Name,
					Available: p.Stock,
					Requested: it.Quantity,
				}
			}

			newStock := p.Stock - it.Quantity
			if err := r.Products.UpdateStock(p.ID, newStock); err != nil {
				return err
			}
			if err := r.Sales.CreateItem(&entity.SaleItem{
				SaleID:      sale.ID,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				Price:       it.UnitPrice,
			}); err != nil {
				return err
			}
			if err := r.Movements.Create(&entity.Movement{
				ProductID:     p.ID,
				Type:          entity.MovementTypeSale,
				Quantity:      -it.Quantity,
				PreviousStock: p.Stock,
				NewStock:      newStock,
				Reference:     fmt.Sprintf("Venta #%d", sale.ID),
				Timestamp:     now,
			}); err != nil {
				return err
			}

			result.Items = append(result.Items, ItemStock{
				ProductID:     p.ID,
				ProductName:   p.Name,
				NewStock:      newStock,
				QuantityDelta: -it.Quantity,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.afterCommit(result.Items, entity.MovementTypeSale)
	return result, nil
}

// PurchaseStockResult resultado de confirmar o cancelar una compra.
// Changed es false cuando la llamada fue un no-op idempotente.
type PurchaseStockResult struct {
	PurchaseID int64
	Status     string
	Changed    bool
	Items      []ItemStock
}

// ConfirmPurchase aplica el ingreso de stock de una compra. Idempotente:
// si la compra ya está Confirmed no toca stock ni kardex. Desde Cancelled
// se rechaza (estado terminal). Además de sumar stock, actualiza el costo
// del producto al costo pactado de la línea.
func (e *Engine) ConfirmPurchase(ctx context.Context, purchaseID int64) (*PurchaseStockResult, error) {
	result := &PurchaseStockResult{PurchaseID: purchaseID, Status: entity.PurchaseStatusConfirmed}

	err := e.txRunner.Run(ctx, func(r Repos) error {
		pur, err := r.Purchases.GetForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if pur == nil {
			return fmt.Errorf("%w: id %d", domain.ErrPurchaseNotFound, purchaseID)
		}
		if pur.Status == entity.PurchaseStatusConfirmed {
			// Confirmación duplicada: no-op.
			return nil
		}
		if !entity.ValidStatusTransition(pur.Status, entity.PurchaseStatusConfirmed) {
			return &domain.StatusTransitionError{From: pur.Status, To: entity.PurchaseStatusConfirmed}
		}

		now := time.Now()
		for _, it := range pur.Items {
			p, err := r.Products.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, it.ProductID)
			}

			newStock := p.Stock + it.Quantity
			if err := r.Products.UpdateStock(p.ID, newStock); err != nil {
				return err
			}
			if err := r.Products.UpdateCost(p.ID, it.Cost); err != nil {
				return err
			}
			if err := r.Movements.Create(&entity.Movement{
				ProductID:     p.ID,
				Type:          entity.MovementTypePurchaseConfirm,
				Quantity:      it.Quantity,
				PreviousStock: p.Stock,
				NewStock:      newStock,
				Reference:     fmt.Sprintf("Compra #%d", pur.ID),
				Timestamp:     now,
			}); err != nil {
				return err
			}

			result.Items = append(result.Items, ItemStock{
				ProductID:     p.ID,
				ProductName:   p.Name,
				NewStock:      newStock,
				QuantityDelta: it.Quantity,
			})
		}

		result.Changed = true
		return r.Purchases.UpdateStatus(pur.ID, entity.PurchaseStatusConfirmed)
	})
	if err != nil {
		return nil, err
	}

	if result.Changed {
		e.afterCommit(result.Items, entity.MovementTypePurchaseConfirm)
	}
	return result, nil
}

// CancelPurchase cancela una compra. Solo revierte stock si la compra
// estaba Confirmed; cancelar una Pending solo cambia el estado. Cancelled
// es terminal: cancelar dos veces se rechaza. El reverso puede dejar el
// stock negativo si hubo ventas entre la confirmación y la cancelación;
// esa deriva se corrige con un ajuste manual.
func (e *Engine) CancelPurchase(ctx context.Context, purchaseID int64) (*PurchaseStockResult, error) {
	result := &PurchaseStockResult{PurchaseID: purchaseID, Status: entity.PurchaseStatusCancelled}

	err := e.txRunner.Run(ctx, func(r Repos) error {
		pur, err := r.Purchases.GetForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if pur == nil {
			return fmt.Errorf("%w: id %d", domain.ErrPurchaseNotFound, purchaseID)
		}
		if !entity.ValidStatusTransition(pur.Status, entity.PurchaseStatusCancelled) {
			return &domain.StatusTransitionError{From: pur.Status, To: entity.PurchaseStatusCancelled}
		}

		if pur.Status == entity.PurchaseStatusConfirmed {
			now := time.Now()
			for _, it := range pur.Items {
				p, err := r.Products.GetForUpdate(it.ProductID)
				if err != nil {
					return err
				}
				if p == nil {
					return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, it.ProductID)
				}

				newStock := p.Stock - it.Quantity
				if err := r.Products.UpdateStock(p.ID, newStock); err != nil {
					return err
				}
				if err := r.Movements.Create(&entity.Movement{
					ProductID:     p.ID,
					Type:          entity.MovementTypePurchaseCancel,
					Quantity:      -it.Quantity,
					PreviousStock: p.Stock,
					NewStock:      newStock,
					Reference:     fmt.Sprintf("Compra #%d", pur.ID),
					Timestamp:     now,
				}); err != nil {
					return err
				}

				result.Items = append(result.Items, ItemStock{
					ProductID:     p.ID,
					ProductName:   p.Name,
					NewStock:      newStock,
					QuantityDelta: -it.Quantity,
				})
			}
		}

		result.Changed = true
		return r.Purchases.UpdateStatus(pur.ID, entity.PurchaseStatusCancelled)
	})
	if err != nil {
		return nil, err
	}

	e.afterCommit(result.Items, entity.MovementTypePurchaseCancel)
	return result, nil
}

// AdjustmentInput entrada de RegisterAdjustment. Quantity lleva signo.
type AdjustmentInput struct {
	ProductID int64
	Quantity  int
	Reason    string
}

// RegisterAdjustment registra una corrección manual de stock con su fila
// ADJUSTMENT en el kardex. Un ajuste negativo que dejaría el stock bajo
// cero se rechaza.
func (e *Engine) RegisterAdjustment(ctx context.Context, in AdjustmentInput) (*ItemStock, error) {
	if in.Quantity == 0 {
		return nil, fmt.Errorf("%w: ajuste de cantidad cero", domain.ErrInvalidInput)
	}

	var item ItemStock
	err := e.txRunner.Run(ctx, func(r Repos) error {
		p, err := r.Products.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: id %d", domain.ErrProductNotFound, in.ProductID)
		}

		newStock := p.Stock + in.Quantity
		if newStock < 0 {
			return &domain.InsufficientStockError{
				Product:   p.Name,
				Available: p.Stock,
				Requested: -in.Quantity,
			}
		}

		if err := r.Products.UpdateStock(p.ID, newStock); err != nil {
			return err
		}
		reference := in.Reason
		if reference == "" {
			reference = "Ajuste manual"
		}
		if err := r.Movements.Create(&entity.Movement{
			ProductID:     p.ID,
			Type:          entity.MovementTypeAdjustment,
			Quantity:      in.Quantity,
			PreviousStock: p.Stock,
			NewStock:      newStock,
			Reference:     reference,
			Timestamp:     time.Now(),
		}); err != nil {
			return err
		}

		item = ItemStock{
			ProductID:     p.ID,
			ProductName:   p.Name,
			NewStock:      newStock,
			QuantityDelta: in.Quantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.afterCommit([]ItemStock{item}, entity.MovementTypeAdjustment)
	return &item, nil
}

// RegisterInitialStockInTx escribe la fila INITIAL_STOCK de un producto
// recién creado usando los repositorios del caller (misma transacción).
// La usa el caso de uso de catálogo al dar de alta productos con stock.
func (e *Engine) RegisterInitialStockInTx(r Repos, p *entity.Product, now time.Time) error {
	if p.Stock == 0 {
		return nil
	}
	return r.Movements.Create(&entity.Movement{
		ProductID:     p.ID,
		Type:          entity.MovementTypeInitialStock,
		Quantity:      p.Stock,
		PreviousStock: 0,
		NewStock:      p.Stock,
		Reference:     "Alta de producto",
		Timestamp:     now,
	})
}

// afterCommit actualiza el cache y difunde los eventos. Solo se invoca
// con la transacción ya confirmada.
func (e *Engine) afterCommit(items []ItemStock, action string) {
	for _, it := range items {
		e.cache.Set(it.ProductID, it.ProductName, it.NewStock)
		e.publisher.Publish(StockEvent{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Stock:         it.NewStock,
			Action:        action,
			QuantityDelta: it.QuantityDelta,
		})
	}
}
