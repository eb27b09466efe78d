package inventory

import (
	"context"
	"math"
	"time"

	"github.com/salcar420/InnovaLogix/internal/domain/entity"
	"github.com/salcar420/InnovaLogix/internal/domain/repository"
)

// Parámetros de la política dinámica de reposición.
const (
	// LeadTimeDays días de reposición asumidos del proveedor.
	LeadTimeDays = 7
	// SalesWindowDays ventana de ventas sobre la que se calcula la velocidad.
	SalesWindowDays = 30
	// MinSuggestedReorder pedido mínimo sugerido.
	MinSuggestedReorder = 10
	// StaticFloorDefault piso usado por la política estática cuando el
	// producto no tiene MinStock configurado.
	StaticFloorDefault = 10
)

// Alert es un producto bajo su mínimo efectivo según la política dinámica.
type Alert struct {
	ProductID         int64   `json:"productId"`
	Name              string  `json:"name"`
	Stock             int     `json:"stock"`
	MinStock          int     `json:"minStock"`
	AvgDailySales     float64 `json:"avgDailySales"`
	DynamicMinStock   int     `json:"dynamicMinStock"`
	EffectiveMinStock int     `json:"effectiveMinStock"`
	SuggestedReorder  int     `json:"suggestedReorder"`
}

// ComputeDynamicAlerts evalúa la política dinámica sobre un snapshot.
// Pura: sin mutación ni estado persistido; se recalcula a demanda.
//
//	avgDailySales    = vendido30d / 30
//	dynamicMinStock  = ceil(avgDailySales * leadTime)
//	effectiveMinStock = max(dynamicMinStock, minStock)
//	alerta si stock <= effectiveMinStock
//	suggestedReorder = max(effectiveMinStock*2 - stock, 10)
//
// sold30d va indexado por nombre de producto (las líneas de venta guardan
// el nombre snapshot, no el id).
func ComputeDynamicAlerts(products []*entity.Product, sold30d map[string]int) []Alert {
	alerts := make([]Alert, 0)
	for _, p := range products {
		avg := float64(sold30d[p.Name]) / float64(SalesWindowDays)
		dynamicMin := int(math.Ceil(avg * LeadTimeDays))
		effectiveMin := dynamicMin
		if p.MinStock > effectiveMin {
			effectiveMin = p.MinStock
		}
		if p.Stock > effectiveMin {
			continue
		}

		suggested := effectiveMin*2 - p.Stock
		if suggested < MinSuggestedReorder {
			suggested = MinSuggestedReorder
		}
		alerts = append(alerts, Alert{
			ProductID:         p.ID,
			Name:              p.Name,
			Stock:             p.Stock,
			MinStock:          p.MinStock,
			AvgDailySales:     avg,
			DynamicMinStock:   dynamicMin,
			EffectiveMinStock: effectiveMin,
			SuggestedReorder:  suggested,
		})
	}
	return alerts
}

// StaticLowStock es la segunda política de umbral, la de la pantalla de
// reposición: stock <= minStock, con piso 10 si no hay mínimo configurado.
// Convive deliberadamente con la dinámica; cada vista usa la suya.
func StaticLowStock(products []*entity.Product) []*entity.Product {
	low := make([]*entity.Product, 0)
	for _, p := range products {
		floor := p.MinStock
		if floor == 0 {
			floor = StaticFloorDefault
		}
		if p.Stock <= floor {
			low = append(low, p)
		}
	}
	return low
}

// AlertUseCase expone ambas políticas sobre lecturas del almacén. Solo
// lectura: no muta stock ni escribe kardex.
type AlertUseCase struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewAlertUseCase construye el caso de uso de alertas.
func NewAlertUseCase(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *AlertUseCase {
	return &AlertUseCase{productRepo: productRepo, saleRepo: saleRepo}
}

// DynamicAlerts calcula las alertas dinámicas con la velocidad de ventas
// de los últimos 30 días.
func (uc *AlertUseCase) DynamicAlerts(ctx context.Context) ([]Alert, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -SalesWindowDays)
	sold, err := uc.saleRepo.TotalSoldSince(since)
	if err != nil {
		return nil, err
	}
	return ComputeDynamicAlerts(products, sold), nil
}

// LowStock devuelve los productos bajo el umbral estático.
func (uc *AlertUseCase) LowStock(ctx context.Context) ([]*entity.Product, error) {
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	return StaticLowStock(products), nil
}
