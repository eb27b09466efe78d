package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
	"github.com/salcar420/InnovaLogix/internal/application/inventory"
	"github.com/salcar420/InnovaLogix/internal/application/sales"
	"github.com/salcar420/InnovaLogix/internal/domain/entity"
)

// StockEngine operaciones de mutación de stock que consumen los handlers.
type StockEngine interface {
	ApplySale(ctx context.Context, in inventory.SaleInput) (*inventory.SaleResult, error)
	ConfirmPurchase(ctx context.Context, purchaseID int64) (*inventory.PurchaseStockResult, error)
	CancelPurchase(ctx context.Context, purchaseID int64) (*inventory.PurchaseStockResult, error)
	RegisterAdjustment(ctx context.Context, in inventory.AdjustmentInput) (*inventory.ItemStock, error)
}

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	engine StockEngine
	uc     *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(engine StockEngine, uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{engine: engine, uc: uc}
}

func toItemStockResponses(items []inventory.ItemStock) []dto.ItemStockResponse {
	out := make([]dto.ItemStockResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemStockResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			NewStock:    it.NewStock,
		})
	}
	return out
}

// Create POST /api/sales — venta atómica: o se aplican todas las líneas o
// ninguna. Es el mismo endpoint que usa la reconciliación offline del POS.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	input := inventory.SaleInput{
		ClientRef:     in.ClientRef,
		Total:         in.Total,
		PaymentMethod: in.PaymentMethod,
		ReceiptType:   in.ReceiptType,
		ReceiptNumber: in.ReceiptNumber,
	}
	if in.ClientData != nil {
		input.ClientName = in.ClientData.Name
		input.ClientDoc = in.ClientData.DocNumber
		input.ClientAddress = in.ClientData.Address
	}
	for _, it := range in.CartItems {
		input.Items = append(input.Items, inventory.SaleItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
		})
	}

	result, err := h.engine.ApplySale(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateSaleResponse{
		ID:            result.SaleID,
		ReceiptNumber: result.ReceiptNumber,
		Items:         toItemStockResponses(result.Items),
	})
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:            s.ID,
		ClientRef:     s.ClientRef,
		Date:          s.Date,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		ReceiptType:   s.ReceiptType,
		ReceiptNumber: s.ReceiptNumber,
		ClientName:    s.ClientName,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return out
}

// List GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return c.JSON(out)
}
