package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
	"github.com/salcar420/InnovaLogix/internal/application/inventory"
	"github.com/salcar420/InnovaLogix/internal/application/purchasing"
	"github.com/salcar420/InnovaLogix/internal/domain/entity"
)

// PurchaseHandler maneja las peticiones HTTP de compras.
type PurchaseHandler struct {
	uc     *purchasing.PurchaseUseCase
	engine StockEngine
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.PurchaseUseCase, engine StockEngine) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, engine: engine}
}

func toPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	out := dto.PurchaseResponse{
		ID:                p.ID,
		SupplierID:        p.SupplierID,
		SupplierName:      p.SupplierName,
		Total:             p.Total,
		Date:              p.Date,
		InvoiceNumber:     p.InvoiceNumber,
		Status:            p.Status,
		EstimatedDelivery: p.EstimatedDelivery,
		Items:             make([]dto.PurchaseItemResponse, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		out.Items = append(out.Items, dto.PurchaseItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Cost:        it.Cost,
		})
	}
	return out
}

// Create POST /api/purchases
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(p))
}

// List GET /api/purchases
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p))
	}
	return c.JSON(out)
}

// UpdateStatus PUT /api/purchases/:id/status — despacha al motor según el
// estado destino: Confirmed ingresa stock, Cancelled lo revierte si la
// compra estaba confirmada. Cualquier otro estado se rechaza.
func (h *PurchaseHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdatePurchaseStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	var (
		result *inventory.PurchaseStockResult
		err    error
	)
	switch in.Status {
	case entity.PurchaseStatusConfirmed:
		result, err = h.engine.ConfirmPurchase(c.Context(), id)
	case entity.PurchaseStatusCancelled:
		result, err = h.engine.CancelPurchase(c.Context(), id)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "estado desconocido: " + in.Status,
		})
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PurchaseStatusResponse{
		ID:      result.PurchaseID,
		Status:  result.Status,
		Changed: result.Changed,
		Items:   toItemStockResponses(result.Items),
	})
}
