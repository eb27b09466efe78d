package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
	"github.com/salcar420/InnovaLogix/internal/application/inventory"
)

// StockReader lecturas del cache de difusión.
type StockReader interface {
	Get(ctx context.Context, productID int64) (inventory.StockSnapshot, error)
	Snapshot() []inventory.StockSnapshot
}

// InventoryHandler alertas de reposición, kardex, ajustes manuales y
// consulta rápida de stock.
type InventoryHandler struct {
	alerts *inventory.AlertUseCase
	kardex *inventory.KardexUseCase
	engine StockEngine
	stock  StockReader
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(alerts *inventory.AlertUseCase, kardex *inventory.KardexUseCase, engine StockEngine, stock StockReader) *InventoryHandler {
	return &InventoryHandler{alerts: alerts, kardex: kardex, engine: engine, stock: stock}
}

// Alerts GET /api/inventory/alerts — política dinámica por velocidad de
// ventas.
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	alerts, err := h.alerts.DynamicAlerts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(alerts)
}

// Kardex GET /api/inventory/kardex/:id?limit=&offset=
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	movements, err := h.kardex.Kardex(c.Context(), id, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			Reference:     m.Reference,
			Timestamp:     m.Timestamp,
		})
	}
	return c.JSON(out)
}

// Adjust POST /api/inventory/adjustments — corrección manual con fila de
// kardex.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.engine.RegisterAdjustment(c.Context(), inventory.AdjustmentInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ItemStockResponse{
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		NewStock:    item.NewStock,
	})
}

// Stock GET /api/inventory/stock/:id — lectura del cache, con
// read-through a BD en caso de miss.
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	snap, err := h.stock.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}

// StockSnapshot GET /api/inventory/stock — volcado completo del cache.
func (h *InventoryHandler) StockSnapshot(c *fiber.Ctx) error {
	return c.JSON(h.stock.Snapshot())
}
