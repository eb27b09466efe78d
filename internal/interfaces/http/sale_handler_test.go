package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
	"github.com/salcar420/InnovaLogix/internal/application/inventory"
	"github.com/salcar420/InnovaLogix/internal/domain"
)

// stubEngine implementa StockEngine con respuestas fijas por test.
type stubEngine struct {
	saleInput  *inventory.SaleInput
	saleResult *inventory.SaleResult
	saleErr    error

	confirmed []int64
	cancelled []int64
	purResult *inventory.PurchaseStockResult
	purErr    error

	adjusted  *inventory.AdjustmentInput
	adjResult *inventory.ItemStock
	adjErr    error
}

func (s *stubEngine) ApplySale(ctx context.Context, in inventory.SaleInput) (*inventory.SaleResult, error) {
	s.saleInput = &in
	return s.saleResult, s.saleErr
}

func (s *stubEngine) ConfirmPurchase(ctx context.Context, id int64) (*inventory.PurchaseStockResult, error) {
	s.confirmed = append(s.confirmed, id)
	return s.purResult, s.purErr
}

func (s *stubEngine) CancelPurchase(ctx context.Context, id int64) (*inventory.PurchaseStockResult, error) {
	s.cancelled = append(s.cancelled, id)
	return s.purResult, s.purErr
}

func (s *stubEngine) RegisterAdjustment(ctx context.Context, in inventory.AdjustmentInput) (*inventory.ItemStock, error) {
	s.adjusted = &in
	return s.adjResult, s.adjErr
}

func saleApp(engine *stubEngine) *fiber.App {
	app := fiber.New()
	h := NewSaleHandler(engine, nil)
	app.Post("/api/sales", h.Create)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	_, err = rec.Body.ReadFrom(resp.Body)
	require.NoError(t, err)
	return rec
}

func TestCreateSaleOK(t *testing.T) {
	engine := &stubEngine{saleResult: &inventory.SaleResult{
		SaleID:        12,
		ReceiptNumber: "B-0012",
		Items: []inventory.ItemStock{
			{ProductID: 1, ProductName: "Pan", NewStock: 7, QuantityDelta: -3},
		},
	}}
	app := saleApp(engine)

	rec := postJSON(t, app, "/api/sales", dto.CreateSaleRequest{
		ClientRef:     "ref-1",
		Total:         decimal.NewFromInt(30),
		PaymentMethod: "cash",
		ReceiptNumber: "B-0012",
		ClientData:    &dto.ClientData{Name: "Juana Pérez", DocNumber: "12345678"},
		CartItems: []dto.SaleItemRequest{
			{ProductID: 1, Quantity: 3, Price: decimal.NewFromInt(10)},
		},
	})
	assert.Equal(t, fiber.StatusCreated, rec.Code)

	var out dto.CreateSaleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, int64(12), out.ID)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 7, out.Items[0].NewStock)

	// El handler tradujo el DTO al input del motor.
	require.NotNil(t, engine.saleInput)
	assert.Equal(t, "ref-1", engine.saleInput.ClientRef)
	assert.Equal(t, "Juana Pérez", engine.saleInput.ClientName)
	require.Len(t, engine.saleInput.Items, 1)
	assert.Equal(t, 3, engine.saleInput.Items[0].Quantity)
}

func TestCreateSaleInsufficientStockIs409(t *testing.T) {
	engine := &stubEngine{saleErr: &domain.InsufficientStockError{
		Product: "Pan", Available: 2, Requested: 5,
	}}
	app := saleApp(engine)

	rec := postJSON(t, app, "/api/sales", dto.CreateSaleRequest{
		CartItems: []dto.SaleItemRequest{{ProductID: 1, Quantity: 5}},
	})
	assert.Equal(t, fiber.StatusConflict, rec.Code)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
	assert.Contains(t, out.Message, "Pan")
}

func TestCreateSaleInvalidBody(t *testing.T) {
	app := saleApp(&stubEngine{})

	req := httptest.NewRequest("POST", "/api/sales", bytes.NewReader([]byte("{no es json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func purchaseApp(engine *stubEngine) *fiber.App {
	app := fiber.New()
	h := NewPurchaseHandler(nil, engine)
	app.Put("/api/purchases/:id/status", h.UpdateStatus)
	return app
}

func putJSON(t *testing.T, app *fiber.App, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("PUT", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	rec.Code = resp.StatusCode
	_, err = rec.Body.ReadFrom(resp.Body)
	require.NoError(t, err)
	return rec
}

func TestUpdateStatusDispatchesConfirm(t *testing.T) {
	engine := &stubEngine{purResult: &inventory.PurchaseStockResult{
		PurchaseID: 5, Status: "Confirmed", Changed: true,
		Items: []inventory.ItemStock{{ProductID: 1, ProductName: "Pan", NewStock: 25, QuantityDelta: 20}},
	}}
	app := purchaseApp(engine)

	rec := putJSON(t, app, "/api/purchases/5/status", dto.UpdatePurchaseStatusRequest{Status: "Confirmed"})
	assert.Equal(t, fiber.StatusOK, rec.Code)
	assert.Equal(t, []int64{5}, engine.confirmed)
	assert.Empty(t, engine.cancelled)

	var out dto.PurchaseStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Changed)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 25, out.Items[0].NewStock)
}

func TestUpdateStatusDispatchesCancel(t *testing.T) {
	engine := &stubEngine{purResult: &inventory.PurchaseStockResult{
		PurchaseID: 7, Status: "Cancelled", Changed: true,
	}}
	app := purchaseApp(engine)

	rec := putJSON(t, app, "/api/purchases/7/status", dto.UpdatePurchaseStatusRequest{Status: "Cancelled"})
	assert.Equal(t, fiber.StatusOK, rec.Code)
	assert.Equal(t, []int64{7}, engine.cancelled)
	assert.Empty(t, engine.confirmed)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	engine := &stubEngine{}
	app := purchaseApp(engine)

	rec := putJSON(t, app, "/api/purchases/5/status", dto.UpdatePurchaseStatusRequest{Status: "Shipped"})
	assert.Equal(t, fiber.StatusBadRequest, rec.Code)
	assert.Empty(t, engine.confirmed)
	assert.Empty(t, engine.cancelled)
}

func TestUpdateStatusInvalidTransitionIs409(t *testing.T) {
	engine := &stubEngine{purErr: &domain.StatusTransitionError{From: "Cancelled", To: "Confirmed"}}
	app := purchaseApp(engine)

	rec := putJSON(t, app, "/api/purchases/5/status", dto.UpdatePurchaseStatusRequest{Status: "Confirmed"})
	assert.Equal(t, fiber.StatusConflict, rec.Code)

	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "INVALID_STATUS_TRANSITION", out.Code)
}

func TestAdjustmentEndpoint(t *testing.T) {
	engine := &stubEngine{adjResult: &inventory.ItemStock{
		ProductID: 3, ProductName: "Leche", NewStock: 9, QuantityDelta: -1,
	}}
	app := fiber.New()
	h := NewInventoryHandler(nil, nil, engine, nil)
	app.Post("/api/inventory/adjustments", h.Adjust)

	rec := postJSON(t, app, "/api/inventory/adjustments", dto.AdjustmentRequest{
		ProductID: 3, Quantity: -1, Reason: "Merma",
	})
	assert.Equal(t, fiber.StatusCreated, rec.Code)
	require.NotNil(t, engine.adjusted)
	assert.Equal(t, -1, engine.adjusted.Quantity)
	assert.Equal(t, "Merma", engine.adjusted.Reason)
}
