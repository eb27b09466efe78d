package posclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
	"github.com/salcar420/InnovaLogix/internal/domain"
)

// APIClient cliente HTTP del agente POS contra el servidor central.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient construye el cliente. timeout acota cada petición; el
// heartbeat usa además su propio deadline por contexto.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Health consulta /health. Cualquier fallo de red o respuesta no-200 se
// reporta como ErrNetworkUnavailable: para el agente ambos significan
// "sin servidor".
func (c *APIClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health respondió %d", domain.ErrNetworkUnavailable, resp.StatusCode)
	}
	return nil
}

// SubmitSale envía una venta a POST /api/sales. Distingue fallo de red
// (reintentarle sirve) de rechazo del servidor (4xx/5xx con cuerpo).
func (c *APIClient) SubmitSale(ctx context.Context, sale dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	body, err := json.Marshal(sale)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sales", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		var apiErr dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Code == "" {
			return nil, fmt.Errorf("venta rechazada: status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("venta rechazada: %s (%s)", apiErr.Message, apiErr.Code)
	}

	var out dto.CreateSaleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchProducts trae el catálogo completo. Es la fuente de verdad con la
// que el agente reemplaza su proyección local tras reconciliar.
func (c *APIClient) FetchProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listado de productos respondió %d", resp.StatusCode)
	}
	var out []dto.ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchSales trae el historial de ventas; siembra el numerador de
// comprobantes al arrancar el agente.
func (c *APIClient) FetchSales(ctx context.Context) ([]dto.SaleResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/sales", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listado de ventas respondió %d", resp.StatusCode)
	}
	var out []dto.SaleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePurchaseStatus cambia el estado de una compra (pantalla de
// recepción de mercadería del POS).
func (c *APIClient) UpdatePurchaseStatus(ctx context.Context, purchaseID int64, status string) (*dto.PurchaseStatusResponse, error) {
	body, err := json.Marshal(dto.UpdatePurchaseStatusRequest{Status: status})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/purchases/%d/status", c.baseURL, purchaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Code == "" {
			return nil, fmt.Errorf("cambio de estado rechazado: status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("cambio de estado rechazado: %s (%s)", apiErr.Message, apiErr.Code)
	}
	var out dto.PurchaseStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
