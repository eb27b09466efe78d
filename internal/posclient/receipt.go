package posclient

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
)

// Prefijos de numeración por tipo de comprobante.
const (
	ReceiptTypeBoleta  = "boleta"
	ReceiptTypeFactura = "factura"
	ReceiptTypeTicket  = "ticket"
)

func receiptPrefix(receiptType string) string {
	switch receiptType {
	case ReceiptTypeFactura:
		return "F"
	case ReceiptTypeTicket:
		return "T"
	default:
		return "B"
	}
}

// ReceiptCounter numera comprobantes del lado del punto de venta. Se
// siembra con el historial de ventas del servidor y sigue contando
// localmente, también offline; al ser por caja, dos cajas con el mismo
// historial generan los mismos números, el servidor no los valida.
type ReceiptCounter struct {
	mu   sync.Mutex
	last map[string]int // prefijo -> último número visto
}

// NewReceiptCounter construye el contador en cero.
func NewReceiptCounter() *ReceiptCounter {
	return &ReceiptCounter{last: make(map[string]int)}
}

// Seed avanza cada contador hasta el mayor número presente en el
// historial. Números que no siguen el formato PREFIJO-NNN se ignoran.
func (rc *ReceiptCounter) Seed(sales []dto.SaleResponse) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	for _, s := range sales {
		prefix, num, ok := splitReceiptNumber(s.ReceiptNumber)
		if !ok {
			continue
		}
		if num > rc.last[prefix] {
			rc.last[prefix] = num
		}
	}
}

// Next devuelve el siguiente número para el tipo de comprobante dado,
// formato B-000001.
func (rc *ReceiptCounter) Next(receiptType string) string {
	prefix := receiptPrefix(receiptType)
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.last[prefix]++
	return fmt.Sprintf("%s-%06d", prefix, rc.last[prefix])
}

func splitReceiptNumber(s string) (prefix string, num int, ok bool) {
	i := strings.IndexByte(s, '-')
	if i <= 0 || i == len(s)-1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(s[i+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return s[:i], n, true
}
