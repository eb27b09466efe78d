package ws

import (
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/salcar420/InnovaLogix/internal/application/inventory"
	"github.com/salcar420/InnovaLogix/pkg/logger"
)

var _ inventory.Publisher = (*Hub)(nil)

// eventName nombre único del evento que consumen los clientes.
const eventName = "stockUpdate"

// subscriberBuffer tamaño del buffer por suscriptor. Si se llena, el
// evento se descarta para ese suscriptor: la entrega es best-effort,
// a-lo-sumo-una-vez; el cliente se repone con el próximo fetch completo.
const subscriberBuffer = 16

// frame es el sobre que viaja por el websocket.
type frame struct {
	Event string               `json:"event"`
	Data  inventory.StockEvent `json:"data"`
}

// Hub reparte eventos de stock a los clientes conectados. Publish se
// ejecuta en la goroutine del request que acaba de confirmar la
// transacción, de modo que cada suscriptor recibe los eventos de un mismo
// producto en orden de commit; entre productos no hay garantía.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
	log  *logger.Logger
}

// NewHub construye el hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{subs: make(map[*Subscription]struct{}), log: log}
}

// Subscription canal de eventos de un suscriptor. Cancel la retira del
// hub y cierra el canal.
type Subscription struct {
	C      chan inventory.StockEvent
	hub    *Hub
	closed bool
}

// Cancel da de baja la suscripción. Idempotente.
func (s *Subscription) Cancel() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if s.closed {
		return
	}
	delete(s.hub.subs, s)
	s.closed = true
	close(s.C)
}

// Subscribe registra un nuevo suscriptor.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{C: make(chan inventory.StockEvent, subscriberBuffer), hub: h}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Count cantidad de suscriptores conectados.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish difunde un evento a todos los suscriptores sin bloquear: un
// suscriptor lento pierde el evento (se loguea el descarte).
func (h *Hub) Publish(ev inventory.StockEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		select {
		case sub.C <- ev:
		default:
			h.log.Warn().
				Int64("product_id", ev.ProductID).
				Str("action", ev.Action).
				Msg("suscriptor lento, evento de stock descartado")
		}
	}
}

// Handle atiende una conexión websocket: registra la suscripción, escribe
// cada evento como {"event":"stockUpdate","data":{...}} y lee del socket
// solo para detectar el cierre del lado cliente.
func (h *Hub) Handle(c *websocket.Conn) {
	sub := h.Subscribe()
	defer sub.Cancel()

	h.log.Debug().Int("subscribers", h.Count()).Msg("cliente websocket conectado")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			if err := c.WriteJSON(frame{Event: eventName, Data: ev}); err != nil {
				h.log.Debug().Err(err).Msg("cliente websocket desconectado")
				return
			}
		case <-done:
			return
		}
	}
}
