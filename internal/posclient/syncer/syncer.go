// Package syncer mantiene al agente POS operando con o sin servidor:
// latido periódico contra /health, cola de ventas offline y una pasada de
// reconciliación en cada transición de caído a disponible.
package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
	"github.com/salcar420/InnovaLogix/internal/domain"
	"github.com/salcar420/InnovaLogix/internal/posclient"
	"github.com/salcar420/InnovaLogix/internal/posclient/queue"
	"github.com/salcar420/InnovaLogix/pkg/logger"
)

// API operaciones del servidor central que usa el sincronizador.
type API interface {
	Health(ctx context.Context) error
	SubmitSale(ctx context.Context, sale dto.CreateSaleRequest) (*dto.CreateSaleResponse, error)
	FetchProducts(ctx context.Context) ([]dto.ProductResponse, error)
}

// Store cola durable de ventas pendientes.
type Store interface {
	Enqueue(sale dto.CreateSaleRequest) error
	List() ([]queue.PendingSale, error)
	Remove(id int64) error
	Count() (int, error)
}

// Config parámetros del latido.
type Config struct {
	HeartbeatInterval time.Duration
	HeartbeatTimeout  time.Duration
}

// Syncer orquesta latido, ventas locales y reconciliación.
type Syncer struct {
	api        API
	store      Store
	projection *posclient.Projection
	receipts   *posclient.ReceiptCounter
	cfg        Config
	log        *logger.Logger

	mu      sync.Mutex
	online  bool
	syncing bool
}

// New construye el sincronizador. Arranca asumiéndose offline: el primer
// latido exitoso dispara la reconciliación de lo que haya quedado en cola
// de sesiones anteriores.
func New(api API, store Store, projection *posclient.Projection, receipts *posclient.ReceiptCounter, cfg Config, log *logger.Logger) *Syncer {
	return &Syncer{api: api, store: store, projection: projection, receipts: receipts, cfg: cfg, log: log}
}

// Online estado del último latido.
func (s *Syncer) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// Run ejecuta el ciclo de latido hasta que el contexto se cancele. Cada
// transición de offline a online dispara exactamente una pasada de
// reconciliación; los latidos que encuentran al servidor ya disponible no
// reencolan pasadas.
func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.HeartbeatInterval)
	defer ticker.Stop()

	s.beat(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.beat(ctx)
		}
	}
}

func (s *Syncer) beat(ctx context.Context) {
	hbCtx, cancel := context.WithTimeout(ctx, s.cfg.HeartbeatTimeout)
	err := s.api.Health(hbCtx)
	cancel()
	alive := err == nil

	s.mu.Lock()
	wasOnline := s.online
	s.online = alive
	trigger := alive && !wasOnline && !s.syncing
	if trigger {
		s.syncing = true
	}
	s.mu.Unlock()

	switch {
	case alive && !wasOnline:
		s.log.Info().Msg("servidor disponible")
	case !alive && wasOnline:
		s.log.Warn().Err(err).Msg("servidor caído, operando offline")
	}

	if trigger {
		go func() {
			defer func() {
				s.mu.Lock()
				s.syncing = false
				s.mu.Unlock()
			}()
			if err := s.SyncPending(ctx); err != nil {
				s.log.Error().Err(err).Msg("reconciliación incompleta")
			}
		}()
	}
}

// RecordSale registra una venta local: descuenta la proyección en forma
// tentativa y la envía al servidor; si la red falla, la encola. Un fallo
// de persistencia de la cola sí es fatal: sin cola la venta se perdería.
// El clientRef se asigna acá y acompaña a la venta en todos sus
// reintentos.
func (s *Syncer) RecordSale(ctx context.Context, sale dto.CreateSaleRequest) error {
	if sale.ClientRef == "" {
		sale.ClientRef = uuid.NewString()
	}
	if sale.ReceiptNumber == "" {
		sale.ReceiptNumber = s.receipts.Next(sale.ReceiptType)
	}
	s.projection.ApplyTentativeSale(sale.CartItems)

	if s.Online() {
		resp, err := s.api.SubmitSale(ctx, sale)
		if err == nil {
			// Segunda fase: el stock por ítem de la respuesta reemplaza el
			// descuento tentativo.
			for _, it := range resp.Items {
				s.projection.SetAuthoritativeStock(it.ProductID, it.ProductName, it.NewStock)
			}
			return nil
		}
		if !errors.Is(err, domain.ErrNetworkUnavailable) {
			// Rechazo del servidor (p.ej. stock insuficiente): reintentar
			// no sirve; el descuento tentativo se descarta y el error se
			// devuelve al operador.
			s.projection.RevertTentativeSale(sale.CartItems)
			return err
		}
		s.mu.Lock()
		s.online = false
		s.mu.Unlock()
	}

	if err := s.store.Enqueue(sale); err != nil {
		return err
	}
	s.log.Info().Str("client_ref", sale.ClientRef).Msg("venta encolada offline")
	return nil
}

// SyncPending drena la cola en orden de llegada contra el servidor. Una
// venta solo sale de la cola cuando el servidor la aceptó; las que fallan
// quedan para la próxima pasada sin frenar a las siguientes. Al final
// reemplaza la proyección local con la verdad del servidor.
func (s *Syncer) SyncPending(ctx context.Context) error {
	pending, err := s.store.List()
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		s.log.Info().Int("pending", len(pending)).Msg("reconciliando ventas offline")
	}

	var failed int
	for _, p := range pending {
		if _, err := s.api.SubmitSale(ctx, p.Sale); err != nil {
			failed++
			s.log.Warn().Err(err).Str("client_ref", p.ClientRef).Msg("venta pendiente no aceptada")
			continue
		}
		if err := s.store.Remove(p.ID); err != nil {
			return err
		}
	}

	products, err := s.api.FetchProducts(ctx)
	if err != nil {
		return err
	}
	s.projection.SetAuthoritative(products)

	if failed > 0 {
		s.log.Warn().Int("failed", failed).Msg("quedaron ventas en cola")
	}
	return nil
}
