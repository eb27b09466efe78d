// El agente POS corre junto a la caja: mantiene una proyección local del
// catálogo, registra ventas contra el servidor central y, cuando no hay
// servidor, las encola en SQLite y las reconcilia al volver la conexión.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/salcar420/InnovaLogix/internal/posclient"
	"github.com/salcar420/InnovaLogix/internal/posclient/queue"
	"github.com/salcar420/InnovaLogix/internal/posclient/syncer"
	"github.com/salcar420/InnovaLogix/pkg/config"
	"github.com/salcar420/InnovaLogix/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "debug"})
	log.Info().Str("server", cfg.Client.ServerURL).Msg("iniciando agente POS")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	q, err := queue.Open(cfg.Client.QueuePath)
	if err != nil {
		log.Fatal().Err(err).Msg("cola offline")
	}
	defer q.Close()

	if pending, err := q.Count(); err == nil && pending > 0 {
		log.Info().Int("pending", pending).Msg("ventas pendientes de sesiones anteriores")
	}

	api := posclient.NewAPIClient(cfg.Client.ServerURL, cfg.Client.HeartbeatTimeout)
	projection := posclient.NewProjection()
	if products, err := api.FetchProducts(ctx); err == nil {
		projection.SetAuthoritative(products)
		log.Info().Int("products", len(products)).Msg("catálogo inicial cargado")
	} else {
		log.Warn().Err(err).Msg("sin catálogo inicial, arrancando offline")
	}

	// El numerador de comprobantes continúa la serie del historial.
	receipts := posclient.NewReceiptCounter()
	if sales, err := api.FetchSales(ctx); err == nil {
		receipts.Seed(sales)
	}

	s := syncer.New(api, q, projection, receipts, syncer.Config{
		HeartbeatInterval: cfg.Client.HeartbeatInterval,
		HeartbeatTimeout:  cfg.Client.HeartbeatTimeout,
	}, log)

	s.Run(ctx)
	log.Info().Msg("agente POS detenido")
}
