// Package queue persiste las ventas hechas sin servidor. SQLite local:
// la cola debe sobrevivir reinicios del agente POS, no solo cortes de red.
package queue

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
	"github.com/salcar420/InnovaLogix/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS pending_sales (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	client_ref  TEXT NOT NULL,
	payload     TEXT NOT NULL,
	enqueued_at TEXT NOT NULL
);`

// PendingSale venta encolada a la espera de reconciliación.
type PendingSale struct {
	ID         int64
	ClientRef  string
	Sale       dto.CreateSaleRequest
	EnqueuedAt time.Time
}

// Queue cola FIFO durable de ventas offline.
type Queue struct {
	db *sql.DB
}

// Open abre (o crea) la base de la cola en path.
func Open(path string) (*Queue, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: abrir cola: %v", domain.ErrQueuePersistence, err)
	}
	// Un único escritor: el agente POS. Sin pool.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: crear esquema: %v", domain.ErrQueuePersistence, err)
	}
	return &Queue{db: db}, nil
}

// Close cierra la base.
func (q *Queue) Close() error {
	return q.db.Close()
}

// Enqueue persiste una venta al final de la cola. Si falla, la venta se
// pierde al cerrar el agente: el caller debe tratarlo como error fatal de
// la operación, no como degradación silenciosa.
func (q *Queue) Enqueue(sale dto.CreateSaleRequest) error {
	payload, err := json.Marshal(sale)
	if err != nil {
		return fmt.Errorf("%w: serializar venta: %v", domain.ErrQueuePersistence, err)
	}
	_, err = q.db.Exec(
		"INSERT INTO pending_sales (client_ref, payload, enqueued_at) VALUES (?, ?, ?)",
		sale.ClientRef, string(payload), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: insertar venta: %v", domain.ErrQueuePersistence, err)
	}
	return nil
}

// List devuelve las ventas pendientes en orden de llegada.
func (q *Queue) List() ([]PendingSale, error) {
	rows, err := q.db.Query("SELECT id, client_ref, payload, enqueued_at FROM pending_sales ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w: leer cola: %v", domain.ErrQueuePersistence, err)
	}
	defer rows.Close()

	var out []PendingSale
	for rows.Next() {
		var (
			p       PendingSale
			payload string
			at      string
		)
		if err := rows.Scan(&p.ID, &p.ClientRef, &payload, &at); err != nil {
			return nil, fmt.Errorf("%w: leer cola: %v", domain.ErrQueuePersistence, err)
		}
		if err := json.Unmarshal([]byte(payload), &p.Sale); err != nil {
			return nil, fmt.Errorf("%w: venta corrupta id %d: %v", domain.ErrQueuePersistence, p.ID, err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, at); err == nil {
			p.EnqueuedAt = ts
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Remove saca una venta de la cola. Solo se invoca cuando el servidor la
// aceptó.
func (q *Queue) Remove(id int64) error {
	_, err := q.db.Exec("DELETE FROM pending_sales WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: borrar venta %d: %v", domain.ErrQueuePersistence, id, err)
	}
	return nil
}

// Count cantidad de ventas pendientes.
func (q *Queue) Count() (int, error) {
	var n int
	if err := q.db.QueryRow("SELECT COUNT(*) FROM pending_sales").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: contar cola: %v", domain.ErrQueuePersistence, err)
	}
	return n, nil
}

// Clear vacía la cola. Herramienta de soporte, no parte del flujo normal.
func (q *Queue) Clear() error {
	_, err := q.db.Exec("DELETE FROM pending_sales")
	if err != nil {
		return fmt.Errorf("%w: vaciar cola: %v", domain.ErrQueuePersistence, err)
	}
	return nil
}
