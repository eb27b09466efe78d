package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salcar420/InnovaLogix/internal/application/inventory"
	"github.com/salcar420/InnovaLogix/pkg/logger"
)

func testHub() *Hub {
	return NewHub(logger.New(logger.Config{Env: "test", Level: "error"}))
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := testHub()
	a := hub.Subscribe()
	b := hub.Subscribe()
	defer a.Cancel()
	defer b.Cancel()
	assert.Equal(t, 2, hub.Count())

	ev := inventory.StockEvent{ProductID: 1, ProductName: "Pan", Stock: 7, Action: "SALE", QuantityDelta: -3}
	hub.Publish(ev)

	require.Len(t, a.C, 1)
	require.Len(t, b.C, 1)
	assert.Equal(t, ev, <-a.C)
	assert.Equal(t, ev, <-b.C)
}

func TestPublishPreservesOrderPerSubscriber(t *testing.T) {
	hub := testHub()
	sub := hub.Subscribe()
	defer sub.Cancel()

	for i := 1; i <= 5; i++ {
		hub.Publish(inventory.StockEvent{ProductID: 1, Stock: 10 - i})
	}
	for i := 1; i <= 5; i++ {
		assert.Equal(t, 10-i, (<-sub.C).Stock)
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := testHub()
	slow := hub.Subscribe()
	defer slow.Cancel()

	// Nadie lee: el buffer se llena y los eventos extra se descartan sin
	// bloquear al publicador.
	for i := 0; i < subscriberBuffer+10; i++ {
		hub.Publish(inventory.StockEvent{ProductID: int64(i)})
	}
	assert.Len(t, slow.C, subscriberBuffer)
}

func TestCancelRemovesAndIsIdempotent(t *testing.T) {
	hub := testHub()
	sub := hub.Subscribe()
	require.Equal(t, 1, hub.Count())

	sub.Cancel()
	assert.Equal(t, 0, hub.Count())
	_, open := <-sub.C
	assert.False(t, open)

	// Segunda cancelación: no-op, sin pánico por doble close.
	sub.Cancel()

	// Publicar sin suscriptores tampoco falla.
	hub.Publish(inventory.StockEvent{ProductID: 1})
}
