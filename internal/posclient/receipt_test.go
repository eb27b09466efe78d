package posclient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
)

func TestReceiptCounterNext(t *testing.T) {
	rc := NewReceiptCounter()

	assert.Equal(t, "B-000001", rc.Next(ReceiptTypeBoleta))
	assert.Equal(t, "B-000002", rc.Next(ReceiptTypeBoleta))
	assert.Equal(t, "F-000001", rc.Next(ReceiptTypeFactura))
	assert.Equal(t, "T-000001", rc.Next(ReceiptTypeTicket))
	// Tipo desconocido cae en boleta.
	assert.Equal(t, "B-000003", rc.Next("otro"))
}

func TestReceiptCounterSeed(t *testing.T) {
	rc := NewReceiptCounter()
	rc.Seed([]dto.SaleResponse{
		{ReceiptNumber: "B-000041"},
		{ReceiptNumber: "B-000007"},
		{ReceiptNumber: "F-000003"},
		{ReceiptNumber: "sin formato"}, // se ignora
		{ReceiptNumber: ""},
	})

	assert.Equal(t, "B-000042", rc.Next(ReceiptTypeBoleta))
	assert.Equal(t, "F-000004", rc.Next(ReceiptTypeFactura))
	assert.Equal(t, "T-000001", rc.Next(ReceiptTypeTicket))
}

func TestSplitReceiptNumber(t *testing.T) {
	prefix, num, ok := splitReceiptNumber("B-000041")
	assert.True(t, ok)
	assert.Equal(t, "B", prefix)
	assert.Equal(t, 41, num)

	_, _, ok = splitReceiptNumber("B-")
	assert.False(t, ok)
	_, _, ok = splitReceiptNumber("-41")
	assert.False(t, ok)
	_, _, ok = splitReceiptNumber("B-abc")
	assert.False(t, ok)
}
