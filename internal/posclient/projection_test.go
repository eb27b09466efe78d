package posclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salcar420/InnovaLogix/internal/application/dto"
)

func TestProjectionTentativeStock(t *testing.T) {
	p := NewProjection()
	p.SetAuthoritative([]dto.ProductResponse{
		{ID: 1, Name: "Pan", Stock: 10},
		{ID: 2, Name: "Leche", Stock: 4},
	})

	stock, ok := p.Stock(1)
	require.True(t, ok)
	assert.Equal(t, 10, stock)

	// Venta local aún no confirmada: la UI ya la descuenta.
	p.ApplyTentativeSale([]dto.SaleItemRequest{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 1},
	})
	stock, _ = p.Stock(1)
	assert.Equal(t, 7, stock)
	stock, _ = p.Stock(2)
	assert.Equal(t, 3, stock)

	// Segunda venta offline acumula.
	p.ApplyTentativeSale([]dto.SaleItemRequest{{ProductID: 1, Quantity: 2}})
	stock, _ = p.Stock(1)
	assert.Equal(t, 5, stock)
}

func TestSetAuthoritativeDiscardsTentative(t *testing.T) {
	p := NewProjection()
	p.SetAuthoritative([]dto.ProductResponse{{ID: 1, Name: "Pan", Stock: 10}})
	p.ApplyTentativeSale([]dto.SaleItemRequest{{ProductID: 1, Quantity: 4}})

	// El servidor ya incorporó la venta: su stock es la verdad, sin
	// volver a descontar lo tentativo.
	p.SetAuthoritative([]dto.ProductResponse{{ID: 1, Name: "Pan", Stock: 6}})
	stock, ok := p.Stock(1)
	require.True(t, ok)
	assert.Equal(t, 6, stock)
}

func TestRevertTentativeSale(t *testing.T) {
	p := NewProjection()
	p.SetAuthoritative([]dto.ProductResponse{{ID: 1, Name: "Pan", Stock: 10}})
	p.ApplyTentativeSale([]dto.SaleItemRequest{{ProductID: 1, Quantity: 3}})
	p.ApplyTentativeSale([]dto.SaleItemRequest{{ProductID: 1, Quantity: 2}})

	// Se rechaza la primera venta: solo su delta se deshace.
	p.RevertTentativeSale([]dto.SaleItemRequest{{ProductID: 1, Quantity: 3}})
	stock, ok := p.Stock(1)
	require.True(t, ok)
	assert.Equal(t, 8, stock)

	p.RevertTentativeSale([]dto.SaleItemRequest{{ProductID: 1, Quantity: 2}})
	stock, _ = p.Stock(1)
	assert.Equal(t, 10, stock)
}

func TestSetAuthoritativeStock(t *testing.T) {
	p := NewProjection()
	p.SetAuthoritative([]dto.ProductResponse{{ID: 1, Name: "Pan", Stock: 10}})
	p.ApplyTentativeSale([]dto.SaleItemRequest{{ProductID: 1, Quantity: 3}})

	// La respuesta por ítem del servidor manda: descarta lo tentativo.
	p.SetAuthoritativeStock(1, "Pan", 7)
	stock, ok := p.Stock(1)
	require.True(t, ok)
	assert.Equal(t, 7, stock)

	// Producto que la proyección aún no conocía: se incorpora.
	p.SetAuthoritativeStock(2, "Leche", 4)
	stock, ok = p.Stock(2)
	require.True(t, ok)
	assert.Equal(t, 4, stock)
}

func TestProjectionUnknownProduct(t *testing.T) {
	p := NewProjection()
	_, ok := p.Stock(99)
	assert.False(t, ok)
}

func TestProductsAppliesTentative(t *testing.T) {
	p := NewProjection()
	p.SetAuthoritative([]dto.ProductResponse{{ID: 1, Name: "Pan", Stock: 10}})
	p.ApplyTentativeSale([]dto.SaleItemRequest{{ProductID: 1, Quantity: 1}})

	list := p.Products()
	require.Len(t, list, 1)
	assert.Equal(t, 9, list[0].Stock)
}
