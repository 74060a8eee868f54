package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	o := Order{
		Items: []OrderItem{
			{Name: "Casque", Quantity: 2, Price: 59.99},
			{Name: "Câble", Quantity: 3, Price: 9.50},
		},
		ShippingPrice: 4.99,
	}
	o.ComputeTotals()

	assert.InDelta(t, 148.48, o.ItemsPrice, 1e-9)
	assert.InDelta(t, 153.47, o.TotalPrice, 1e-9)
}

func TestComputeTotalsEmpty(t *testing.T) {
	o := Order{ShippingPrice: 4.99}
	o.ComputeTotals()

	assert.Equal(t, 0.0, o.ItemsPrice)
	assert.InDelta(t, 4.99, o.TotalPrice, 1e-9)
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("expédiée"))
	assert.False(t, ValidOrderStatus(""))
}
