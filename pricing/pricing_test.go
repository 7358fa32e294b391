package pricing

import (
	"testing"

	"chowline/models"

	"github.com/stretchr/testify/assert"
)

func TestTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []models.OrderItem
		subtotal int64
		total    int64
	}{
		{
			name: "two_jollof_one_suya",
			items: []models.OrderItem{
				{UnitPrice: 1000, Quantity: 2},
				{UnitPrice: 500, Quantity: 1},
			},
			subtotal: 2500,
			total:    3100,
		},
		{
			name:     "single_item",
			items:    []models.OrderItem{{UnitPrice: 1500, Quantity: 1}},
			subtotal: 1500,
			total:    2100,
		},
		{
			name:     "free_item_still_charges_fees",
			items:    []models.OrderItem{{UnitPrice: 0, Quantity: 3}},
			subtotal: 0,
			total:    600,
		},
		{
			name: "large_quantities",
			items: []models.OrderItem{
				{UnitPrice: 2500, Quantity: 40},
				{UnitPrice: 350, Quantity: 12},
			},
			subtotal: 104200,
			total:    104800,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.subtotal, Subtotal(tt.items))
			assert.Equal(t, tt.total, Total(tt.items))
		})
	}
}

func TestFees(t *testing.T) {
	assert.Equal(t, int64(500), DeliveryFee)
	assert.Equal(t, int64(100), ServiceFee)
}
