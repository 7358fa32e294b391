// Package pricing computes order amounts. Everything is integer naira,
// so there is no rounding to get wrong.
package pricing

import "chowline/models"

const (
	DeliveryFee int64 = 500
	ServiceFee  int64 = 100
)

// Subtotal sums the snapshotted line prices
func Subtotal(items []models.OrderItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.UnitPrice * int64(it.Quantity)
	}
	return sum
}

// Total is subtotal plus the flat delivery and service fees
func Total(items []models.OrderItem) int64 {
	return Subtotal(items) + DeliveryFee + ServiceFee
}
