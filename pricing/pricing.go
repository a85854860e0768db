// Package pricing is the single source of truth for an order's price
// breakdown. Order creation and invoice rendering both call Compute, so the
// persisted totals and the printed totals can never drift apart.
package pricing

import (
	"math"

	"medimart/models"
)

const (
	// Flat delivery fee, waived above FreeShippingAbove.
	FlatShippingFee   = 10.0
	FreeShippingAbove = 100.0
	// Storewide discount applied to the items subtotal.
	DiscountRate = 0.10
)

// Breakdown is the four-component price summary snapshotted on every order.
type Breakdown struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	DiscountPrice float64 `json:"discountPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// Round2 rounds to two decimal places.
func Round2(num float64) float64 {
	return math.Round(num*100) / 100
}

// Compute derives the full breakdown from the order lines.
func Compute(items []models.OrderItem) Breakdown {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}

	b := Breakdown{ItemsPrice: Round2(sum)}
	if b.ItemsPrice > FreeShippingAbove {
		b.ShippingPrice = 0
	} else {
		b.ShippingPrice = FlatShippingFee
	}
	b.DiscountPrice = Round2(DiscountRate * b.ItemsPrice)
	b.TotalPrice = Round2(b.ItemsPrice + b.ShippingPrice - b.DiscountPrice)
	return b
}

// Matches reports whether a client-submitted breakdown agrees with the
// authoritative one to the cent.
func (b Breakdown) Matches(itemsPrice, shippingPrice, discountPrice, totalPrice float64) bool {
	return Round2(itemsPrice) == b.ItemsPrice &&
		Round2(shippingPrice) == b.ShippingPrice &&
		Round2(discountPrice) == b.DiscountPrice &&
		Round2(totalPrice) == b.TotalPrice
}
