package pricing

import (
	"testing"

	"medimart/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeItemsSum(t *testing.T) {
	items := []models.OrderItem{
		{Price: 12.5, Quantity: 3},
		{Price: 4.99, Quantity: 2},
		{Price: 80, Quantity: 1},
	}

	b := Compute(items)
	assert.Equal(t, Round2(12.5*3+4.99*2+80), b.ItemsPrice)
}

func TestComputeShippingThreshold(t *testing.T) {
	tests := []struct {
		name         string
		items        []models.OrderItem
		wantShipping float64
	}{
		{"under threshold", []models.OrderItem{{Price: 50, Quantity: 1}}, FlatShippingFee},
		{"exactly at threshold", []models.OrderItem{{Price: 100, Quantity: 1}}, FlatShippingFee},
		{"above threshold", []models.OrderItem{{Price: 100.01, Quantity: 1}}, 0},
		{"well above threshold", []models.OrderItem{{Price: 75, Quantity: 4}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantShipping, Compute(tt.items).ShippingPrice)
		})
	}
}

func TestComputeDiscountRounding(t *testing.T) {
	// 10% of 33.33 is 3.333, which must round to 3.33
	b := Compute([]models.OrderItem{{Price: 33.33, Quantity: 1}})
	assert.Equal(t, 3.33, b.DiscountPrice)

	// 10% of 99.95 is 9.995, which must round to 10.00
	b = Compute([]models.OrderItem{{Price: 99.95, Quantity: 1}})
	assert.Equal(t, 10.0, b.DiscountPrice)
}

func TestComputeCheckoutExample(t *testing.T) {
	// Two units at 50: items 100, shipping 10 (not strictly above 100),
	// discount 10, total 100.
	b := Compute([]models.OrderItem{{Price: 50, Quantity: 2}})

	assert.Equal(t, 100.0, b.ItemsPrice)
	assert.Equal(t, 10.0, b.ShippingPrice)
	assert.Equal(t, 10.0, b.DiscountPrice)
	assert.Equal(t, 100.0, b.TotalPrice)
}

func TestComputeTotalIdentity(t *testing.T) {
	items := []models.OrderItem{
		{Price: 7.25, Quantity: 5},
		{Price: 120, Quantity: 2},
	}

	b := Compute(items)
	assert.Equal(t, Round2(b.ItemsPrice+b.ShippingPrice-b.DiscountPrice), b.TotalPrice)
}

func TestComputeEmptyOrder(t *testing.T) {
	b := Compute(nil)
	assert.Equal(t, 0.0, b.ItemsPrice)
	assert.Equal(t, FlatShippingFee, b.ShippingPrice)
	assert.Equal(t, 0.0, b.DiscountPrice)
	assert.Equal(t, FlatShippingFee, b.TotalPrice)
}

func TestMatches(t *testing.T) {
	b := Compute([]models.OrderItem{{Price: 50, Quantity: 2}})

	assert.True(t, b.Matches(100, 10, 10, 100))
	assert.True(t, b.Matches(100.004, 10, 10, 100)) // sub-cent noise tolerated
	assert.False(t, b.Matches(100, 0, 10, 90))      // wrong shipping
	assert.False(t, b.Matches(99, 10, 10, 99))      // tampered items price
}
