package orders

import (
	"fmt"
	"testing"
	"time"

	"medimart/models"
	"medimart/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *models.Order {
	items := []models.OrderItem{
		{ProductID: "p1", Name: "Paracetamol 500mg", Price: 50, Quantity: 2},
	}
	b := pricing.Compute(items)
	return &models.Order{
		OrderID: "oTest00000001",
		UserID:  "uOwner",
		Items:   items,
		ShippingAddress: models.ShippingAddress{
			FullName:   "Asha Rao",
			Address:    "12 MG Road",
			City:       "Pune",
			PostalCode: "411001",
			Country:    "India",
		},
		PaymentMethod: "cod",
		ItemsPrice:    b.ItemsPrice,
		ShippingPrice: b.ShippingPrice,
		DiscountPrice: b.DiscountPrice,
		TotalPrice:    b.TotalPrice,
		CreatedAt:     time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func testCatalog() map[string]models.Product {
	return map[string]models.Product{
		"p1": {ProductID: "p1", Name: "Paracetamol 500mg", Price: 50, CountInStock: 100},
		"p2": {ProductID: "p2", Name: "Vitamin D3", Price: 33.33, CountInStock: 5},
	}
}

func TestApplyPaymentSetsFlags(t *testing.T) {
	order := testOrder()
	now := time.Now()
	result := &models.PaymentResult{ID: "pay_1", Status: "COMPLETED"}

	applyPayment(order, result, now)

	assert.True(t, order.IsPaid)
	assert.Equal(t, now, order.PaidAt)
	assert.Equal(t, result, order.PaymentResult)
}

func TestApplyPaymentTwiceOverwritesTimestamp(t *testing.T) {
	order := testOrder()

	first := time.Now()
	applyPayment(order, &models.PaymentResult{ID: "pay_1"}, first)

	second := first.Add(time.Hour)
	applyPayment(order, &models.PaymentResult{ID: "pay_2"}, second)

	// end state stays paid, metadata reflects the latest confirmation
	assert.True(t, order.IsPaid)
	assert.Equal(t, second, order.PaidAt)
	assert.Equal(t, "pay_2", order.PaymentResult.ID)
}

func TestApplyDelivery(t *testing.T) {
	order := testOrder()
	now := time.Now()

	applyDelivery(order, now)

	assert.True(t, order.IsDelivered)
	assert.Equal(t, now, order.DeliveredAt)
	assert.False(t, order.IsPaid)
}

func TestPayAuthorized(t *testing.T) {
	order := testOrder()

	assert.True(t, payAuthorized(order, "uOwner", false), "owner may pay")
	assert.True(t, payAuthorized(order, "uSomeoneElse", true), "admin may pay")
	assert.False(t, payAuthorized(order, "uSomeoneElse", false), "stranger may not pay")
}

func TestBuildOrderItemsRepricesFromCatalog(t *testing.T) {
	lines := []models.OrderItem{
		{ProductID: "p1", Name: "tampered", Price: 0.01, Quantity: 2},
	}

	items, err := buildOrderItems(testCatalog(), lines)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Paracetamol 500mg", items[0].Name)
	assert.Equal(t, 50.0, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestBuildOrderItemsCombinesDuplicateLines(t *testing.T) {
	// two lines of 60 against a stock of 100 must not pass
	lines := []models.OrderItem{
		{ProductID: "p1", Quantity: 60},
		{ProductID: "p1", Quantity: 60},
	}

	_, err := buildOrderItems(testCatalog(), lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient stock for Paracetamol 500mg")

	// within stock the duplicates merge into one line
	lines = []models.OrderItem{
		{ProductID: "p1", Quantity: 40},
		{ProductID: "p1", Quantity: 60},
	}
	items, err := buildOrderItems(testCatalog(), lines)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 100, items[0].Quantity)
}

func TestBuildOrderItemsRejectsUnknownAndNonPositive(t *testing.T) {
	_, err := buildOrderItems(testCatalog(), []models.OrderItem{{ProductID: "p9", Quantity: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown product p9")

	_, err = buildOrderItems(testCatalog(), []models.OrderItem{{ProductID: "p1", Quantity: 0}})
	require.Error(t, err)
}

func TestPriceOrderRejectsTamperedTotals(t *testing.T) {
	// the honest breakdown for 2 x 50 is items 100, shipping 10,
	// discount 10, total 100
	req := createOrderRequest{
		OrderItems:    []models.OrderItem{{ProductID: "p1", Quantity: 2}},
		ItemsPrice:    100,
		ShippingPrice: 0,
		DiscountPrice: 50,
		TotalPrice:    50,
	}

	_, _, err := priceOrder(testCatalog(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match current prices")
	assert.Contains(t, err.Error(), "expected items 100.00, shipping 10.00, discount 10.00, total 100.00")
}

func TestPriceOrderAcceptsHonestTotals(t *testing.T) {
	catalog := testCatalog()
	lines := []models.OrderItem{{ProductID: "p1", Quantity: 2}}
	b := pricing.Compute([]models.OrderItem{{Price: 50, Quantity: 2}})

	req := createOrderRequest{
		OrderItems:    lines,
		ItemsPrice:    b.ItemsPrice,
		ShippingPrice: b.ShippingPrice,
		DiscountPrice: b.DiscountPrice,
		TotalPrice:    b.TotalPrice,
	}

	items, got, err := priceOrder(catalog, req)
	require.NoError(t, err)
	assert.Equal(t, b, got)
	require.Len(t, items, 1)
	assert.Equal(t, 50.0, items[0].Price)
}

func TestCanDelete(t *testing.T) {
	order := testOrder()

	assert.True(t, canDelete(order, "uOwner", false), "owner may delete")
	assert.True(t, canDelete(order, "uSomeoneElse", true), "admin may delete")
	assert.False(t, canDelete(order, "uSomeoneElse", false), "stranger may not delete")
}

func TestFirstTotalsZeroOrders(t *testing.T) {
	totals := firstTotals(nil)
	assert.Equal(t, int64(0), totals.NumOrders)
	assert.Equal(t, 0.0, totals.TotalSales)

	users := firstUserTotals([]userTotals{})
	assert.Equal(t, int64(0), users.NumUsers)
}

func TestFirstTotalsPicksAggregate(t *testing.T) {
	totals := firstTotals([]orderTotals{{NumOrders: 7, TotalSales: 812.5}})
	assert.Equal(t, int64(7), totals.NumOrders)
	assert.Equal(t, 812.5, totals.TotalSales)
}

func TestInvoiceLinesMatchStoredBreakdown(t *testing.T) {
	order := testOrder()
	owner := &models.User{Name: "Asha Rao", Email: "asha@example.com"}

	lines := invoiceLines(order, owner)
	require.NotEmpty(t, lines)

	// the invoice and the stored order share one pricing policy; the 50x2
	// example order prices at items 100, shipping 10, discount 10, total 100
	assert.Contains(t, lines, "Subtotal: Rs. 100.00")
	assert.Contains(t, lines, "Discount (10%): -Rs. 10.00")
	assert.Contains(t, lines, "Delivery: Rs. 10.00")
	assert.Contains(t, lines, "Final Total: Rs. 100.00")

	assert.Contains(t, lines, "1. Paracetamol 500mg - 2 x Rs. 50.00 = Rs. 100.00")
	assert.Contains(t, lines, "Order ID: oTest00000001")
	assert.Contains(t, lines, "Customer: Asha Rao")
}

func TestInvoiceTotalsEqualPricingPolicy(t *testing.T) {
	// regardless of item mix, the printed totals are exactly pricing.Compute
	order := testOrder()
	order.Items = []models.OrderItem{
		{Name: "Vitamin D3", Price: 33.33, Quantity: 3},
		{Name: "Bandage Roll", Price: 12.49, Quantity: 2},
	}
	b := pricing.Compute(order.Items)

	lines := invoiceLines(order, &models.User{Name: "T", Email: "t@example.com"})

	assert.Contains(t, lines, fmt.Sprintf("Subtotal: Rs. %.2f", b.ItemsPrice))
	assert.Contains(t, lines, fmt.Sprintf("Final Total: Rs. %.2f", b.TotalPrice))
}
