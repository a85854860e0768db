package mailer

import (
	"testing"

	"medimart/models"

	"github.com/stretchr/testify/assert"
)

func TestPayOrderEmailBody(t *testing.T) {
	order := &models.Order{
		OrderID: "oMail00000001",
		Items: []models.OrderItem{
			{Name: "Paracetamol 500mg", Price: 25, Quantity: 2},
			{Name: "ORS Sachets", Price: 22, Quantity: 1},
		},
		ItemsPrice:    72,
		ShippingPrice: 10,
		DiscountPrice: 7.2,
		TotalPrice:    74.8,
	}

	body := PayOrderEmailBody(order, "Ravi Kumar")

	assert.Contains(t, body, "Hi Ravi Kumar,")
	assert.Contains(t, body, "order oMail00000001")
	assert.Contains(t, body, "Paracetamol 500mg x2")
	assert.Contains(t, body, "Total: 74.80")
}
