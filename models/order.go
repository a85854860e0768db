package models

import "time"

// OrderItem is a snapshot of a product line at checkout time.
type OrderItem struct {
	ProductID string  `json:"productid" bson:"productid"`
	Name      string  `json:"name" bson:"name"`
	Image     string  `json:"image" bson:"image"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

type ShippingAddress struct {
	FullName   string  `json:"fullName" bson:"fullName"`
	Address    string  `json:"address" bson:"address"`
	City       string  `json:"city" bson:"city"`
	PostalCode string  `json:"postalCode" bson:"postalCode"`
	Country    string  `json:"country" bson:"country"`
	Lat        float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng        float64 `json:"lng,omitempty" bson:"lng,omitempty"`
}

// PaymentResult stores whatever the payment provider reported; it is kept
// verbatim and never validated against a gateway signature.
type PaymentResult struct {
	ID           string `json:"id,omitempty" bson:"id,omitempty"`
	Status       string `json:"status,omitempty" bson:"status,omitempty"`
	UpdateTime   string `json:"update_time,omitempty" bson:"update_time,omitempty"`
	EmailAddress string `json:"email_address,omitempty" bson:"email_address,omitempty"`
}

// Order is a finalized checkout. Items, address and the price breakdown are
// immutable after creation; only the status flags, payment metadata and
// version mutate.
type Order struct {
	OrderID         string          `json:"orderid" bson:"orderid"`
	UserID          string          `json:"userid" bson:"userid"`
	Items           []OrderItem     `json:"orderItems" bson:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"` // "online" or "cod"
	ItemsPrice      float64         `json:"itemsPrice" bson:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice" bson:"shippingPrice"`
	DiscountPrice   float64         `json:"discountPrice" bson:"discountPrice"`
	TotalPrice      float64         `json:"totalPrice" bson:"totalPrice"`
	IsPaid          bool            `json:"isPaid" bson:"isPaid"`
	PaidAt          time.Time       `json:"paidAt,omitempty" bson:"paidAt,omitempty"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty" bson:"paymentResult,omitempty"`
	IsDelivered     bool            `json:"isDelivered" bson:"isDelivered"`
	DeliveredAt     time.Time       `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	Version         int64           `json:"version" bson:"version"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// OrderWithUser is the admin listing shape: an order joined with its owner's
// display name.
type OrderWithUser struct {
	Order    `bson:",inline"`
	UserName string `json:"userName" bson:"userName"`
}
