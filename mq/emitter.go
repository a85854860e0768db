package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"medimart/rdx"
)

const orderChannel = "order-events"

// OrderEvent is published on every order lifecycle transition.
type OrderEvent struct {
	Event      string    `json:"event"` // "order-created", "order-paid", "order-delivered", "order-deleted"
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	UserEmail  string    `json:"user_email,omitempty"`
	TotalPrice float64   `json:"total_price,omitempty"`
	At         time.Time `json:"at"`
}

// Emit publishes an order event to Redis. Failures are logged and dropped;
// the calling handler never fails because of the event bus.
func Emit(eventName string, content OrderEvent) {
	content.Event = eventName
	if content.At.IsZero() {
		content.At = time.Now()
	}

	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), orderChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s to Redis: %v", eventName, err)
	}
}
