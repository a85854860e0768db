package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"medimart/db"
	"medimart/mailer"
	"medimart/models"
	"medimart/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

// Broadcaster receives every order event for fan-out to connected dashboards.
type Broadcaster interface {
	Broadcast(data []byte)
}

const mailRetries = 3

// StartOrderWorker consumes order events: paid orders trigger a confirmation
// email (retried a few times, then dropped with a log line), and every event
// is forwarded to the live feed. Mail failures never propagate back to the
// endpoint that emitted the event.
func StartOrderWorker(hub Broadcaster) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, orderChannel)
	ch := sub.Channel()

	log.Println("[OrderWorker] Listening for order events...")

	for msg := range ch {
		var event OrderEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[OrderWorker] Failed to parse event: %v", err)
			continue
		}

		if hub != nil {
			hub.Broadcast([]byte(msg.Payload))
		}

		if event.Event == "order-paid" && event.UserEmail != "" {
			go sendPaidMail(event)
		}
	}
}

func sendPaidMail(event OrderEvent) {
	var order models.Order
	err := db.OrderCollection.FindOne(context.TODO(), bson.M{"orderid": event.OrderID}).Decode(&order)
	if err != nil {
		log.Printf("[OrderWorker] Order %s not found for mail: %v", event.OrderID, err)
		return
	}

	subject := fmt.Sprintf("Order %s Paid", event.OrderID)
	body := mailer.PayOrderEmailBody(&order, event.UserName)

	for attempt := 1; attempt <= mailRetries; attempt++ {
		if err = mailer.SendMail(event.UserEmail, subject, body); err == nil {
			return
		}
		log.Printf("[OrderWorker] Mail attempt %d for order %s failed: %v", attempt, event.OrderID, err)
		time.Sleep(time.Duration(attempt) * 2 * time.Second)
	}
	log.Printf("[OrderWorker] Giving up on mail for order %s: %v", event.OrderID, err)
}
