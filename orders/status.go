package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"medimart/db"
	"medimart/models"
	"medimart/mq"
	"medimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// applyPayment records a payment on the order. Calling it again simply
// overwrites the timestamp and payment metadata; the paid flag stays set.
func applyPayment(order *models.Order, result *models.PaymentResult, now time.Time) {
	order.IsPaid = true
	order.PaidAt = now
	order.PaymentResult = result
	order.UpdatedAt = now
}

func applyDelivery(order *models.Order, now time.Time) {
	order.IsDelivered = true
	order.DeliveredAt = now
	order.UpdatedAt = now
}

// payAuthorized limits payment confirmation to the order's owner or an admin.
func payAuthorized(order *models.Order, userID string, isAdmin bool) bool {
	return isAdmin || order.UserID == userID
}

// casUpdate writes the given fields only if the order version has not moved
// since it was loaded, bumping the version on success.
func casUpdate(ctx context.Context, orderID string, version int64, fields bson.M) (bool, error) {
	result, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "version": version},
		bson.M{"$set": fields, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// MarkPaid confirms payment for an order. The payment-result payload is
// stored verbatim; the confirmation email rides the event bus and can never
// fail this request.
func MarkPaid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order Not Found")
		return
	}

	if !payAuthorized(&order, utils.GetUserIDFromRequest(r), utils.IsAdminRequest(r)) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to pay for this order")
		return
	}

	var result models.PaymentResult
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
			log.Println("MarkPaid decode error:", err)
		}
	}

	applyPayment(&order, &result, time.Now())

	ok, err := casUpdate(ctx, orderID, order.Version, bson.M{
		"isPaid":        order.IsPaid,
		"paidAt":        order.PaidAt,
		"paymentResult": order.PaymentResult,
		"updatedAt":     order.UpdatedAt,
	})
	if err != nil {
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}
	if !ok {
		utils.RespondWithError(w, http.StatusConflict, "Order was modified concurrently, retry")
		return
	}
	order.Version++

	// Owner details for the confirmation mail
	var owner models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": order.UserID}).Decode(&owner); err != nil {
		log.Printf("MarkPaid owner lookup failed for %s: %v", order.UserID, err)
	}

	go mq.Emit("order-paid", mq.OrderEvent{
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		UserName:   owner.Name,
		UserEmail:  owner.Email,
		TotalPrice: order.TotalPrice,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Order Paid",
		"order":   order,
	})
}

// MarkDelivered is the admin-only delivery confirmation.
func MarkDelivered(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order Not Found")
		return
	}

	applyDelivery(&order, time.Now())

	ok, err := casUpdate(ctx, orderID, order.Version, bson.M{
		"isDelivered": order.IsDelivered,
		"deliveredAt": order.DeliveredAt,
		"updatedAt":   order.UpdatedAt,
	})
	if err != nil {
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}
	if !ok {
		utils.RespondWithError(w, http.StatusConflict, "Order was modified concurrently, retry")
		return
	}
	order.Version++

	go mq.Emit("order-delivered", mq.OrderEvent{
		OrderID: order.OrderID,
		UserID:  order.UserID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Order Delivered",
		"order":   order,
	})
}
