package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"medimart/db"
	"medimart/models"
	"medimart/mq"
	"medimart/pricing"
	"medimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type createOrderRequest struct {
	OrderItems      []models.OrderItem     `json:"orderItems"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ItemsPrice      float64                `json:"itemsPrice"`
	ShippingPrice   float64                `json:"shippingPrice"`
	DiscountPrice   float64                `json:"discountPrice"`
	TotalPrice      float64                `json:"totalPrice"`
}

// buildOrderItems reprices the submitted lines against the catalog. Repeated
// lines for the same product are merged before the stock check so a split
// submission cannot sidestep it.
func buildOrderItems(catalog map[string]models.Product, lines []models.OrderItem) ([]models.OrderItem, error) {
	quantities := make(map[string]int, len(lines))
	ordered := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, errors.New("Item quantity must be positive")
		}
		if _, seen := quantities[line.ProductID]; !seen {
			ordered = append(ordered, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}

	items := make([]models.OrderItem, 0, len(ordered))
	for _, id := range ordered {
		product, ok := catalog[id]
		if !ok {
			return nil, fmt.Errorf("Unknown product %s", id)
		}
		if product.CountInStock < quantities[id] {
			return nil, fmt.Errorf("Insufficient stock for %s", product.Name)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  quantities[id],
		})
	}
	return items, nil
}

// priceOrder rebuilds the order lines from the catalog and verifies the
// submitted totals against the authoritative breakdown.
func priceOrder(catalog map[string]models.Product, req createOrderRequest) ([]models.OrderItem, pricing.Breakdown, error) {
	items, err := buildOrderItems(catalog, req.OrderItems)
	if err != nil {
		return nil, pricing.Breakdown{}, err
	}

	breakdown := pricing.Compute(items)
	if !breakdown.Matches(req.ItemsPrice, req.ShippingPrice, req.DiscountPrice, req.TotalPrice) {
		return nil, breakdown, fmt.Errorf(
			"Submitted totals do not match current prices (expected items %.2f, shipping %.2f, discount %.2f, total %.2f)",
			breakdown.ItemsPrice, breakdown.ShippingPrice, breakdown.DiscountPrice, breakdown.TotalPrice,
		)
	}
	return items, breakdown, nil
}

// CreateOrder persists a checkout submission. Prices are never trusted from
// the client: every line is repriced from the product collection and the
// submitted breakdown must agree with the authoritative one.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("CreateOrder decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if len(req.OrderItems) == 0 {
		http.Error(w, "Order must contain at least one item", http.StatusBadRequest)
		return
	}
	if req.PaymentMethod != "online" && req.PaymentMethod != "cod" {
		http.Error(w, "Payment method must be online or cod", http.StatusBadRequest)
		return
	}
	if req.ShippingAddress.FullName == "" || req.ShippingAddress.Address == "" {
		http.Error(w, "Shipping address is incomplete", http.StatusBadRequest)
		return
	}

	// Fetch each referenced product once
	catalog := make(map[string]models.Product, len(req.OrderItems))
	for _, line := range req.OrderItems {
		if _, ok := catalog[line.ProductID]; ok {
			continue
		}
		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": line.ProductID}).Decode(&product)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("Unknown product %s", line.ProductID))
			return
		}
		catalog[line.ProductID] = product
	}

	items, breakdown, err := priceOrder(catalog, req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	order := models.Order{
		OrderID:         "o" + utils.GenerateID(12),
		UserID:          userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      breakdown.ItemsPrice,
		ShippingPrice:   breakdown.ShippingPrice,
		DiscountPrice:   breakdown.DiscountPrice,
		TotalPrice:      breakdown.TotalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := db.OrderCollection.InsertOne(ctx, order); err != nil {
		log.Println("CreateOrder insert error:", err)
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
		return
	}

	go mq.Emit("order-created", mq.OrderEvent{
		OrderID:    order.OrderID,
		UserID:     userID,
		TotalPrice: order.TotalPrice,
	})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "New Order Created",
		"order":   order,
	})
}

// GetOrder returns one order, visible to its owner or an admin.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var order models.Order
	err := db.OrderCollection.FindOne(r.Context(), bson.M{"orderid": ps.ByName("id")}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order Not Found")
		return
	}

	if order.UserID != utils.GetUserIDFromRequest(r) && !utils.IsAdminRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to view this order")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// GetMyOrders lists the caller's order history, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.OrderCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding orders")
		return
	}
	if len(orders) == 0 {
		orders = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// GetAllOrders is the admin listing with the owner's name joined in.
func GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userid",
			"foreignField": "userid",
			"as":           "owner",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"userName": bson.M{"$ifNull": bson.A{
				bson.M{"$arrayElemAt": bson.A{"$owner.name", 0}},
				"Unknown",
			}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"owner": 0}}},
	}

	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.OrderWithUser
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding orders")
		return
	}
	if len(orders) == 0 {
		orders = []models.OrderWithUser{}
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// canDelete applies the ownership rule: only the order's owner or an admin
// may remove it.
func canDelete(order *models.Order, userID string, isAdmin bool) bool {
	return isAdmin || order.UserID == userID
}

func DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")

	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order Not Found")
		return
	}

	if !canDelete(&order, utils.GetUserIDFromRequest(r), utils.IsAdminRequest(r)) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to delete this order")
		return
	}

	if _, err := db.OrderCollection.DeleteOne(ctx, bson.M{"orderid": orderID}); err != nil {
		http.Error(w, "Failed to delete order", http.StatusInternalServerError)
		return
	}

	go mq.Emit("order-deleted", mq.OrderEvent{OrderID: orderID, UserID: order.UserID})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Order Deleted"})
}
