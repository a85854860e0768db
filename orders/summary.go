package orders

import (
	"context"
	"net/http"
	"time"

	"medimart/db"
	"medimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type orderTotals struct {
	NumOrders  int64   `json:"numOrders" bson:"numOrders"`
	TotalSales float64 `json:"totalSales" bson:"totalSales"`
}

type userTotals struct {
	NumUsers int64 `json:"numUsers" bson:"numUsers"`
}

type dailyBucket struct {
	Date   string  `json:"date" bson:"_id"`
	Orders int64   `json:"orders" bson:"orders"`
	Sales  float64 `json:"sales" bson:"sales"`
}

type categoryCount struct {
	Category string `json:"category" bson:"_id"`
	Count    int64  `json:"count" bson:"count"`
}

// firstTotals collapses a $group result into a single totals value; an empty
// store aggregates to no documents, which must read as zero, not an error.
func firstTotals(rows []orderTotals) orderTotals {
	if len(rows) == 0 {
		return orderTotals{}
	}
	return rows[0]
}

func firstUserTotals(rows []userTotals) userTotals {
	if len(rows) == 0 {
		return userTotals{}
	}
	return rows[0]
}

// Summary recomputes the dashboard statistics on every call: overall order
// count and sales, user count, per-day buckets, and product counts per
// category.
func Summary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var orderRows []orderTotals
	if err := runPipeline(ctx, db.OrderCollection, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"numOrders":  bson.M{"$sum": 1},
			"totalSales": bson.M{"$sum": "$totalPrice"},
		}}},
	}, &orderRows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error aggregating orders")
		return
	}

	var userRows []userTotals
	if err := runPipeline(ctx, db.UserCollection, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"numUsers": bson.M{"$sum": 1},
		}}},
	}, &userRows); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error aggregating users")
		return
	}

	var daily []dailyBucket
	if err := runPipeline(ctx, db.OrderCollection, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$createdAt"}},
			"orders": bson.M{"$sum": 1},
			"sales":  bson.M{"$sum": "$totalPrice"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}, &daily); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error aggregating daily orders")
		return
	}
	if len(daily) == 0 {
		daily = []dailyBucket{}
	}

	var categories []categoryCount
	if err := runPipeline(ctx, db.ProductCollection, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"count": bson.M{"$sum": 1},
		}}},
	}, &categories); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error aggregating categories")
		return
	}
	if len(categories) == 0 {
		categories = []categoryCount{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"orders":            firstTotals(orderRows),
		"users":             firstUserTotals(userRows),
		"dailyOrders":       daily,
		"productCategories": categories,
	})
}

func runPipeline(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, out any) error {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
