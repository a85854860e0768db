package products

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"medimart/db"
	"medimart/models"
	"medimart/rdx"
	"medimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProducts lists the catalog with optional ?search= and ?category=
// filters plus page/limit pagination.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r)

	filter := bson.M{}
	if opts.Search != "" {
		filter["name"] = bson.M{"$regex": opts.Search, "$options": "i"}
	}
	if opts.Category != "" {
		filter["category"] = opts.Category
	}

	findOpts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((opts.Page - 1) * opts.Limit)).
		SetLimit(int64(opts.Limit))

	cursor, err := db.ProductCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error decoding products")
		return
	}
	if len(items) == 0 {
		items = []models.Product{}
	}

	count, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		count = int64(len(items))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"products":      items,
		"countProducts": count,
		"page":          opts.Page,
		"pages":         (count + int64(opts.Limit) - 1) / int64(opts.Limit),
	})
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var product models.Product
	err := db.ProductCollection.FindOne(r.Context(), bson.M{"productid": ps.ByName("id")}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product Not Found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

func GetProductBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var product models.Product
	err := db.ProductCollection.FindOne(r.Context(), bson.M{"slug": ps.ByName("slug")}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product Not Found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, product)
}

const categoriesCacheKey = "productCategories"

// GetCategories returns the distinct category names in the catalog. The list
// is cached in Redis and invalidated whenever the catalog changes.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(categoriesCacheKey); err == nil && cached != "" {
		var categories []string
		if json.Unmarshal([]byte(cached), &categories) == nil {
			utils.RespondWithJSON(w, http.StatusOK, categories)
			return
		}
	}

	raw, err := db.ProductCollection.Distinct(r.Context(), "category", bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching categories")
		return
	}

	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}

	if data, err := json.Marshal(categories); err == nil {
		rdx.SetWithExpiry(categoriesCacheKey, string(data), 10*time.Minute)
	}

	utils.RespondWithJSON(w, http.StatusOK, categories)
}
