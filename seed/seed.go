package seed

import (
	"context"
	"log"
	"net/http"
	"time"

	"medimart/db"
	"medimart/models"
	"medimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func demoUsers() []models.User {
	now := time.Now()
	adminPass, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	userPass, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)

	return []models.User{
		{
			UserID:    "u" + utils.GenerateID(10),
			Name:      "Admin",
			Email:     "admin@medimart.example",
			Password:  string(adminPass),
			Role:      []string{"user", "admin"},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			UserID:    "u" + utils.GenerateID(10),
			Name:      "Ravi Kumar",
			Email:     "ravi@medimart.example",
			Password:  string(userPass),
			Role:      []string{"user"},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func demoProducts() []models.Product {
	now := time.Now()
	items := []models.Product{
		{Name: "Paracetamol 500mg", Category: "Pain Relief", Price: 25, CountInStock: 120, Brand: "Calpol", Description: "Fever and mild pain relief, strip of 15 tablets."},
		{Name: "Cetirizine 10mg", Category: "Allergy", Price: 18, CountInStock: 80, Brand: "Okacet", Description: "Antihistamine, strip of 10 tablets."},
		{Name: "Vitamin D3 60000 IU", Category: "Supplements", Price: 95, CountInStock: 40, Brand: "Calcirol", Description: "Weekly sachet, pack of 4."},
		{Name: "Digital Thermometer", Category: "Devices", Price: 199, CountInStock: 25, Brand: "Dr Trust", Description: "Flexible tip, 60 second reading."},
		{Name: "Hand Sanitizer 500ml", Category: "Hygiene", Price: 149, CountInStock: 60, Brand: "Dettol", Description: "70% alcohol pump bottle."},
		{Name: "Bandage Roll 10cm", Category: "First Aid", Price: 35, CountInStock: 150, Brand: "Hansaplast", Description: "Elastic crepe bandage."},
		{Name: "ORS Sachets", Category: "Supplements", Price: 22, CountInStock: 200, Brand: "Electral", Description: "Oral rehydration salts, pack of 5."},
		{Name: "Blood Pressure Monitor", Category: "Devices", Price: 1899, CountInStock: 12, Brand: "Omron", Description: "Automatic upper-arm monitor."},
	}

	for i := range items {
		items[i].ProductID = "p" + utils.GenerateID(12)
		items[i].Slug = utils.Slugify(items[i].Name)
		items[i].Rating = 4.2
		items[i].NumReviews = 10 + i
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}
	return items
}

// SeedDatabase wipes the user and product collections and loads the demo
// catalog.
func SeedDatabase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if _, err := db.ProductCollection.DeleteMany(ctx, bson.M{}); err != nil {
		http.Error(w, "Failed to clear products", http.StatusInternalServerError)
		return
	}
	if _, err := db.UserCollection.DeleteMany(ctx, bson.M{}); err != nil {
		http.Error(w, "Failed to clear users", http.StatusInternalServerError)
		return
	}

	products := demoProducts()
	productDocs := make([]interface{}, len(products))
	for i, p := range products {
		productDocs[i] = p
	}
	if _, err := db.ProductCollection.InsertMany(ctx, productDocs); err != nil {
		log.Println("Seed products error:", err)
		http.Error(w, "Failed to seed products", http.StatusInternalServerError)
		return
	}

	users := demoUsers()
	userDocs := make([]interface{}, len(users))
	for i, u := range users {
		userDocs[i] = u
	}
	if _, err := db.UserCollection.InsertMany(ctx, userDocs); err != nil {
		log.Println("Seed users error:", err)
		http.Error(w, "Failed to seed users", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":         "Database Seeded",
		"createdProducts": products,
		"createdUsers":    users,
	})
}
