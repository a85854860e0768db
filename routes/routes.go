package routes

import (
	"net/http"
	"os"

	"medimart/auth"
	"medimart/live"
	"medimart/middleware"
	"medimart/orders"
	"medimart/products"
	"medimart/ratelim"
	"medimart/seed"
	"medimart/users"
	"medimart/utils"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))
}

func AddUserRoutes(router *httprouter.Router) {
	router.GET("/api/users", middleware.AdminOnly(users.GetUsers))
	router.GET("/api/users/profile", middleware.Authenticate(users.GetProfile))
	router.PUT("/api/users/profile", middleware.Authenticate(users.UpdateProfile))
	router.GET("/api/user/:id", middleware.AdminOnly(users.GetUser))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", ratelim.RateLimit(products.GetProducts))
	router.GET("/api/products/categories", products.GetCategories)
	router.GET("/api/products/slug/:slug", products.GetProductBySlug)
	router.POST("/api/products", middleware.AdminOnly(products.CreateProduct))
	router.GET("/api/product/:id", products.GetProduct)
	router.PUT("/api/product/:id", middleware.AdminOnly(products.EditProduct))
	router.DELETE("/api/product/:id", middleware.AdminOnly(products.DeleteProduct))
	router.POST("/api/upload", middleware.AdminOnly(products.UploadImage))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.GET("/api/orders", middleware.AdminOnly(orders.GetAllOrders))
	router.POST("/api/orders", ratelim.RateLimit(middleware.Authenticate(orders.CreateOrder)))
	router.GET("/api/orders/summary", middleware.AdminOnly(orders.Summary))
	router.GET("/api/orders/mine", middleware.Authenticate(orders.GetMyOrders))
	router.GET("/api/order/:id", middleware.Authenticate(orders.GetOrder))
	router.GET("/api/order/:id/report", ratelim.RateLimit(middleware.Authenticate(orders.PrintInvoice)))
	router.PUT("/api/order/:id/pay", ratelim.RateLimit(middleware.Authenticate(orders.MarkPaid)))
	router.PUT("/api/order/:id/deliver", middleware.AdminOnly(orders.MarkDelivered))
	router.DELETE("/api/order/:id", middleware.Authenticate(orders.DeleteOrder))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/api/orders/updates", live.OrderFeed(hub))
}

func AddSeedRoutes(router *httprouter.Router) {
	router.GET("/api/seed", ratelim.RateLimit(seed.SeedDatabase))
}

func AddUtilityRoutes(router *httprouter.Router) {
	router.GET("/api/keys/paypal", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		key := os.Getenv("PAYPAL_CLIENT_ID")
		if key == "" {
			key = "sb"
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"key": key})
	})
	router.GET("/api/keys/google", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"key": os.Getenv("GOOGLE_API_KEY")})
	})
}
